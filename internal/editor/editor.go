/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the editing state machine. A Context holds the scene, the
// construction buffers and the uniform transforms; HandleKey and HandleMouse
// are the only ways input reaches it.
//
// A Context is not safe for concurrent use. Hosts deliver events from a single
// goroutine.
package editor

import (
	"fmt"
	"log/slog"
	"time"

	"trieditor/internal/animation"
	"trieditor/internal/render"
	"trieditor/internal/scene"
	"trieditor/internal/transform"
	"trieditor/internal/vector"
)

// Host displays rendered frames: a window, or a directory of PNGs.
type Host interface {
	Present(f render.Frame) error
}

// Config sets up a Context. Zero values fall back to defaults.
type Config struct {
	Width, Height int
	Steps         int
	FrameDelay    time.Duration
	Observer      Observer
	Logger        *slog.Logger
}

const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// Context is the whole editor state.
type Context struct {
	Scene    *scene.Scene
	Builder  scene.Builder
	Uniforms *transform.Uniforms
	Mode     Mode
	Program  render.Program

	Width, Height int

	// NeedsRedraw is set by every mutation and cleared by Redraw.
	NeedsRedraw bool

	selected scene.Handle // triangle under translation
	target   scene.Handle // vertex picked in Color mode

	pressed  bool
	dragging bool
	last     vector.Vec4 // cursor at the previous drag step, device coordinates

	anim    *animation.Task
	animTri scene.Handle

	steps int
	delay time.Duration
	obs   Observer
	log   *slog.Logger
}

// New returns an editor in Insertion mode and emits the welcome message.
func New(cfg Config) *Context {
	c := &Context{
		Scene:    scene.New(),
		Uniforms: transform.NewUniforms(),
		Mode:     Insertion,
		Program:  render.DefaultProgram(),
		Width:    cfg.Width,
		Height:   cfg.Height,
		selected: scene.NoHandle,
		target:   scene.NoHandle,
		animTri:  scene.NoHandle,
		steps:    cfg.Steps,
		delay:    cfg.FrameDelay,
		obs:      cfg.Observer,
		log:      cfg.Logger,
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.steps <= 0 {
		c.steps = animation.DefaultSteps
	}
	if c.delay < 0 {
		c.delay = 0
	} else if c.delay == 0 {
		c.delay = animation.DefaultDelay
	}
	if c.obs == nil {
		c.obs = nopObserver{}
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	c.obs.Notice(welcomeText)
	c.NeedsRedraw = true
	return c
}

// Selected returns the index of the selected triangle or scene.None.
func (c *Context) Selected() int {
	i, err := c.Scene.Resolve(c.selected)
	if err != nil {
		return scene.None
	}
	return i
}

// Target returns the vertex picked in Color mode or scene.None.
func (c *Context) Target() int {
	i, err := c.Scene.Resolve(c.target)
	if err != nil {
		return scene.None
	}
	return i
}

// Animating reports whether a playback is in progress.
func (c *Context) Animating() bool { return c.anim != nil }

// Transformer returns the matrices the vertex stage and the hit tester use.
func (c *Context) Transformer() transform.Transformer {
	return transform.Selection{U: c.Uniforms, Index: c.Selected()}
}

// Summary is a one-line description of the state for logs and crash reports.
func (c *Context) Summary() string {
	return fmt.Sprintf("mode=%s triangles=%d pending=%d selected=%d animating=%t",
		c.Mode, c.Scene.Len(), c.Builder.Clicks(), c.Selected(), c.Animating())
}

// Redraw renders the current state and clears NeedsRedraw.
func (c *Context) Redraw(r render.Rasterizer) (render.Frame, error) {
	c.NeedsRedraw = false
	in := render.Input{
		Scene:     c.Scene,
		Transform: c.Transformer(),
		View:      c.Uniforms.View,
	}
	if c.Mode == Insertion {
		in.Outline = c.Builder.Outline()
	}
	f, err := render.Draw(r, c.Program, in)
	if err != nil {
		return render.Frame{}, fmt.Errorf("redraw: %w", err)
	}
	return f, nil
}

// Refresh renders into r and hands the frame to h.
func (c *Context) Refresh(r render.Rasterizer, h Host) error {
	f, err := c.Redraw(r)
	if err != nil {
		return err
	}
	return h.Present(f)
}

// ToNDC maps a pixel to device coordinates with Y pointing up. Coordinates
// outside the window map outside [-1, 1] and simply miss every triangle.
func ToNDC(x, y, width, height int) vector.Vec4 {
	return vector.P(
		2*float64(x)/float64(width)-1,
		2*float64(height-1-y)/float64(height)-1,
	)
}

// unproject maps a device point into scene coordinates through the inverse
// view, so geometry placed with the mouse lands under the cursor.
func (c *Context) unproject(p vector.Vec4) vector.Vec4 {
	inv, ok := c.Uniforms.View.Inverse()
	if !ok {
		return p
	}
	return inv.Apply(p)
}

func (c *Context) changed() { c.NeedsRedraw = true }

// enter switches modes and emits the mode message.
func (c *Context) enter(m Mode) {
	if m != Insertion {
		c.Builder.Reset()
	}
	if !m.translating() {
		c.commitSelection()
	}
	if m != Color {
		c.target = scene.NoHandle
	}
	c.Mode = m
	c.obs.ModeEntered(m, modeText[m])
	c.log.Debug("mode", slog.String("mode", m.String()))
	c.changed()
}

// selectTriangle makes idx the selection, first baking the transform of any
// previous selection into its vertices.
func (c *Context) selectTriangle(idx int) {
	if idx == c.Selected() {
		return
	}
	c.commitSelection()
	c.Scene.SetSelected(idx, true)
	c.selected = c.Scene.Handle(idx)
}

// commitSelection bakes the object transform into the selected triangle,
// clears the selection and resets the object matrices.
func (c *Context) commitSelection() {
	c.pressed, c.dragging = false, false
	idx := c.Selected()
	c.selected = scene.NoHandle
	if idx == scene.None {
		c.Uniforms.Reset()
		return
	}
	if !c.Uniforms.AtRest() {
		pivot := c.Scene.Triangle(idx)[0].Barycenter
		c.Scene.Bake(idx, c.Uniforms.Object(pivot))
	}
	c.Scene.SetSelected(idx, false)
	c.Uniforms.Reset()
	c.changed()
}
