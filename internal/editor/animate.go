/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"context"
	"log/slog"
	"time"

	"trieditor/internal/animation"
	"trieditor/internal/scene"
	"trieditor/internal/vector"
)

// startAnimation captures the selected triangle's raw positions and their
// object-transformed targets, then resets the object matrices so playback does
// not apply them twice. Without a selection this is a no-op.
func (c *Context) startAnimation(kind animation.Kind) {
	idx := c.Selected()
	if idx == scene.None {
		c.log.Debug("animation ignored, nothing selected", slog.String("kind", kind.String()))
		return
	}
	pivot := c.Scene.Triangle(idx)[0].Barycenter
	obj := c.Uniforms.Object(pivot)
	from := c.Scene.Positions(idx)
	var to [3]vector.Vec4
	for k := range from {
		to[k] = obj.Apply(from[k])
	}
	c.Uniforms.Reset()

	task := animation.NewTask(kind, from, to)
	task.Steps = c.steps
	task.Delay = c.delay
	c.anim = task
	c.animTri = c.Scene.Handle(idx)
	c.pressed, c.dragging = false, false
	c.obs.Notice("Animating (" + kind.String() + ")")
	c.log.Debug("animation started", slog.String("kind", kind.String()), slog.Int("index", idx))
}

// Tick advances a running animation by dt and reports whether anything
// changed. Hosts call it from their frame clock.
func (c *Context) Tick(dt time.Duration) bool {
	if c.anim == nil {
		return false
	}
	frames := c.anim.Tick(dt)
	for _, f := range frames {
		c.applyFrame(f)
	}
	if c.anim.Done() {
		c.finishAnimation(true)
	}
	return len(frames) > 0
}

// PlayBlocking runs the pending animation to the end, calling present after
// every frame and sleeping the frame delay in between. It returns at once if
// nothing is animating. Cancelling ctx lands the triangle on its target.
func (c *Context) PlayBlocking(ctx context.Context, present func() error) error {
	if c.anim == nil {
		return nil
	}
	err := animation.Play(ctx, c.anim, func(f animation.Frame) error {
		c.applyFrame(f)
		return present()
	})
	c.finishAnimation(true)
	return err
}

// cancelAnimation lands the triangle on its target. exit synthesizes the
// exit key; callers about to enter another mode pass false.
func (c *Context) cancelAnimation(exit bool) {
	if c.anim == nil {
		return
	}
	c.applyFrame(c.anim.Cancel())
	c.log.Debug("animation cancelled")
	c.finishAnimation(exit)
}

func (c *Context) applyFrame(f animation.Frame) {
	idx, err := c.Scene.Resolve(c.animTri)
	if err != nil {
		c.log.Warn("animated triangle vanished", slog.Any("err", err))
		return
	}
	c.Scene.SetPositions(idx, f.Positions)
	c.changed()
}

// finishAnimation drops the task, moves the pivot to the final pose and,
// when exit is set, synthesizes the exit key.
func (c *Context) finishAnimation(exit bool) {
	if idx, err := c.Scene.Resolve(c.animTri); err == nil {
		c.Scene.Restamp(idx)
	}
	c.anim = nil
	c.animTri = scene.NoHandle
	if exit {
		HandleKey(c, ExitKey)
	}
}
