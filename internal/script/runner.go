/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"trieditor/internal/editor"
	"trieditor/internal/export"
	"trieditor/internal/render"
)

// Options configures a headless run.
type Options struct {
	// OutDir receives frame-NNNN.png files and scene.pdf. Empty means no
	// files are written.
	OutDir string
	Scale  float64
	// PDFSize is the page edge of scene.pdf in points; 0 uses the window width.
	PDFSize    float64
	Steps      int
	FrameDelay time.Duration
	// Ticked leaves animations to wait events instead of playing them to
	// completion. Scripts containing a wait event always run ticked.
	Ticked   bool
	Observer editor.Observer
	Logger   *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Frames    int
	Triangles int
	Summary   string
}

// Run replays s against a fresh editor. After every event the pending redraw,
// if any, is rendered. A started animation plays to completion before the
// next event, one frame per step, unless the run is ticked: then only wait
// events advance it, and each wait presents the pose it reaches. Cancelling
// ctx stops between events.
func Run(ctx context.Context, s Script, opt Options) (Result, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := editor.New(editor.Config{
		Width:      s.Width,
		Height:     s.Height,
		Steps:      opt.Steps,
		FrameDelay: opt.FrameDelay,
		Observer:   opt.Observer,
		Logger:     log,
	})
	r := render.NewGG(c.Width, c.Height)
	defer func() { _ = r.Close() }()

	var res Result
	sink := &frameSink{dir: opt.OutDir, scale: opt.Scale, n: &res.Frames}
	present := func() error { return c.Refresh(r, sink) }

	ticked := opt.Ticked || s.UsesWait()
	for i, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		apply(c, ev)
		if c.Animating() && !ticked {
			if err := c.PlayBlocking(ctx, present); err != nil {
				return res, fmt.Errorf("event %d: %w", i, err)
			}
			// The last frame is on screen; leaving the overlay changes nothing visible.
			c.NeedsRedraw = false
		}
		if c.NeedsRedraw || ev.Type == EventRedraw {
			if err := present(); err != nil {
				return res, fmt.Errorf("event %d: %w", i, err)
			}
		}
	}

	res.Triangles = c.Scene.Len()
	res.Summary = c.Summary()
	if opt.OutDir != "" {
		pdfPath := filepath.Join(opt.OutDir, "scene.pdf")
		size := opt.PDFSize
		if size <= 0 {
			size = float64(c.Width)
		}
		if err := export.WritePDF(pdfPath, c.Scene, c.Transformer(), export.PDFOptions{Size: size}); err != nil {
			return res, err
		}
	}
	log.InfoContext(ctx, "script finished", slog.Int("frames", res.Frames), slog.Int("triangles", res.Triangles))
	return res, nil
}

// frameSink numbers presented frames and writes them as PNGs when dir is set.
type frameSink struct {
	dir   string
	scale float64
	n     *int
}

func (s *frameSink) Present(f render.Frame) error {
	if s.dir != "" {
		if err := export.WritePNG(export.FrameName(s.dir, *s.n), f, export.PNGOptions{Scale: s.scale}); err != nil {
			return err
		}
	}
	*s.n++
	return nil
}

func apply(c *editor.Context, ev Event) {
	mouse := editor.MouseEvent{X: ev.X, Y: ev.Y, DX: ev.DX, DY: ev.DY, Button: ev.Button, Clicks: 1}
	switch ev.Type {
	case EventKey:
		for _, k := range ev.Key {
			editor.HandleKey(c, k)
		}
	case EventKeys:
		for _, k := range ev.Keys {
			editor.HandleKey(c, k)
		}
	case EventClick:
		mouse.Kind = editor.Press
		editor.HandleMouse(c, mouse)
		mouse.Up = true
		editor.HandleMouse(c, mouse)
	case EventPress:
		mouse.Kind = editor.Press
		editor.HandleMouse(c, mouse)
	case EventRelease:
		mouse.Kind, mouse.Up = editor.Press, true
		editor.HandleMouse(c, mouse)
	case EventMove:
		mouse.Kind = editor.Move
		editor.HandleMouse(c, mouse)
	case EventWheel:
		mouse.Kind = editor.Wheel
		editor.HandleMouse(c, mouse)
	case EventWait:
		c.Tick(time.Duration(ev.MS) * time.Millisecond)
	}
}
