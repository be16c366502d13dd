//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"trieditor/internal/config"
	"trieditor/internal/crash"
	"trieditor/internal/editor"
	applog "trieditor/internal/log"
	"trieditor/internal/render"
)

// tickInterval drives animations and coalesced redraws.
const tickInterval = 16 * time.Millisecond

// Run opens the editor window and blocks until it is closed.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.Int("width", cfg.Editor.Width), slog.Int("height", cfg.Editor.Height))

	fyneApp := app.NewWithID("trieditor")
	w := fyneApp.NewWindow("Triangle Editor")

	status := widget.NewLabel("")
	view := NewEditorView(cfg.Editor, editor.Observers{editor.LogObserver{L: l}, labelObserver{status}}, l)
	defer crash.Recover(view.c.Summary)
	defer func() { _ = view.r.Close() }()

	w.SetContent(container.NewBorder(nil, status, nil, nil, view))
	w.Resize(fyne.NewSize(float32(view.c.Width), float32(view.c.Height)+status.MinSize().Height))
	w.Canvas().SetOnTypedRune(view.TypedRune)

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(tickInterval)
		defer t.Stop()
		last := time.Now()
		for {
			select {
			case <-done:
				return
			case now := <-t.C:
				dt := now.Sub(last)
				last = now
				fyne.Do(func() { view.Step(dt) })
			}
		}
	}()
	w.SetOnClosed(func() { close(done) })

	view.flush()
	w.ShowAndRun()
	l.Info("UI closed", slog.String("state", view.c.Summary()))
	return nil
}

// labelObserver shows the latest editor message in the status bar.
type labelObserver struct{ lbl *widget.Label }

func (o labelObserver) ModeEntered(_ editor.Mode, text string) { o.lbl.SetText(text) }
func (o labelObserver) Notice(text string)                    { o.lbl.SetText(text) }

// EditorView shows the editor's frame and forwards pointer input to it.
// It implements editor.Host for the window.
type EditorView struct {
	widget.BaseWidget

	c   *editor.Context
	r   *render.GG
	img *canvas.Image
	log *slog.Logger

	down bool
}

var (
	_ desktop.Mouseable = (*EditorView)(nil)
	_ desktop.Hoverable = (*EditorView)(nil)
	_ fyne.Scrollable   = (*EditorView)(nil)
	_ editor.Host       = (*EditorView)(nil)
)

func NewEditorView(cfg config.EditorConfig, obs editor.Observer, l *slog.Logger) *EditorView {
	c := editor.New(editor.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Steps:      cfg.AnimationSteps,
		FrameDelay: cfg.FrameDelay(),
		Observer:   obs,
		Logger:     l,
	})
	v := &EditorView{c: c, r: render.NewGG(c.Width, c.Height), log: l}
	v.img = canvas.NewImageFromImage(render.NewFrame(c.Width, c.Height).Image())
	v.img.FillMode = canvas.ImageFillStretch
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *EditorView) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(v.img) }

func (v *EditorView) MinSize() fyne.Size {
	return fyne.NewSize(float32(v.c.Width)/2, float32(v.c.Height)/2)
}

// Present swaps the displayed image. Call on the fyne goroutine.
func (v *EditorView) Present(f render.Frame) error {
	v.img.Image = f.Image()
	v.img.Refresh()
	return nil
}

// Step advances animations by dt and repaints if the editor changed.
func (v *EditorView) Step(dt time.Duration) {
	v.c.Tick(dt)
	v.flush()
}

func (v *EditorView) flush() {
	if !v.c.NeedsRedraw {
		return
	}
	if err := v.c.Refresh(v.r, v); err != nil {
		v.log.Error("redraw failed", slog.Any("err", err))
	}
}

func (v *EditorView) TypedRune(r rune) {
	editor.HandleKey(v.c, r)
	v.flush()
}

// pixel maps a widget position to the editor's pixel grid, which keeps its
// configured size when the window is resized.
func (v *EditorView) pixel(pos fyne.Position) (int, int) {
	sz := v.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return int(pos.X), int(pos.Y)
	}
	return int(pos.X / sz.Width * float32(v.c.Width)), int(pos.Y / sz.Height * float32(v.c.Height))
}

func (v *EditorView) button(e *desktop.MouseEvent, up bool) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	v.down = !up
	x, y := v.pixel(e.Position)
	editor.HandleMouse(v.c, editor.MouseEvent{Kind: editor.Press, X: x, Y: y, Button: 1, Clicks: 1, Up: up})
	v.flush()
}

func (v *EditorView) MouseDown(e *desktop.MouseEvent) { v.button(e, false) }
func (v *EditorView) MouseUp(e *desktop.MouseEvent)   { v.button(e, true) }

func (v *EditorView) MouseIn(e *desktop.MouseEvent) { v.MouseMoved(e) }

func (v *EditorView) MouseMoved(e *desktop.MouseEvent) {
	x, y := v.pixel(e.Position)
	editor.HandleMouse(v.c, editor.MouseEvent{Kind: editor.Move, X: x, Y: y})
	v.flush()
}

// MouseOut ends a drag that leaves the window. The selection stays, so the
// next press starts clean.
func (v *EditorView) MouseOut() {
	if !v.down {
		return
	}
	v.down = false
	editor.EndDrag(v.c)
	v.flush()
}

func (v *EditorView) Scrolled(e *fyne.ScrollEvent) {
	x, y := v.pixel(e.Position)
	editor.HandleMouse(v.c, editor.MouseEvent{Kind: editor.Wheel, X: x, Y: y, DX: int(e.Scrolled.DX), DY: int(e.Scrolled.DY)})
}
