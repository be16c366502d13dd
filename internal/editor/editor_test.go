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
	"math"
	"math/rand"
	"testing"
	"time"

	"trieditor/internal/render"
	"trieditor/internal/scene"
	"trieditor/internal/vector"
)

type recorder struct {
	modes   []Mode
	notices []string
}

func (r *recorder) ModeEntered(m Mode, _ string) { r.modes = append(r.modes, m) }
func (r *recorder) Notice(text string)           { r.notices = append(r.notices, text) }

func newEditor(t *testing.T) (*Context, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := New(Config{Width: 500, Height: 500, FrameDelay: -1, Observer: rec})
	return c, rec
}

// px converts device coordinates back to the pixel the host would report.
func px(c *Context, x, y float64) (int, int) {
	return int(math.Round((x + 1) * float64(c.Width) / 2)),
		int(math.Round(float64(c.Height-1) - (y+1)*float64(c.Height)/2))
}

func click(c *Context, x, y float64) {
	X, Y := px(c, x, y)
	HandleMouse(c, MouseEvent{Kind: Press, X: X, Y: Y, Button: 1, Clicks: 1})
	HandleMouse(c, MouseEvent{Kind: Press, X: X, Y: Y, Button: 1, Clicks: 1, Up: true})
}

func press(c *Context, x, y float64, up bool) {
	X, Y := px(c, x, y)
	HandleMouse(c, MouseEvent{Kind: Press, X: X, Y: Y, Button: 1, Clicks: 1, Up: up})
}

func moveTo(c *Context, x, y float64) {
	X, Y := px(c, x, y)
	HandleMouse(c, MouseEvent{Kind: Move, X: X, Y: Y})
}

func keys(c *Context, ks string) {
	for _, k := range ks {
		HandleKey(c, k)
	}
}

// withTriangle places the triangle (-0.5,-0.5) (0.5,-0.5) (0,0.5).
func withTriangle(t *testing.T) (*Context, *recorder) {
	t.Helper()
	c, rec := newEditor(t)
	click(c, -0.5, -0.5)
	click(c, 0.5, -0.5)
	click(c, 0, 0.5)
	if c.Scene.Len() != 1 {
		t.Fatalf("expected one triangle, got %d", c.Scene.Len())
	}
	return c, rec
}

func TestWelcomeAndOneMessagePerModeEntry(t *testing.T) {
	c, rec := newEditor(t)
	if len(rec.notices) != 1 || len(rec.modes) != 0 {
		t.Fatalf("expected only the welcome message, got %v / %v", rec.notices, rec.modes)
	}
	keys(c, "ooc")
	if len(rec.modes) != 3 || rec.modes[0] != Translation || rec.modes[1] != Translation || rec.modes[2] != Color {
		t.Fatalf("every entry, re-entry included, must emit once: %v", rec.modes)
	}
	keys(c, "zZ!")
	if len(rec.modes) != 3 || c.Mode != Color {
		t.Fatalf("unknown keys must be no-ops")
	}
}

func TestInsertionCommitsOnThirdRelease(t *testing.T) {
	c, _ := newEditor(t)
	press(c, -0.5, -0.5, false)
	if c.Builder.Clicks() != 0 {
		t.Fatalf("button down must not place a corner")
	}
	c, _ = withTriangle(t)
	if c.Builder.Clicks() != 0 || c.Builder.Outline() != nil {
		t.Fatalf("buffers should be cleared after commit")
	}
	b := c.Scene.Triangle(0)[1].Barycenter
	if !b.ApproxEqual(vector.P(0, -0.5/3), 1e-9) {
		t.Fatalf("unexpected barycenter %+v", b)
	}
	if c.Scene.Triangle(0)[2].Color != vector.Blue {
		t.Fatalf("new triangles are blue")
	}
}

func TestInsertionPreview(t *testing.T) {
	c, _ := newEditor(t)
	click(c, -0.5, -0.5)
	c.NeedsRedraw = false
	moveTo(c, 0, 0)
	if !c.NeedsRedraw || len(c.Builder.Outline()) != 2 {
		t.Fatalf("one click should preview a single segment")
	}
	click(c, 0.5, -0.5)
	moveTo(c, 0.2, 0.4)
	out := c.Builder.Outline()
	if len(out) != 6 || !out[3].ApproxEqual(vector.P(0.2, 0.4), 1e-9) {
		t.Fatalf("two clicks should outline a triangle through the cursor: %+v", out)
	}
}

func TestSelectAndDeselect(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "o")
	click(c, 0, 0)
	if c.Selected() != 0 || !c.Scene.Triangle(0)[0].Selected {
		t.Fatalf("click inside should select triangle 0, got %d", c.Selected())
	}
	click(c, 0.9, 0.9)
	if c.Selected() != scene.None || c.Scene.Triangle(0)[0].Selected {
		t.Fatalf("click on empty space should deselect")
	}
}

func TestScaleKeysSaturate(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "o")
	keys(c, "l")
	if c.Uniforms.ScaleFactor != 1 {
		t.Fatalf("scale without selection must be a no-op")
	}
	click(c, 0, 0)
	for _, want := range []float64{0.75, 0.5, 0.25} {
		keys(c, "l")
		if math.Abs(c.Uniforms.ScaleFactor-want) > 1e-9 {
			t.Fatalf("want %v, got %v", want, c.Uniforms.ScaleFactor)
		}
	}
}

func TestDragThenDeselectBakes(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "o")
	press(c, 0, 0, false)
	moveTo(c, 0.1, 0)
	moveTo(c, 0.2, 0)
	press(c, 0.2, 0, true)
	got := c.Transformer().MatrixFor(c.Scene, 0).Apply(c.Scene.Vertices[0].Position)
	if !got.ApproxEqual(vector.P(-0.3, -0.5), 1e-9) {
		t.Fatalf("drag should move the triangle, got %+v", got)
	}
	click(c, 0.9, 0.9)
	if !c.Uniforms.AtRest() {
		t.Fatalf("deselect should reset the object matrices")
	}
	if p := c.Scene.Vertices[0].Position; !p.ApproxEqual(vector.P(-0.3, -0.5), 1e-9) {
		t.Fatalf("deselect should bake the move, got %+v", p)
	}
}

func TestDeleteResetsObjectTransforms(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "W")
	view := c.Uniforms.View
	keys(c, "o")
	click(c, 0, 0)
	keys(c, "kh")
	keys(c, "p")
	click(c, 0, 0)
	if c.Scene.Len() != 0 || len(c.Scene.Vertices)%3 != 0 {
		t.Fatalf("triangle should be deleted")
	}
	u := c.Uniforms
	if !u.AtRest() || u.ScaleFactor != 1 || u.RotateRadians != 0 {
		t.Fatalf("reset law violated: %+v", u)
	}
	if !u.View.ApproxEqual(view, 0) {
		t.Fatalf("deleting must not reset the view")
	}
}

func TestColorRamp(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "c3")
	for _, v := range c.Scene.Vertices {
		if v.Color != vector.Blue {
			t.Fatalf("digit without a target must be a no-op")
		}
	}
	click(c, 0, 0)
	if c.Target() != 2 {
		t.Fatalf("nearest vertex to the center is the apex, got %d", c.Target())
	}
	keys(c, "3")
	want := vector.Color{R: 0.2, G: 0.3, B: 0.4, A: 1}
	if got := c.Scene.Vertices[2].Color; !got.ApproxEqual(want, 1e-9) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
	click(c, 0.9, 0.9)
	if c.Target() != scene.None {
		t.Fatalf("a miss should clear the target")
	}
}

func TestRampTable(t *testing.T) {
	if c, ok := Ramp('1'); !ok || !c.ApproxEqual(vector.Color{R: 0, G: 0.1, B: 0.2, A: 1}, 1e-12) {
		t.Fatalf("unexpected ramp for 1: %+v", c)
	}
	if c, ok := Ramp('9'); !ok || !c.ApproxEqual(vector.Color{R: 0.8, G: 0.9, B: 1, A: 1}, 1e-12) {
		t.Fatalf("unexpected ramp for 9: %+v", c)
	}
	if _, ok := Ramp('0'); ok {
		t.Fatalf("0 is not on the ramp")
	}
}

func TestViewKeysWorkInEveryMode(t *testing.T) {
	c, rec := newEditor(t)
	keys(c, "pW")
	if c.Uniforms.View.IsIdentity() || rec.notices[len(rec.notices)-1] != "Zooming in" {
		t.Fatalf("zoom should apply in deletion mode")
	}
	keys(c, "d")
	if rec.notices[len(rec.notices)-1] != "Panning left" {
		t.Fatalf("missing pan notice: %v", rec.notices)
	}
}

func animateSetup(t *testing.T) (*Context, *recorder) {
	t.Helper()
	c, rec := withTriangle(t)
	keys(c, "o")
	press(c, 0, 0, false)
	keys(c, "m")
	moveTo(c, 0.2, 0)
	press(c, 0.2, 0, true)
	if c.Mode != Animation || c.Selected() != 0 {
		t.Fatalf("expected animation overlay with a selection, mode=%s sel=%d", c.Mode, c.Selected())
	}
	return c, rec
}

func TestLinearAnimationTicksToTarget(t *testing.T) {
	c, rec := animateSetup(t)
	c.delay = 250 * time.Millisecond
	keys(c, "n")
	if !c.Animating() || !c.Uniforms.AtRest() {
		t.Fatalf("animation should start with the object matrices baked out")
	}
	c.Tick(0)
	if p := c.Scene.Vertices[0].Position; !p.ApproxEqual(vector.P(-0.5, -0.5), 1e-9) {
		t.Fatalf("frame 0 should be the start pose, got %+v", p)
	}
	c.Tick(time.Hour)
	if c.Animating() || c.Mode != Translation {
		t.Fatalf("finished animation should exit to translation, mode=%s", c.Mode)
	}
	if rec.modes[len(rec.modes)-1] != Translation {
		t.Fatalf("exit key should announce translation mode")
	}
	if p := c.Scene.Vertices[0].Position; !p.ApproxEqual(vector.P(-0.3, -0.5), 1e-9) {
		t.Fatalf("last frame should be the target pose, got %+v", p)
	}
	if b := c.Scene.Vertices[0].Barycenter; !b.ApproxEqual(vector.P(0.2, -0.5/3), 1e-9) {
		t.Fatalf("barycenter should follow the triangle, got %+v", b)
	}
}

func TestBlockingPlaybackPresentsElevenFrames(t *testing.T) {
	c, _ := animateSetup(t)
	keys(c, "b")
	frames := 0
	if err := c.PlayBlocking(context.Background(), func() error { frames++; return nil }); err != nil {
		t.Fatalf("play: %v", err)
	}
	if frames != 11 || c.Animating() {
		t.Fatalf("expected 11 frames, got %d", frames)
	}
	if p := c.Scene.Vertices[1].Position; !p.ApproxEqual(vector.P(0.7, -0.5), 1e-9) {
		t.Fatalf("bezier should end on the target, got %+v", p)
	}
}

func TestAnimationWithoutSelectionIsNoop(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "mn")
	if c.Animating() || c.Mode != Animation {
		t.Fatalf("n without a selection must do nothing")
	}
	keys(c, "q")
	if c.Mode != Translation {
		t.Fatalf("q should leave the overlay")
	}
}

func TestModeKeyCancelsAnimation(t *testing.T) {
	c, _ := animateSetup(t)
	c.delay = 250 * time.Millisecond
	keys(c, "n")
	c.Tick(0)
	press(c, 0.9, 0.9, false)
	if !c.Animating() {
		t.Fatalf("mouse input must be ignored while animating")
	}
	keys(c, "k")
	if !c.Animating() {
		t.Fatalf("non-mode keys must be ignored while animating")
	}
	keys(c, "i")
	if c.Animating() || c.Mode != Insertion {
		t.Fatalf("mode key should cancel and switch, mode=%s", c.Mode)
	}
	if p := c.Scene.Vertices[2].Position; !p.ApproxEqual(vector.P(0.2, 0.5), 1e-9) {
		t.Fatalf("cancel should land on the target, got %+v", p)
	}
}

func TestCancellingPlaybackEmitsOneModeMessage(t *testing.T) {
	c, rec := animateSetup(t)
	c.delay = 250 * time.Millisecond
	keys(c, "n")
	c.Tick(0)
	before := len(rec.modes)
	keys(c, "p")
	if got := rec.modes[before:]; len(got) != 1 || got[0] != Deletion {
		t.Fatalf("mode key during playback should announce only its own mode: %v", got)
	}

	c, rec = animateSetup(t)
	c.delay = 250 * time.Millisecond
	keys(c, "n")
	c.Tick(0)
	before = len(rec.modes)
	keys(c, "q")
	if got := rec.modes[before:]; len(got) != 1 || got[0] != Translation {
		t.Fatalf("q during playback should announce translation once: %v", got)
	}
}

func TestEndDragKeepsSelection(t *testing.T) {
	c, _ := withTriangle(t)
	keys(c, "o")
	press(c, 0, 0, false)
	moveTo(c, 0.1, 0)
	EndDrag(c)
	if c.Selected() != 0 {
		t.Fatalf("ending a drag must not drop the selection")
	}
	held := c.Uniforms.Translate
	moveTo(c, 0.4, 0)
	if !c.Uniforms.Translate.ApproxEqual(held, 1e-12) {
		t.Fatalf("moves after EndDrag must not translate")
	}
	if held.IsIdentity() {
		t.Fatalf("the drag before EndDrag should have translated")
	}
}

func TestRedrawClearsFlag(t *testing.T) {
	c, _ := withTriangle(t)
	r := render.NewGG(40, 40)
	defer r.Close()
	f, err := c.Redraw(r)
	if err != nil {
		t.Fatalf("redraw: %v", err)
	}
	if c.NeedsRedraw || f.Width != 40 {
		t.Fatalf("redraw should clear the flag and return a frame")
	}
	keys(c, "s")
	if !c.NeedsRedraw {
		t.Fatalf("pan should request a redraw")
	}
}

type hostFunc func(render.Frame) error

func (h hostFunc) Present(f render.Frame) error { return h(f) }

func TestRefreshPresentsToHost(t *testing.T) {
	c, _ := withTriangle(t)
	r := render.NewGG(40, 40)
	defer r.Close()
	var got []render.Frame
	err := c.Refresh(r, hostFunc(func(f render.Frame) error {
		got = append(got, f)
		return nil
	}))
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(got) != 1 || got[0].Width != 40 || c.NeedsRedraw {
		t.Fatalf("expected one presented frame, got %d", len(got))
	}
}

func TestToNDC(t *testing.T) {
	if p := ToNDC(250, 249, 500, 500); !p.ApproxEqual(vector.P(0, 0), 1e-12) {
		t.Fatalf("center pixel maps to %+v", p)
	}
	if p := ToNDC(0, 499, 500, 500); !p.ApproxEqual(vector.P(-1, -1), 1e-12) {
		t.Fatalf("bottom-left pixel maps to %+v", p)
	}
	x, y := render.ToPixel(ToNDC(123, 77, 500, 500), 500, 500)
	if math.Abs(x-123) > 1e-9 || math.Abs(y-77) > 1e-9 {
		t.Fatalf("ToPixel should invert ToNDC, got (%v,%v)", x, y)
	}
}

func TestRandomSessionsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const alphabet = "iopcmqklhjnbWVwsad123456789"
	c, _ := newEditor(t)
	for step := 0; step < 5000; step++ {
		switch rng.Intn(4) {
		case 0:
			HandleKey(c, rune(alphabet[rng.Intn(len(alphabet))]))
		case 1:
			HandleMouse(c, MouseEvent{Kind: Move, X: rng.Intn(500), Y: rng.Intn(500)})
		case 2:
			HandleMouse(c, MouseEvent{Kind: Press, X: rng.Intn(500), Y: rng.Intn(500), Up: rng.Intn(2) == 0})
		case 3:
			c.Tick(time.Duration(rng.Intn(400)) * time.Millisecond)
		}
		if err := c.Scene.Check(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if sel := c.Selected(); sel != scene.None && sel%3 != 0 {
			t.Fatalf("step %d: selection %d is not a triangle boundary", step, sel)
		}
		if c.Selected() == scene.None && !c.Animating() && !c.Uniforms.AtRest() {
			t.Fatalf("step %d: object matrices set without a selection: %s", step, c.Summary())
		}
	}
}
