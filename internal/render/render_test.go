/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"math"
	"testing"

	"trieditor/internal/scene"
	"trieditor/internal/transform"
	"trieditor/internal/vector"
)

func centered(selected bool) *scene.Scene {
	s := scene.New()
	v := func(x, y float64) scene.Vertex {
		return scene.Vertex{Position: vector.P(x, y), Color: vector.Blue, Selected: selected}
	}
	s.Append(v(-0.8, -0.8), v(0.8, -0.8), v(0, 0.8))
	return s
}

func draw(t *testing.T, s *scene.Scene, outline []vector.Vec4) Frame {
	t.Helper()
	r := NewGG(20, 20)
	r.LineWidth = 2
	defer r.Close()
	f, err := Draw(r, DefaultProgram(), Input{
		Scene:     s,
		Transform: transform.Fixed(vector.Identity),
		Outline:   outline,
		View:      vector.Identity,
	})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if f.Width != 20 || f.Height != 20 || len(f.R) != 400 || len(f.A) != 400 {
		t.Fatalf("unexpected frame geometry %dx%d", f.Width, f.Height)
	}
	return f
}

func TestDrawFillsTriangleOverBackground(t *testing.T) {
	f := draw(t, centered(false), nil)
	if c := f.At(10, 10); c.B < 200 || c.R > 50 || c.G > 50 {
		t.Fatalf("center should be blue, got %+v", c)
	}
	if c := f.At(0, 0); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Fatalf("corner should be opaque black, got %+v", c)
	}
}

func TestDrawHighlightsSelection(t *testing.T) {
	f := draw(t, centered(true), nil)
	if c := f.At(10, 10); c.G < 150 || c.B > 50 {
		t.Fatalf("selected triangle should use the highlight color, got %+v", c)
	}
}

func TestDrawStrokesOutline(t *testing.T) {
	f := draw(t, scene.New(), []vector.Vec4{vector.P(-1, 0), vector.P(1, 0)})
	lit := 0
	for x := 0; x < f.Width; x++ {
		for y := 8; y <= 11; y++ {
			if f.At(x, y).R > 100 {
				lit++
				break
			}
		}
	}
	if lit < 15 {
		t.Fatalf("expected a horizontal preview line, %d columns lit", lit)
	}
}

func TestToPixelCorners(t *testing.T) {
	x, y := ToPixel(vector.P(-1, 1), 500, 500)
	if x != 0 || y != -1 {
		t.Fatalf("top-left device corner maps to (%v,%v)", x, y)
	}
	x, y = ToPixel(vector.P(1, -1), 500, 500)
	if math.Abs(x-500) > 1e-9 || math.Abs(y-499) > 1e-9 {
		t.Fatalf("bottom-right device corner maps to (%v,%v)", x, y)
	}
}

func TestFrameImageRoundTrip(t *testing.T) {
	f := NewFrame(2, 1)
	f.R[1], f.A[1] = 200, 255
	img := f.Image()
	back := FrameFromImage(img)
	if back.At(1, 0) != f.At(1, 0) || back.At(5, 5).A != 0 {
		t.Fatalf("round trip changed pixels: %+v", back)
	}
}
