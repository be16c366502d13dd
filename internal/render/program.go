/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns the scene into pixels. The shading stages live in a
// Program; a Rasterizer does the scan conversion.
package render

import (
	"trieditor/internal/scene"
	"trieditor/internal/transform"
	"trieditor/internal/vector"
)

var (
	Background   = vector.Black
	PreviewColor = vector.Color{R: 1, G: 1, B: 1, A: 1}
)

// Program holds the per-vertex and per-fragment stages. Blending to 8 bits
// happens in the rasterizer.
type Program struct {
	Vertex   func(v scene.Vertex, m vector.Mat4) scene.Vertex
	Fragment func(c vector.Color) vector.Color
}

// DefaultProgram transforms positions by m and paints selected vertices with
// the highlight color. Stored colors are left alone.
func DefaultProgram() Program {
	return Program{
		Vertex: func(v scene.Vertex, m vector.Mat4) scene.Vertex {
			v.Position = m.Apply(v.Position)
			if v.Selected {
				v.Color = vector.Highlight
			}
			return v
		},
		Fragment: func(c vector.Color) vector.Color { return c },
	}
}

// Rasterizer scan-converts primitives whose positions are already in device
// coordinates.
type Rasterizer interface {
	Clear(c vector.Color)
	Triangle(p Program, v [3]scene.Vertex) error
	Line(p Program, a, b scene.Vertex) error
	Frame() Frame
}

// Input is what one redraw needs.
type Input struct {
	Scene     *scene.Scene
	Transform transform.Transformer
	// Outline holds rubber-band segments as point pairs in scene coordinates.
	Outline []vector.Vec4
	View    vector.Mat4
}

// Draw clears the target, fills every triangle and strokes the outline on top.
func Draw(r Rasterizer, p Program, in Input) (Frame, error) {
	r.Clear(Background)
	s := in.Scene
	for i := 0; i+2 < len(s.Vertices); i += 3 {
		m := in.Transform.MatrixFor(s, i)
		var tri [3]scene.Vertex
		for k, v := range s.Triangle(i) {
			tri[k] = p.Vertex(v, m)
		}
		if err := r.Triangle(p, tri); err != nil {
			return Frame{}, err
		}
	}
	for k := 0; k+1 < len(in.Outline); k += 2 {
		a := p.Vertex(scene.Vertex{Position: in.Outline[k], Color: PreviewColor}, in.View)
		b := p.Vertex(scene.Vertex{Position: in.Outline[k+1], Color: PreviewColor}, in.View)
		if err := r.Line(p, a, b); err != nil {
			return Frame{}, err
		}
	}
	return r.Frame(), nil
}

// ToPixel maps device coordinates to pixel coordinates. It is the inverse of
// the pixel to device mapping used for mouse input.
func ToPixel(p vector.Vec4, width, height int) (x, y float64) {
	x = (p.X + 1) * float64(width) / 2
	y = float64(height-1) - (p.Y+1)*float64(height)/2
	return x, y
}
