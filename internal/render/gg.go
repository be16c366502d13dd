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

	"github.com/gogpu/gg"

	"trieditor/internal/scene"
	"trieditor/internal/vector"
)

// GG rasterizes with the gg software renderer. Triangle fills interpolate the
// vertex colors per pixel through a custom brush.
type GG struct {
	dc        *gg.Context
	width     int
	height    int
	LineWidth float64
}

func NewGG(width, height int) *GG {
	return &GG{dc: gg.NewContext(width, height), width: width, height: height, LineWidth: 1}
}

func (g *GG) Clear(c vector.Color) { g.dc.ClearWithColor(toGG(c)) }

func (g *GG) Triangle(p Program, v [3]scene.Vertex) error {
	var px, py [3]float64
	for k := range v {
		px[k], py[k] = ToPixel(v[k].Position, g.width, g.height)
	}
	det := (py[1]-py[2])*(px[0]-px[2]) + (px[2]-px[1])*(py[0]-py[2])
	if math.Abs(det) < 1e-12 {
		// Zero area covers no pixels.
		return nil
	}
	weights := func(x, y float64) (w0, w1, w2 float64) {
		w0 = ((py[1]-py[2])*(x-px[2]) + (px[2]-px[1])*(y-py[2])) / det
		w1 = ((py[2]-py[0])*(x-px[2]) + (px[0]-px[2])*(y-py[2])) / det
		w0, w1 = clamp01(w0), clamp01(w1)
		w2 = clamp01(1 - w0 - w1)
		sum := w0 + w1 + w2
		return w0 / sum, w1 / sum, w2 / sum
	}
	g.dc.SetFillBrush(gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		w0, w1, w2 := weights(x, y)
		return toGG(p.Fragment(vector.Mix(v[0].Color, v[1].Color, v[2].Color, w0, w1, w2)))
	}))
	g.dc.MoveTo(px[0], py[0])
	g.dc.LineTo(px[1], py[1])
	g.dc.LineTo(px[2], py[2])
	g.dc.ClosePath()
	return g.dc.Fill()
}

func (g *GG) Line(p Program, a, b scene.Vertex) error {
	ax, ay := ToPixel(a.Position, g.width, g.height)
	bx, by := ToPixel(b.Position, g.width, g.height)
	g.dc.SetStrokeBrush(gg.Solid(toGG(p.Fragment(a.Color))))
	g.dc.SetLineWidth(g.LineWidth)
	g.dc.MoveTo(ax, ay)
	g.dc.LineTo(bx, by)
	return g.dc.Stroke()
}

func (g *GG) Frame() Frame { return FrameFromImage(g.dc.Image()) }

// SavePNG writes the current pixels as a PNG file.
func (g *GG) SavePNG(path string) error { return g.dc.SavePNG(path) }

// Close releases the gg context.
func (g *GG) Close() error { return g.dc.Close() }

func toGG(c vector.Color) gg.RGBA {
	return gg.RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
