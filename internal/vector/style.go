/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct{ R, G, B, A float64 }

var (
	Black     = Color{0, 0, 0, 1}
	Blue      = Color{0, 0, 1, 1}
	Highlight = Color{0.5, 0.8, 0, 1}
)

// RGBA8 converts to an 8-bit color, clamping out-of-range components.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Mix returns the weighted sum of three colors; weights are expected to add up to 1.
func Mix(a, b, c Color, wa, wb, wc float64) Color {
	return Color{
		R: a.R*wa + b.R*wb + c.R*wc,
		G: a.G*wa + b.G*wb + c.G*wc,
		B: a.B*wa + b.B*wb + c.B*wc,
		A: a.A*wa + b.A*wb + c.A*wc,
	}
}

func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps && math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps && math.Abs(c.A-o.A) <= eps
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
