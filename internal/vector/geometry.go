/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Homogeneous geometry for the editor. Positions live in normalized device
// coordinates ([-1, 1] on both axes, Y up) and carry W=1.

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vec4 is a homogeneous position (W=1) or displacement (W=0).
type Vec4 struct{ X, Y, Z, W float64 }

// P returns the point (x, y, 0, 1).
func P(x, y float64) Vec4 { return Vec4{X: x, Y: y, W: 1} }

func (v Vec4) Add(o Vec4) Vec4 { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4 { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Mul(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

func (v Vec4) slice() []float64 { return []float64{v.X, v.Y, v.Z, v.W} }

// Dist is the Euclidean distance over all four components.
func (v Vec4) Dist(o Vec4) float64 { return floats.Distance(v.slice(), o.slice(), 2) }

// ApproxEqual compares component-wise within eps.
func (v Vec4) ApproxEqual(o Vec4, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps && math.Abs(v.W-o.W) <= eps
}

// Centroid returns (a+b+c)/3.
func Centroid(a, b, c Vec4) Vec4 { return a.Add(b).Add(c).Mul(1.0 / 3.0) }

// Mat4 is a row-major 4x4 matrix applied to column vectors: p' = M·p.
type Mat4 [16]float64

var Identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func (m Mat4) dense() *mat.Dense { return mat.NewDense(4, 4, m[:]) }

// Mul returns m·n, so n is applied first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out mat.Dense
	out.Mul(m.dense(), n.dense())
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i*4+j] = out.At(i, j)
		}
	}
	return r
}

// Apply transforms v by m.
func (m Mat4) Apply(v Vec4) Vec4 {
	var out mat.VecDense
	out.MulVec(m.dense(), mat.NewVecDense(4, v.slice()))
	return Vec4{out.AtVec(0), out.AtVec(1), out.AtVec(2), out.AtVec(3)}
}

// ApproxEqual compares element-wise within eps.
func (m Mat4) ApproxEqual(n Mat4, eps float64) bool {
	return mat.EqualApprox(m.dense(), n.dense(), eps)
}

func (m Mat4) IsIdentity() bool { return m.ApproxEqual(Identity, 1e-12) }

// Inverse returns m⁻¹, or false if m is singular.
func (m Mat4) Inverse() (Mat4, bool) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Mat4{}, false
	}
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i*4+j] = inv.At(i, j)
		}
	}
	return r, true
}

func Translate(tx, ty float64) Mat4 {
	return Mat4{
		1, 0, 0, tx,
		0, 1, 0, ty,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale scales the X and Y axes; Z and W are left alone.
func Scale(sx, sy float64) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotate rotates about the Z axis by rad (counter-clockwise for positive rad).
func Rotate(rad float64) Mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// About conjugates m with a translation so it acts around pivot instead of
// the origin: T(pivot)·m·T(-pivot).
func About(m Mat4, pivot Vec4) Mat4 {
	return Translate(pivot.X, pivot.Y).Mul(m).Mul(Translate(-pivot.X, -pivot.Y))
}

// Rect is an axis-aligned rectangle defined by min corner and size. Z is not
// tracked.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Min() Vec4 { return P(r.X, r.Y) }
func (r Rect) Max() Vec4 { return P(r.X+r.W, r.Y+r.H) }

// Contains is inclusive on every edge.
func (r Rect) Contains(p Vec4) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Bounds returns the smallest rectangle containing every point.
func Bounds(pts ...Vec4) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
