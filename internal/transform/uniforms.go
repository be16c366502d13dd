/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package transform holds the uniform matrices shared by the vertex stage and
// the hit tester: a global view (pan/zoom) and the translate, rotate and scale
// matrices that apply to the selected triangle.
package transform

import (
	"trieditor/internal/scene"
	"trieditor/internal/vector"
)

// Step sizes per key press.
const (
	ScaleStep  = 0.25
	RotateStep = 0.17453292519 // 10 degrees
	ZoomStep   = 0.2
	PanStep    = 0.2
)

// Tags recorded in Uniforms.Mode for the last transform-producing key.
const (
	OpTranslate = 'o'
	OpScaleUp   = 'k'
	OpScaleDown = 'l'
	OpRotateCW  = 'h'
	OpRotateCCW = 'j'
	OpZoomIn    = 'W'
	OpZoomOut   = 'V'
	OpPanDown   = 'w'
	OpPanUp     = 's'
	OpPanRight  = 'a'
	OpPanLeft   = 'd'
)

// Uniforms is the transform bundle. Every action pre-multiplies its matrix
// (new × existing) so repeated presses accumulate.
type Uniforms struct {
	View      vector.Mat4
	Translate vector.Mat4
	Rotate    vector.Mat4
	Scale     vector.Mat4

	ScaleFactor    float64
	RotateRadians  float64
	TranslateDelta vector.Vec4
	ZoomFactor     float64
	Mode           rune
}

// NewUniforms returns the bundle at rest with an identity view.
func NewUniforms() *Uniforms {
	u := &Uniforms{View: vector.Identity, ZoomFactor: 1}
	u.Reset()
	return u
}

// Reset returns the object matrices and their scalars to neutral. View is kept.
func (u *Uniforms) Reset() {
	u.Translate = vector.Identity
	u.Rotate = vector.Identity
	u.Scale = vector.Identity
	u.ScaleFactor = 1
	u.RotateRadians = 0
	u.TranslateDelta = vector.Vec4{}
}

// AtRest reports whether all object matrices are identity.
func (u *Uniforms) AtRest() bool {
	return u.Translate.IsIdentity() && u.Rotate.IsIdentity() && u.Scale.IsIdentity()
}

// TranslateBy accumulates a drag delta.
func (u *Uniforms) TranslateBy(delta vector.Vec4) {
	u.TranslateDelta = delta
	u.Translate = vector.Translate(delta.X, delta.Y).Mul(u.Translate)
	u.Mode = OpTranslate
}

// ScaleUp snaps a shrinking factor back to 1 before growing it.
func (u *Uniforms) ScaleUp() {
	if u.ScaleFactor < 1 {
		u.ScaleFactor = 1
	}
	u.ScaleFactor += ScaleStep
	u.applyScale(OpScaleUp)
}

// ScaleDown snaps a growing factor back to 1 before shrinking it. The factor
// never drops below one step.
func (u *Uniforms) ScaleDown() {
	if u.ScaleFactor > 1 {
		u.ScaleFactor = 1
	}
	if u.ScaleFactor-ScaleStep >= ScaleStep-1e-9 {
		u.ScaleFactor -= ScaleStep
	}
	u.applyScale(OpScaleDown)
}

func (u *Uniforms) applyScale(op rune) {
	u.Scale = vector.Scale(u.ScaleFactor, u.ScaleFactor).Mul(u.Scale)
	u.Mode = op
}

// RotateCW turns clockwise (negative angle with Y up), snapping a positive
// angle to 0 first.
func (u *Uniforms) RotateCW() {
	if u.RotateRadians > 0 {
		u.RotateRadians = 0
	}
	u.RotateRadians -= RotateStep
	u.applyRotate(OpRotateCW)
}

// RotateCCW turns counter-clockwise, snapping a negative angle to 0 first.
func (u *Uniforms) RotateCCW() {
	if u.RotateRadians < 0 {
		u.RotateRadians = 0
	}
	u.RotateRadians += RotateStep
	u.applyRotate(OpRotateCCW)
}

func (u *Uniforms) applyRotate(op rune) {
	u.Rotate = vector.Rotate(u.RotateRadians).Mul(u.Rotate)
	u.Mode = op
}

// ZoomIn grows the view, snapping a shrinking zoom back to 1 first.
func (u *Uniforms) ZoomIn() {
	if u.ZoomFactor < 1 {
		u.ZoomFactor = 1
	}
	u.ZoomFactor += ZoomStep
	u.applyZoom(OpZoomIn)
}

// ZoomOut shrinks the view; the factor never drops below one step.
func (u *Uniforms) ZoomOut() {
	if u.ZoomFactor > 1 {
		u.ZoomFactor = 1
	}
	if u.ZoomFactor-ZoomStep >= ZoomStep-1e-9 {
		u.ZoomFactor -= ZoomStep
	}
	u.applyZoom(OpZoomOut)
}

func (u *Uniforms) applyZoom(op rune) {
	u.View = vector.Scale(u.ZoomFactor, u.ZoomFactor).Mul(u.View)
	u.Mode = op
}

// Pan moves the view by (dx, dy) in device units.
func (u *Uniforms) Pan(op rune, dx, dy float64) {
	u.View = vector.Translate(dx, dy).Mul(u.View)
	u.Mode = op
}

// Object is the selected triangle's own matrix: translate after rotate and
// scale taken about pivot.
func (u *Uniforms) Object(pivot vector.Vec4) vector.Mat4 {
	return u.Translate.Mul(vector.About(u.Rotate.Mul(u.Scale), pivot))
}

// Composed is View · Object(pivot).
func (u *Uniforms) Composed(pivot vector.Vec4) vector.Mat4 {
	return u.View.Mul(u.Object(pivot))
}

// Transformer yields the matrix the vertex stage applies to triangle tri.
type Transformer interface {
	MatrixFor(s *scene.Scene, tri int) vector.Mat4
}

// Fixed applies the same matrix to every triangle.
type Fixed vector.Mat4

func (f Fixed) MatrixFor(*scene.Scene, int) vector.Mat4 { return vector.Mat4(f) }

// Selection applies the object matrices to the triangle at Index only; every
// other triangle sees the view alone.
type Selection struct {
	U     *Uniforms
	Index int
}

func (sel Selection) MatrixFor(s *scene.Scene, tri int) vector.Mat4 {
	if sel.Index < 0 || tri != sel.Index {
		return sel.U.View
	}
	v := s.Triangle(tri)
	if v == nil {
		return sel.U.View
	}
	return sel.U.Composed(v[0].Barycenter)
}
