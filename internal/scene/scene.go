/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene owns the editor's geometry: a flat list of vertices in which
// every three consecutive entries form one triangle, plus the buffers used
// while a new triangle is being placed.
package scene

import (
	"errors"
	"fmt"

	"trieditor/internal/vector"
)

// None marks "no triangle" / "no vertex".
const None = -1

var (
	ErrBrokenInvariant = errors.New("scene: vertex count is not a multiple of 3")
	ErrStaleHandle     = errors.New("scene: stale handle")
	ErrBadIndex        = errors.New("scene: index is not a triangle boundary")
)

// Vertex is one corner of a triangle. Barycenter is the centroid of the
// owning triangle and is identical on all three of its vertices.
type Vertex struct {
	Position   vector.Vec4
	Color      vector.Color
	Selected   bool
	Barycenter vector.Vec4
}

// Handle is an index tagged with the scene generation it was taken from.
// Erasing triangles bumps the generation, so handles taken before an erase
// no longer resolve.
type Handle struct {
	Index int
	Gen   uint64
}

// NoHandle never resolves.
var NoHandle = Handle{Index: None}

func (h Handle) Valid() bool { return h.Index >= 0 }

// Scene is the list of committed triangles.
type Scene struct {
	Vertices []Vertex
	gen      uint64
}

func New() *Scene { return &Scene{} }

// Len returns the number of triangles.
func (s *Scene) Len() int { return len(s.Vertices) / 3 }

// Generation changes whenever indices may have shifted.
func (s *Scene) Generation() uint64 { return s.gen }

// Append adds a triangle, stamping its barycenter, and returns the index of
// its first vertex.
func (s *Scene) Append(a, b, c Vertex) int {
	idx := len(s.Vertices)
	s.Vertices = append(s.Vertices, a, b, c)
	s.restamp(idx)
	return idx
}

// Erase removes the triangle starting at vertex index i.
func (s *Scene) Erase(i int) error {
	if err := s.checkTriangle(i); err != nil {
		return err
	}
	s.Vertices = append(s.Vertices[:i], s.Vertices[i+3:]...)
	s.gen++
	return nil
}

// Triangle returns the three vertices of the triangle starting at i. The
// returned slice aliases the scene.
func (s *Scene) Triangle(i int) []Vertex {
	if s.checkTriangle(i) != nil {
		return nil
	}
	return s.Vertices[i : i+3]
}

// Handle tags index i with the current generation.
func (s *Scene) Handle(i int) Handle {
	if i < 0 {
		return NoHandle
	}
	return Handle{Index: i, Gen: s.gen}
}

// Resolve returns the index behind h, or ErrStaleHandle if the scene changed
// shape since h was taken.
func (s *Scene) Resolve(h Handle) (int, error) {
	if !h.Valid() {
		return None, ErrStaleHandle
	}
	if h.Gen != s.gen || h.Index >= len(s.Vertices) {
		return None, fmt.Errorf("resolve %d@%d (now @%d): %w", h.Index, h.Gen, s.gen, ErrStaleHandle)
	}
	return h.Index, nil
}

// SetSelected flags all vertices of triangle i.
func (s *Scene) SetSelected(i int, on bool) {
	for k := range s.Triangle(i) {
		s.Vertices[i+k].Selected = on
	}
}

// SetColor paints all vertices of triangle i.
func (s *Scene) SetColor(i int, c vector.Color) {
	for k := range s.Triangle(i) {
		s.Vertices[i+k].Color = c
	}
}

// Bake writes m into the positions of triangle i and re-stamps the barycenter.
func (s *Scene) Bake(i int, m vector.Mat4) {
	tri := s.Triangle(i)
	if tri == nil {
		return
	}
	for k := range tri {
		tri[k].Position = m.Apply(tri[k].Position)
	}
	s.restamp(i)
}

// SetPositions replaces the positions of triangle i without touching the
// barycenter; animation frames use this so the pivot stays where the run
// started.
func (s *Scene) SetPositions(i int, pts [3]vector.Vec4) {
	tri := s.Triangle(i)
	for k := range tri {
		tri[k].Position = pts[k]
	}
}

// Positions returns the raw positions of triangle i.
func (s *Scene) Positions(i int) [3]vector.Vec4 {
	var out [3]vector.Vec4
	for k, v := range s.Triangle(i) {
		out[k] = v.Position
	}
	return out
}

// Restamp recomputes the barycenter of triangle i from its positions.
func (s *Scene) Restamp(i int) {
	if s.checkTriangle(i) == nil {
		s.restamp(i)
	}
}

func (s *Scene) restamp(i int) {
	v := s.Vertices[i : i+3]
	c := vector.Centroid(v[0].Position, v[1].Position, v[2].Position)
	for k := range v {
		v[k].Barycenter = c
	}
}

// Check reports a broken triangle-list invariant.
func (s *Scene) Check() error {
	if len(s.Vertices)%3 != 0 {
		return fmt.Errorf("%d vertices: %w", len(s.Vertices), ErrBrokenInvariant)
	}
	return nil
}

func (s *Scene) checkTriangle(i int) error {
	if i < 0 || i%3 != 0 || i+2 >= len(s.Vertices) {
		return fmt.Errorf("triangle %d of %d vertices: %w", i, len(s.Vertices), ErrBadIndex)
	}
	return nil
}
