/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package hittest picks triangles and vertices under a point in device
// coordinates.
package hittest

import (
	"trieditor/internal/scene"
	"trieditor/internal/transform"
	"trieditor/internal/vector"
)

// None is returned on a miss.
const None = scene.None

// SelectTriangle returns the first triangle, in insertion order, whose
// transformed bounding box contains p. Containment is inclusive and ignores z,
// so points near a box corner but outside the triangle still hit.
func SelectTriangle(s *scene.Scene, xf transform.Transformer, p vector.Vec4) int {
	for i := 0; i+2 < len(s.Vertices); i += 3 {
		pts := transformed(s, xf, i)
		if vector.Bounds(pts[:]...).Contains(p) {
			return i
		}
	}
	return None
}

// NearestVertex returns the global index of the vertex of triangle tri closest
// to p after transformation. Ties go to the lowest local index.
func NearestVertex(s *scene.Scene, xf transform.Transformer, tri int, p vector.Vec4) int {
	if s.Triangle(tri) == nil {
		return None
	}
	q := vector.Vec4{X: p.X, Y: p.Y, W: 1}
	best, bestDist := None, 0.0
	for k, v := range transformed(s, xf, tri) {
		v.Z, v.W = 0, 1
		if d := v.Dist(q); best == None || d < bestDist {
			best, bestDist = tri+k, d
		}
	}
	return best
}

func transformed(s *scene.Scene, xf transform.Transformer, tri int) [3]vector.Vec4 {
	m := xf.MatrixFor(s, tri)
	var out [3]vector.Vec4
	for k, v := range s.Triangle(tri) {
		out[k] = m.Apply(v.Position)
	}
	return out
}
