/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "trieditor/internal/vector"

// DefaultColor is assigned to every newly committed triangle.
var DefaultColor = vector.Blue

// Builder accumulates clicks until a triangle can be committed.
// Pending holds the committed clicks (0–2 between commits); Preview holds the
// same clicks plus the live cursor point used for rubber-banding.
type Builder struct {
	Pending []vector.Vec4
	Preview []vector.Vec4
}

// Clicks returns how many corners of the current triangle have been placed.
func (b *Builder) Clicks() int { return len(b.Pending) }

// Click places a corner. On the third click the triangle is appended to s and
// its index is returned with ok=true; both buffers are cleared.
func (b *Builder) Click(s *Scene, p vector.Vec4) (idx int, ok bool) {
	b.Pending = append(b.Pending, p)
	if len(b.Pending) < 3 {
		b.Preview = append(append(b.Preview[:0], b.Pending...), p)
		return None, false
	}
	var v [3]Vertex
	for k, q := range b.Pending {
		v[k] = Vertex{Position: q, Color: DefaultColor}
	}
	idx = s.Append(v[0], v[1], v[2])
	b.Reset()
	return idx, true
}

// Move updates the live point. It reports whether the preview changed.
func (b *Builder) Move(p vector.Vec4) bool {
	n := len(b.Pending)
	if n == 0 || n > 2 {
		return false
	}
	b.Preview = append(append(b.Preview[:0], b.Pending...), p)
	return true
}

// Live returns the current cursor point, falling back to the last click.
func (b *Builder) Live() (vector.Vec4, bool) {
	if len(b.Preview) == 0 {
		return vector.Vec4{}, false
	}
	return b.Preview[len(b.Preview)-1], true
}

// Outline returns line segments as point pairs: with one click a single segment
// to the cursor, with two the closed outline whose third corner is the cursor.
func (b *Builder) Outline() []vector.Vec4 {
	live, ok := b.Live()
	if !ok {
		return nil
	}
	switch len(b.Pending) {
	case 1:
		return []vector.Vec4{b.Pending[0], live}
	case 2:
		p0, p1 := b.Pending[0], b.Pending[1]
		return []vector.Vec4{p0, p1, p1, live, live, p0}
	}
	return nil
}

// Reset drops any half-built triangle.
func (b *Builder) Reset() {
	b.Pending = b.Pending[:0]
	b.Preview = b.Preview[:0]
}
