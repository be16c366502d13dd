/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

// Mode is the active editing mode.
type Mode int

const (
	Insertion Mode = iota
	Translation
	Deletion
	Color
	// Animation is an overlay on Translation: mouse and transform keys
	// behave the same, and n/b start a playback.
	Animation
)

// ExitKey leaves the Animation overlay. Finished animations synthesize it.
const ExitKey = 'q'

var modeKeys = map[rune]Mode{
	'i': Insertion,
	'o': Translation,
	'p': Deletion,
	'c': Color,
	'm': Animation,
}

func (m Mode) String() string {
	switch m {
	case Insertion:
		return "insertion"
	case Translation:
		return "translation"
	case Deletion:
		return "deletion"
	case Color:
		return "color"
	case Animation:
		return "animation"
	}
	return "unknown"
}

// translating reports whether mouse drags and k/l/h/j act on the selection.
func (m Mode) translating() bool { return m == Translation || m == Animation }

const welcomeText = `Welcome to the triangle editor. Modes and their keys:
  i  insertion
  o  translation
  p  deletion
  c  color
  m  animation
You are in insertion mode. Click three points to place a triangle.`

var modeText = map[Mode]string{
	Insertion: "Insertion mode. Click three points to place a triangle.",
	Translation: `Translation mode.
  drag  move the selected triangle
  k     scale up
  l     scale down
  h     rotate clockwise
  j     rotate counter-clockwise`,
	Deletion: "Deletion mode. Click a triangle to delete it.",
	Color:    "Color mode. Click inside a triangle to pick its closest vertex, then press 1-9.",
	Animation: `Animation mode. Drag the selected triangle to its target, then press
  n  linear interpolation
  b  Bezier curve interpolation`,
}

// KeyHelp lists every binding, one per line.
const KeyHelp = `i o p c m   insertion / translation / deletion / color / animation mode
q           leave animation mode
k l         scale the selected triangle up / down
h j         rotate the selected triangle clockwise / counter-clockwise
n b         animate linearly / along a Bezier curve (animation mode)
1-9         color the picked vertex (color mode)
W V         zoom in / out
w s a d     pan down / up / right / left`
