/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"

	"trieditor/internal/animation"
	"trieditor/internal/scene"
	"trieditor/internal/transform"
	"trieditor/internal/vector"
)

type viewAction struct {
	notice string
	apply  func(u *transform.Uniforms)
}

var viewKeys = map[rune]viewAction{
	'W': {"Zooming in", func(u *transform.Uniforms) { u.ZoomIn() }},
	'V': {"Zooming out", func(u *transform.Uniforms) { u.ZoomOut() }},
	'w': {"Panning down", func(u *transform.Uniforms) { u.Pan(transform.OpPanDown, 0, -transform.PanStep) }},
	's': {"Panning up", func(u *transform.Uniforms) { u.Pan(transform.OpPanUp, 0, transform.PanStep) }},
	'a': {"Panning right", func(u *transform.Uniforms) { u.Pan(transform.OpPanRight, transform.PanStep, 0) }},
	'd': {"Panning left", func(u *transform.Uniforms) { u.Pan(transform.OpPanLeft, -transform.PanStep, 0) }},
}

var objectKeys = map[rune]func(u *transform.Uniforms){
	'k': (*transform.Uniforms).ScaleUp,
	'l': (*transform.Uniforms).ScaleDown,
	'h': (*transform.Uniforms).RotateCW,
	'j': (*transform.Uniforms).RotateCCW,
}

var animationKeys = map[rune]animation.Kind{
	'n': animation.Linear,
	'b': animation.Bezier,
}

// HandleKey dispatches one key press. Unknown keys are ignored.
//
// While an animation plays, only mode keys and ExitKey are accepted: they
// cancel the playback, landing the triangle on its target. ExitKey then
// returns to Translation; a mode key enters its mode directly, so exactly one
// mode message is emitted either way.
func HandleKey(c *Context, key rune) {
	if c.Animating() {
		if _, ok := modeKeys[key]; !ok && key != ExitKey {
			return
		}
		c.cancelAnimation(key == ExitKey)
		if key == ExitKey {
			return
		}
	}
	if m, ok := modeKeys[key]; ok {
		c.enter(m)
		return
	}
	if key == ExitKey {
		if c.Mode == Animation {
			c.enter(Translation)
		}
		return
	}
	if a, ok := viewKeys[key]; ok {
		a.apply(c.Uniforms)
		c.obs.Notice(a.notice)
		c.changed()
		return
	}
	if c.Mode == Animation {
		if kind, ok := animationKeys[key]; ok {
			c.startAnimation(kind)
			return
		}
	}
	switch {
	case c.Mode.translating():
		c.objectKey(key)
	case c.Mode == Color:
		c.colorKey(key)
	}
}

func (c *Context) objectKey(key rune) {
	act, ok := objectKeys[key]
	if !ok || c.Selected() == scene.None {
		return
	}
	act(c.Uniforms)
	c.changed()
}

// Ramp maps '1'..'9' to the color (v, v+0.1, v+0.2, 1) with v = (d-1)·0.1.
func Ramp(key rune) (vector.Color, bool) {
	if key < '1' || key > '9' {
		return vector.Color{}, false
	}
	v := float64(key-'1') * 0.1
	return vector.Color{R: v, G: v + 0.1, B: v + 0.2, A: 1}, true
}

func (c *Context) colorKey(key rune) {
	col, ok := Ramp(key)
	if !ok {
		return
	}
	v := c.Target()
	if v == scene.None {
		return
	}
	c.Scene.Vertices[v].Color = col
	c.log.Debug("vertex colored", slog.Int("vertex", v), slog.String("key", string(key)))
	c.changed()
}
