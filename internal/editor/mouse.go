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

	"trieditor/internal/hittest"
	"trieditor/internal/scene"
	"trieditor/internal/vector"
)

// EventKind tells mouse events apart.
type EventKind int

const (
	Move EventKind = iota
	Press
	Wheel
)

// MouseEvent carries pixel coordinates as delivered by the host. DX/DY hold
// the relative motion for Move and the scroll amount for Wheel.
type MouseEvent struct {
	Kind   EventKind
	X, Y   int
	DX, DY int
	Button int
	Clicks int
	Up     bool
}

// HandleMouse dispatches one mouse event. Input is ignored while an
// animation plays.
func HandleMouse(c *Context, ev MouseEvent) {
	if c.Animating() {
		return
	}
	p := ToNDC(ev.X, ev.Y, c.Width, c.Height)
	switch ev.Kind {
	case Move:
		c.move(p)
	case Press:
		c.press(p, ev.Up)
	case Wheel:
		c.log.Debug("wheel", slog.Int("dx", ev.DX), slog.Int("dy", ev.DY))
	}
}

// EndDrag forgets a held button without a release event, as when the
// pointer leaves the window. The selection and pending clicks are kept.
func EndDrag(c *Context) {
	if !c.pressed {
		return
	}
	if c.dragging {
		c.log.Debug("drag abandoned", slog.Int("index", c.Selected()))
	}
	c.pressed, c.dragging = false, false
	c.changed()
}

func (c *Context) move(p vector.Vec4) {
	switch {
	case c.Mode == Insertion:
		if c.Builder.Move(c.unproject(p)) {
			c.changed()
		}
	case c.Mode.translating():
		if !c.pressed || c.Selected() == scene.None {
			return
		}
		// W=0, so unprojecting drops the pan and keeps the zoom: the
		// triangle tracks the cursor at any zoom level.
		d := c.unproject(p.Sub(c.last))
		c.last = p
		c.dragging = true
		c.Uniforms.TranslateBy(d)
		c.changed()
	}
}

func (c *Context) press(p vector.Vec4, up bool) {
	switch {
	case c.Mode == Insertion:
		if !up {
			return
		}
		if idx, ok := c.Builder.Click(c.Scene, c.unproject(p)); ok {
			c.log.Debug("triangle committed", slog.Int("index", idx), slog.Int("triangles", c.Scene.Len()))
		}
		c.changed()
	case c.Mode == Deletion:
		if !up {
			c.deleteAt(p)
		}
	case c.Mode.translating():
		c.pick(p, up)
	case c.Mode == Color:
		if !up {
			c.pickVertex(p)
		}
	}
}

func (c *Context) deleteAt(p vector.Vec4) {
	idx := hittest.SelectTriangle(c.Scene, c.Transformer(), p)
	if idx == hittest.None {
		return
	}
	if idx == c.Selected() {
		c.selected = scene.NoHandle
	}
	if err := c.Scene.Erase(idx); err != nil {
		c.log.Error("erase failed", slog.Int("index", idx), slog.Any("err", err))
		return
	}
	c.Uniforms.Reset()
	c.log.Debug("triangle deleted", slog.Int("index", idx), slog.Int("triangles", c.Scene.Len()))
	c.changed()
}

// pick handles presses in Translation: a press on a triangle selects it and
// starts a drag, a release ends the drag, a press on empty space deselects.
func (c *Context) pick(p vector.Vec4, up bool) {
	idx := hittest.SelectTriangle(c.Scene, c.Transformer(), p)
	if idx == hittest.None {
		if c.Selected() != scene.None {
			c.commitSelection()
		}
		c.pressed, c.dragging = false, false
		return
	}
	if up {
		if c.pressed {
			if c.dragging {
				c.log.Debug("drag finished", slog.Int("index", c.Selected()))
			}
			c.pressed, c.dragging = false, false
			c.changed()
		}
		return
	}
	c.selectTriangle(idx)
	c.last = p
	c.pressed = true
	c.changed()
}

func (c *Context) pickVertex(p vector.Vec4) {
	xf := c.Transformer()
	tri := hittest.SelectTriangle(c.Scene, xf, p)
	if tri == hittest.None {
		c.target = scene.NoHandle
		return
	}
	c.target = c.Scene.Handle(hittest.NearestVertex(c.Scene, xf, tri, p))
}
