/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script replays recorded input sessions without a window. A script is
// a JSON document listing key and mouse events; every redraw the editor asks
// for becomes a PNG frame.
package script

import "errors"

// ErrInvalidScript wraps every validation failure.
var ErrInvalidScript = errors.New("invalid script")

// Script is a validated input session.
type Script struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Events []Event `json:"events"`
}

// EventType names an input event.
type EventType string

const (
	EventKey     EventType = "key"
	EventKeys    EventType = "keys" // several keys in a row
	EventClick   EventType = "click"
	EventPress   EventType = "press"
	EventRelease EventType = "release"
	EventMove    EventType = "move"
	EventWheel   EventType = "wheel"
	EventRedraw  EventType = "redraw"
	EventWait    EventType = "wait" // advances the animation clock by MS
)

// Event is one entry of a script. Coordinates are pixels, origin top left.
type Event struct {
	Type   EventType `json:"type"`
	Key    string    `json:"key,omitempty"`
	Keys   string    `json:"keys,omitempty"`
	X      int       `json:"x,omitempty"`
	Y      int       `json:"y,omitempty"`
	DX     int       `json:"dx,omitempty"`
	DY     int       `json:"dy,omitempty"`
	Button int       `json:"button,omitempty"`
	MS     int       `json:"ms,omitempty"`
}

// UsesWait reports whether any event is a wait.
func (s Script) UsesWait() bool {
	for _, ev := range s.Events {
		if ev.Type == EventWait {
			return true
		}
	}
	return false
}

// Error is a schema violation with its JSON location.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string { return e.Field + ": " + e.Message }
