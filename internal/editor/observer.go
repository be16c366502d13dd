/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"io"
	"log/slog"
)

// Observer receives the editor's user-facing messages.
type Observer interface {
	// ModeEntered is called exactly once per mode entry, re-entries included.
	ModeEntered(m Mode, text string)
	Notice(text string)
}

// LogObserver reports messages through slog.
type LogObserver struct{ L *slog.Logger }

func (o LogObserver) ModeEntered(m Mode, text string) {
	o.L.Info("mode entered", slog.String("mode", m.String()))
	o.L.Debug(text)
}

func (o LogObserver) Notice(text string) { o.L.Info(text) }

// WriterObserver prints messages as plain text, one block per message.
type WriterObserver struct{ W io.Writer }

func (o WriterObserver) ModeEntered(_ Mode, text string) { _, _ = fmt.Fprintln(o.W, text) }
func (o WriterObserver) Notice(text string)              { _, _ = fmt.Fprintln(o.W, text) }

// Observers fans messages out to several observers.
type Observers []Observer

func (all Observers) ModeEntered(m Mode, text string) {
	for _, o := range all {
		o.ModeEntered(m, text)
	}
}

func (all Observers) Notice(text string) {
	for _, o := range all {
		o.Notice(text)
	}
}

type nopObserver struct{}

func (nopObserver) ModeEntered(Mode, string) {}
func (nopObserver) Notice(string)            {}
