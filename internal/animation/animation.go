/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package animation interpolates a triangle between two captured poses.
package animation

import (
	"context"
	"time"

	"trieditor/internal/vector"
)

const (
	DefaultSteps = 10
	DefaultDelay = 250 * time.Millisecond
)

// Kind selects the interpolation curve.
type Kind int

const (
	Linear Kind = iota
	Bezier
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Bezier:
		return "bezier"
	}
	return "unknown"
}

// Lerp is p0 + t(p2 - p0).
func Lerp(p0, p2 vector.Vec4, t float64) vector.Vec4 {
	return p0.Add(p2.Sub(p0).Mul(t))
}

// Quadratic evaluates the quadratic Bézier curve (1-t)²p0 + 2t(1-t)p1 + t²p2.
func Quadratic(p0, p1, p2 vector.Vec4, t float64) vector.Vec4 {
	u := 1 - t
	return p0.Mul(u * u).Add(p1.Mul(2 * t * u)).Add(p2.Mul(t * t))
}

// ControlPoint turns a displacement d into the Bézier control point: d rotated
// by 90 degrees in the xy plane, so the arc bulges sideways.
func ControlPoint(d vector.Vec4) vector.Vec4 {
	return vector.Vec4{X: d.Y, Y: -d.X, Z: d.Z, W: d.W}
}

// Frame is one step of a run.
type Frame struct {
	Index     int
	T         float64
	Positions [3]vector.Vec4
	Last      bool
}

// Task is a resumable animation of three vertices. The host drives it with
// Tick; nothing in a Task blocks.
type Task struct {
	Kind     Kind
	From, To [3]vector.Vec4
	Control  [3]vector.Vec4
	Steps    int
	Delay    time.Duration

	next    int
	elapsed time.Duration
	done    bool
}

// NewTask captures the endpoints of a run with the default schedule.
func NewTask(kind Kind, from, to [3]vector.Vec4) *Task {
	t := &Task{Kind: kind, From: from, To: to, Steps: DefaultSteps, Delay: DefaultDelay}
	for k := range from {
		t.Control[k] = ControlPoint(to[k].Sub(from[k]))
	}
	return t
}

// Frame returns step i of Steps, evaluated at t = i/Steps.
func (t *Task) Frame(i int) Frame {
	steps := t.steps()
	if i > steps {
		i = steps
	}
	f := Frame{Index: i, T: float64(i) / float64(steps), Last: i == steps}
	for k := range f.Positions {
		var p vector.Vec4
		switch t.Kind {
		case Bezier:
			p = Quadratic(t.From[k], t.Control[k], t.To[k], f.T)
		default:
			p = Lerp(t.From[k], t.To[k], f.T)
		}
		p.W = 1
		f.Positions[k] = p
	}
	return f
}

// Frames returns the whole run, Steps+1 frames.
func (t *Task) Frames() []Frame {
	out := make([]Frame, 0, t.steps()+1)
	for i := 0; i <= t.steps(); i++ {
		out = append(out, t.Frame(i))
	}
	return out
}

// Tick advances the clock by dt and returns the frames that became due.
// Frame i is due once i*Delay has elapsed, so the first Tick yields frame 0.
func (t *Task) Tick(dt time.Duration) []Frame {
	if t.done {
		return nil
	}
	t.elapsed += dt
	var out []Frame
	for !t.done && time.Duration(t.next)*t.Delay <= t.elapsed {
		f := t.Frame(t.next)
		out = append(out, f)
		t.next++
		t.done = f.Last
	}
	return out
}

// Done reports whether the final frame has been emitted.
func (t *Task) Done() bool { return t.done }

// Cancel abandons the run and returns the final frame so the caller can land
// on the target pose.
func (t *Task) Cancel() Frame {
	t.done = true
	t.next = t.steps() + 1
	return t.Frame(t.steps())
}

func (t *Task) steps() int {
	if t.Steps <= 0 {
		return DefaultSteps
	}
	return t.Steps
}

// Play runs t to completion, calling apply for every frame and waiting Delay
// between frames. If ctx ends first the final frame is applied and ctx.Err()
// returned.
func Play(ctx context.Context, t *Task, apply func(Frame) error) error {
	for !t.done {
		f := t.Frame(t.next)
		t.next++
		t.done = f.Last
		if err := apply(f); err != nil {
			t.Cancel()
			return err
		}
		if t.done || t.Delay <= 0 {
			continue
		}
		timer := time.NewTimer(t.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			if err := apply(t.Cancel()); err != nil {
				return err
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
