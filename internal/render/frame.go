/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"image/color"
)

// Frame is a framebuffer split into four equally sized 8-bit planes, row
// major with the origin at the top left.
type Frame struct {
	Width, Height int
	R, G, B, A    []uint8
}

func NewFrame(w, h int) Frame {
	n := w * h
	return Frame{Width: w, Height: h, R: make([]uint8, n), G: make([]uint8, n), B: make([]uint8, n), A: make([]uint8, n)}
}

// FrameFromImage splits img into planes of straight (non-premultiplied) color.
func FrameFromImage(img image.Image) Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*f.Width + x
			f.R[i], f.G[i], f.B[i], f.A[i] = c.R, c.G, c.B, c.A
		}
	}
	return f
}

// At returns the pixel at (x, y); out of range reads are transparent.
func (f Frame) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.NRGBA{}
	}
	i := y*f.Width + x
	return color.NRGBA{R: f.R[i], G: f.G[i], B: f.B[i], A: f.A[i]}
}

// Image interleaves the planes again.
func (f Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		img.Pix[4*i+0] = f.R[i]
		img.Pix[4*i+1] = f.G[i]
		img.Pix[4*i+2] = f.B[i]
		img.Pix[4*i+3] = f.A[i]
	}
	return img
}

// Empty reports whether the frame holds no pixels.
func (f Frame) Empty() bool { return f.Width == 0 || f.Height == 0 }
