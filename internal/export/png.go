/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"trieditor/internal/render"
)

// PNGOptions controls PNG export behavior.
// - Scale: output size relative to the frame; 0 means 1. Upscaling uses
//   Catmull-Rom resampling.
type PNGOptions struct {
	Scale float64
}

// FrameName is the file name of the n-th frame written by a session.
func FrameName(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("frame-%04d.png", n))
}

// WritePNG encodes f as a PNG at path, creating the directory if needed.
func WritePNG(path string, f render.Frame, opt PNGOptions) error {
	if f.Empty() {
		return fmt.Errorf("write png %s: empty frame", path)
	}
	var img image.Image = f.Image()
	if s := opt.Scale; s > 0 && s != 1 {
		w := int(math.Round(float64(f.Width) * s))
		h := int(math.Round(float64(f.Height) * s))
		if w < 1 || h < 1 {
			return fmt.Errorf("write png %s: scale %v too small", path, s)
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}
