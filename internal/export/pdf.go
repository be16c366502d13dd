/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes editor output to disk: rendered frames as PNG and the
// scene itself as vector PDF.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"trieditor/internal/render"
	"trieditor/internal/scene"
	"trieditor/internal/transform"
	"trieditor/internal/vector"
)

// PDFOptions controls PDF export behavior.
// Units are points. The device square [-1, 1]² fills a Size×Size page.
type PDFOptions struct {
	Size  float64 // page edge in points; 0 means 500
	Title string
}

// WritePDF draws every triangle of s, transformed by xf, as a filled polygon.
// PDF has no per-vertex shading, so each triangle is filled with the mean of
// its vertex colors.
func WritePDF(path string, s *scene.Scene, xf transform.Transformer, opt PDFOptions) error {
	if s == nil {
		return fmt.Errorf("scene is nil")
	}
	if err := s.Check(); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	size := opt.Size
	if size <= 0 {
		size = 500
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: size, Ht: size},
	})
	title := opt.Title
	if title == "" {
		title = "Triangle scene"
	}
	pdf.SetTitle(title, false)
	pdf.SetAuthor("trieditor", false)
	pdf.AddPage()

	setFillColor(pdf, render.Background)
	pdf.Rect(0, 0, size, size, "F")

	toPage := func(p vector.Vec4) gofpdf.PointType {
		return gofpdf.PointType{X: (p.X + 1) / 2 * size, Y: (1 - p.Y) / 2 * size}
	}
	for i := 0; i+2 < len(s.Vertices); i += 3 {
		m := xf.MatrixFor(s, i)
		tri := s.Triangle(i)
		pts := make([]gofpdf.PointType, 0, 3)
		for _, v := range tri {
			pts = append(pts, toPage(m.Apply(v.Position)))
		}
		third := 1.0 / 3.0
		setFillColor(pdf, vector.Mix(tri[0].Color, tri[1].Color, tri[2].Color, third, third, third))
		pdf.Polygon(pts, "F")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	rgba := c.RGBA8()
	pdf.SetFillColor(int(rgba.R), int(rgba.G), int(rgba.B))
}
