/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/gg"

	"trieditor/internal/config"
	"trieditor/internal/crash"
	"trieditor/internal/editor"
	applog "trieditor/internal/log"
	"trieditor/internal/script"
	"trieditor/internal/ui"
	"trieditor/internal/version"
)

func usage() {
	fmt.Println("Triangle Editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  trieditor version|-v|--version         Show version")
	fmt.Println("  trieditor keys                         Print the key bindings")
	fmt.Println("  trieditor config [init]                Show the config path and settings, or write the defaults there")
	fmt.Println("  trieditor run <script.json> [outDir]   Replay an input script headless; frames and scene.pdf go to outDir")
	fmt.Println("  trieditor ui                           Launch the editor window (build with -tags fyne)")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.FromConfig(cfg.Logging))
	l := applog.WithComponent("cli")
	gg.SetLogger(applog.WithComponent("gg"))
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	defer crash.Recover(nil)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Triangle Editor")
		fmt.Println(version.String())
	case "keys":
		fmt.Print(editor.KeyHelp)
	case "config":
		path, err := config.ConfigPath()
		if err != nil {
			fail(l, "config path", err)
		}
		if len(args) > 2 && args[2] == "init" {
			if err := config.Save(config.Defaults()); err != nil {
				fail(l, "config save", err)
			}
			fmt.Println("Wrote defaults to", path)
			return
		}
		fmt.Println(path)
		printConfig(cfg)
	case "run":
		if len(args) < 3 {
			fmt.Println("run requires <script.json>")
			usage()
			os.Exit(2)
		}
		outDir := ""
		if len(args) > 3 {
			outDir, _ = filepath.Abs(args[3])
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				fail(l, "create output dir", err)
			}
		}
		if err := runScript(l, cfg, args[2], outDir); err != nil {
			fail(l, "run failed", err)
		}
	case "ui":
		if err := ui.Run(cfg); err != nil {
			l.Error("ui failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

// printConfig lists the effective settings, marking values taken from the environment.
func printConfig(cfg config.AppConfig) {
	rows := []struct {
		key string
		val any
	}{
		{"editor.width", cfg.Editor.Width},
		{"editor.height", cfg.Editor.Height},
		{"editor.frame_delay_ms", cfg.Editor.FrameDelayMs},
		{"editor.animation_steps", cfg.Editor.AnimationSteps},
		{"export.scale", cfg.Export.Scale},
		{"export.pdf_size", cfg.Export.PDFSize},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.source", cfg.Logging.Source},
		{"logging.file", cfg.Logging.File},
	}
	for _, r := range rows {
		if env, ok := config.EnvOverrideFor(r.key); ok {
			fmt.Printf("  %-22s %v (from %s)\n", r.key, r.val, env)
			continue
		}
		fmt.Printf("  %-22s %v\n", r.key, r.val)
	}
}

func runScript(l *slog.Logger, cfg config.AppConfig, path, outDir string) error {
	s, issues, err := script.Load(path)
	for _, is := range issues {
		fmt.Printf("  %s: %s\n", is.Field, is.Message)
	}
	if err != nil {
		return err
	}
	if s.Width == 0 {
		s.Width = cfg.Editor.Width
	}
	if s.Height == 0 {
		s.Height = cfg.Editor.Height
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = applog.WithScript(ctx, path)

	res, err := script.Run(ctx, s, script.Options{
		OutDir:     outDir,
		Scale:      cfg.Export.Scale,
		PDFSize:    cfg.Export.PDFSize,
		Steps:      cfg.Editor.AnimationSteps,
		FrameDelay: cfg.Editor.FrameDelay(),
		Observer:   editor.WriterObserver{W: os.Stdout},
		Logger:     l,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d frames, %d triangles (%s)\n", res.Frames, res.Triangles, res.Summary)
	return nil
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}
