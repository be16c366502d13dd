/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Editor.Width != 500 || cfg.Editor.Height != 500 || cfg.Editor.AnimationSteps != 10 {
		t.Fatalf("unexpected defaults: %#v", cfg.Editor)
	}
	if cfg.Editor.FrameDelay() != 250*time.Millisecond {
		t.Fatalf("FrameDelay = %v", cfg.Editor.FrameDelay())
	}
}

func TestLoadFromMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "editor:\n  width: 640\n  frame_delay_ms: -1\nlogging:\n  level: DEBUG\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Editor.Width != 640 || cfg.Editor.Height != 500 {
		t.Fatalf("width/height not merged: %#v", cfg.Editor)
	}
	if cfg.Editor.FrameDelay() >= 0 {
		t.Fatalf("negative frame delay should disable waiting")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Editor.Width != 500 {
		t.Fatalf("defaults should survive a parse error")
	}
}

func TestEnvOverridesEditor(t *testing.T) {
	t.Setenv(EnvWidth, "320")
	t.Setenv(EnvFrameDelayMs, "0")
	t.Setenv(EnvExportScale, "2.5")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Editor.Width != 320 || cfg.Editor.FrameDelayMs != 0 || cfg.Export.Scale != 2.5 {
		t.Fatalf("env overrides not applied: %#v %#v", cfg.Editor, cfg.Export)
	}
	if env, ok := EnvOverrideFor("editor.width"); !ok || env != EnvWidth {
		t.Fatalf("EnvOverrideFor(editor.width) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("editor.height"); ok {
		t.Fatalf("height is not overridden")
	}
}

func TestConfigPathHonoursEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, want)
	got, err := ConfigPath()
	if err != nil || got != want {
		t.Fatalf("ConfigPath() = %q, %v", got, err)
	}
	cfg := Defaults()
	cfg.Editor.Width = 800
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	back, err := Load()
	if err != nil || back.Editor.Width != 800 {
		t.Fatalf("round trip through Save/Load failed: %#v, %v", back.Editor, err)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/tri.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/tri.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/tri.log")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/tri.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}
