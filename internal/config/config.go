/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type EditorConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	FrameDelayMs   int `yaml:"frame_delay_ms"` // negative disables the wait between frames
	AnimationSteps int `yaml:"animation_steps"`
}

type ExportConfig struct {
	Scale   float64 `yaml:"scale"`
	PDFSize float64 `yaml:"pdf_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor:        EditorConfig{Width: 500, Height: 500, FrameDelayMs: 250, AnimationSteps: 10},
		Export:        ExportConfig{Scale: 1, PDFSize: 500},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "TRI_CONFIG"
	EnvWidth        = "TRI_WIDTH"
	EnvHeight       = "TRI_HEIGHT"
	EnvFrameDelayMs = "TRI_FRAME_DELAY_MS"
	EnvExportScale  = "TRI_EXPORT_SCALE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "TRI_LOG_LEVEL"
	EnvLogFormat = "TRI_LOG_FORMAT"
	EnvLogSource = "TRI_LOG_SOURCE"
	EnvLogFile   = "TRI_LOG_FILE"
)

// ConfigPath returns the per-user config file path. TRI_CONFIG wins if set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "TriEditor")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "TriEditor")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "trieditor")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file. A missing file is not an error; a malformed one is.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Editor.Width > 0 {
		dst.Editor.Width = src.Editor.Width
	}
	if src.Editor.Height > 0 {
		dst.Editor.Height = src.Editor.Height
	}
	if src.Editor.FrameDelayMs != 0 {
		dst.Editor.FrameDelayMs = src.Editor.FrameDelayMs
	}
	if src.Editor.AnimationSteps > 0 {
		dst.Editor.AnimationSteps = src.Editor.AnimationSteps
	}
	if src.Export.Scale > 0 {
		dst.Export.Scale = src.Export.Scale
	}
	if src.Export.PDFSize > 0 {
		dst.Export.PDFSize = src.Export.PDFSize
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if n, ok := envInt(EnvWidth); ok && n > 0 {
		cfg.Editor.Width = n
	}
	if n, ok := envInt(EnvHeight); ok && n > 0 {
		cfg.Editor.Height = n
	}
	if n, ok := envInt(EnvFrameDelayMs); ok {
		cfg.Editor.FrameDelayMs = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Export.Scale = f
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"editor.width":          EnvWidth,
		"editor.height":         EnvHeight,
		"editor.frame_delay_ms": EnvFrameDelayMs,
		"export.scale":          EnvExportScale,
		"logging.level":         EnvLogLevel,
		"logging.format":        EnvLogFormat,
		"logging.source":        EnvLogSource,
		"logging.file":          EnvLogFile,
	}
	if env, ok := names[key]; ok && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// FrameDelay converts FrameDelayMs. Negative values mean no wait and map to a negative duration.
func (e EditorConfig) FrameDelay() time.Duration {
	if e.FrameDelayMs < 0 {
		return -1
	}
	return time.Duration(e.FrameDelayMs) * time.Millisecond
}
