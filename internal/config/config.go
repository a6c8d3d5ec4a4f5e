/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration from a YAML file in the user
// scope and applies GSK_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CanvasConfig sets the drawing surface and the initial session state.
type CanvasConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"` // "light" | "dark"
	Tool   string `yaml:"tool"`  // "selection" | "line" | "rectangle" | "freehand"
}

// StrokeConfig is the default look of new elements.
type StrokeConfig struct {
	Color     string  `yaml:"color"`
	Width     float64 `yaml:"width"`
	Roughness float64 `yaml:"roughness"` // 0 draws clean strokes
}

type InteractionConfig struct {
	HitOrder     string `yaml:"hit_order"`     // "first" | "topmost"
	HistoryLimit int    `yaml:"history_limit"` // 0 = unlimited
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration.
// config_version: bump when the structure changes incompatibly.
type AppConfig struct {
	ConfigVersion int               `yaml:"config_version"`
	Canvas        CanvasConfig      `yaml:"canvas"`
	Stroke        StrokeConfig      `yaml:"stroke"`
	Interaction   InteractionConfig `yaml:"interaction"`
	Logging       LoggingConfig     `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas:        CanvasConfig{Width: 1024, Height: 768, Theme: "light", Tool: "selection"},
		Stroke:        StrokeConfig{Color: "#000000", Width: 2},
		Interaction:   InteractionConfig{HitOrder: "first", HistoryLimit: 0},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile   = "GSK_CONFIG"
	EnvCanvasWidth  = "GSK_CANVAS_WIDTH"
	EnvCanvasHeight = "GSK_CANVAS_HEIGHT"
	EnvTheme        = "GSK_THEME"
	EnvStrokeColor  = "GSK_STROKE_COLOR"
	EnvStrokeWidth  = "GSK_STROKE_WIDTH"
	EnvRoughness    = "GSK_ROUGHNESS"
	EnvHitOrder     = "GSK_HIT_ORDER"
	EnvHistoryLimit = "GSK_HISTORY_LIMIT"
	EnvLogLevel     = "GSK_LOG_LEVEL"
	EnvLogFormat    = "GSK_LOG_FORMAT"
	EnvLogSource    = "GSK_LOG_SOURCE"
	EnvLogFile      = "GSK_LOG_FILE"
)

// overrides maps dotted config keys to their env var.
var overrides = map[string]string{
	"canvas.width":              EnvCanvasWidth,
	"canvas.height":             EnvCanvasHeight,
	"canvas.theme":              EnvTheme,
	"stroke.color":              EnvStrokeColor,
	"stroke.width":              EnvStrokeWidth,
	"stroke.roughness":          EnvRoughness,
	"interaction.hit_order":     EnvHitOrder,
	"interaction.history_limit": EnvHistoryLimit,
	"logging.level":             EnvLogLevel,
	"logging.format":            EnvLogFormat,
	"logging.source":            EnvLogSource,
	"logging.file":              EnvLogFile,
}

// ErrInvalid wraps validation failures.
var ErrInvalid = errors.New("invalid config")

// ConfigPath returns the per-user config file path. GSK_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoSketch")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoSketch")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "gosketch")
		} else if h := os.Getenv("HOME"); h != "" {
			base = filepath.Join(h, ".config", "gosketch")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present, then applies env overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file yields the defaults.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to the user config path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	switch c.Canvas.Theme {
	case "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("canvas.theme %q: want light or dark", c.Canvas.Theme))
	}
	switch c.Canvas.Tool {
	case "selection", "line", "rectangle", "freehand":
	default:
		errs = append(errs, fmt.Errorf("canvas.tool %q is not a tool", c.Canvas.Tool))
	}
	if c.Stroke.Width <= 0 {
		errs = append(errs, fmt.Errorf("stroke.width %v must be positive", c.Stroke.Width))
	}
	if c.Stroke.Roughness < 0 {
		errs = append(errs, fmt.Errorf("stroke.roughness %v must not be negative", c.Stroke.Roughness))
	}
	if !strings.HasPrefix(c.Stroke.Color, "#") {
		errs = append(errs, fmt.Errorf("stroke.color %q: want a hex color", c.Stroke.Color))
	}
	switch c.Interaction.HitOrder {
	case "first", "topmost":
	default:
		errs = append(errs, fmt.Errorf("interaction.hit_order %q: want first or topmost", c.Interaction.HitOrder))
	}
	if c.Interaction.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("interaction.history_limit %d must not be negative", c.Interaction.HistoryLimit))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	setLower(&dst.Canvas.Theme, src.Canvas.Theme)
	setLower(&dst.Canvas.Tool, src.Canvas.Tool)
	setLower(&dst.Stroke.Color, src.Stroke.Color)
	if src.Stroke.Width != 0 {
		dst.Stroke.Width = src.Stroke.Width
	}
	// roughness 0 is a valid choice, so the file value always wins
	dst.Stroke.Roughness = src.Stroke.Roughness
	setLower(&dst.Interaction.HitOrder, src.Interaction.HitOrder)
	dst.Interaction.HistoryLimit = src.Interaction.HistoryLimit
	setLower(&dst.Logging.Level, src.Logging.Level)
	setLower(&dst.Logging.Format, src.Logging.Format)
	dst.Logging.Source = src.Logging.Source
	if f := strings.TrimSpace(src.Logging.File); f != "" {
		dst.Logging.File = f
	}
}

func setLower(dst *string, v string) {
	if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
		*dst = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	env := func(key string) (string, bool) {
		v := strings.TrimSpace(os.Getenv(key))
		return v, v != ""
	}
	if v, ok := env(EnvCanvasWidth); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Canvas.Width = n
		}
	}
	if v, ok := env(EnvCanvasHeight); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Canvas.Height = n
		}
	}
	if v, ok := env(EnvTheme); ok {
		cfg.Canvas.Theme = strings.ToLower(v)
	}
	if v, ok := env(EnvStrokeColor); ok {
		cfg.Stroke.Color = strings.ToLower(v)
	}
	if v, ok := env(EnvStrokeWidth); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Stroke.Width = f
		}
	}
	if v, ok := env(EnvRoughness); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Stroke.Roughness = f
		}
	}
	if v, ok := env(EnvHitOrder); ok {
		cfg.Interaction.HitOrder = strings.ToLower(v)
	}
	if v, ok := env(EnvHistoryLimit); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Interaction.HistoryLimit = n
		}
	}
	if v, ok := env(EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := env(EnvLogFormat); ok {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v, ok := env(EnvLogSource); ok {
		cfg.Logging.Source = truthy(v)
	}
	if v, ok := env(EnvLogFile); ok {
		cfg.Logging.File = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// EnvOverrideFor returns the env var name if the dotted key is currently
// overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := overrides[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// OverrideKeys lists the dotted keys that have an env override, sorted.
func OverrideKeys() []string { return slices.Sorted(maps.Keys(overrides)) }
