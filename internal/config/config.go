package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds startup settings for the viewer.
type Config struct {
	// Inputs
	Map      string `json:"map"`
	LogFile  string `json:"log_file"`
	Profiles string `json:"profiles"`
	ImageDir string `json:"image_dir"`

	// Diagnostics
	DebugLog   string `json:"debug_log"`
	DebugLevel string `json:"debug_level"`

	// Export
	ExportPath string `json:"export_path"`
	ExportSize int    `json:"export_size"`
	GridStep   int    `json:"grid_step"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Map        string
	LogFile    string
	Profiles   string
	DebugLog   string
	ExportPath string
	ExportSize int
}

// Resolve applies flags over the file values and fills defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Map != "" {
		c.Map = flags.Map
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.Profiles != "" {
		c.Profiles = flags.Profiles
	}
	if flags.DebugLog != "" {
		c.DebugLog = flags.DebugLog
	}
	if flags.ExportPath != "" {
		c.ExportPath = flags.ExportPath
	}
	if flags.ExportSize > 0 {
		c.ExportSize = flags.ExportSize
	}

	if c.Map == "" {
		c.Map = "Chernarus"
	}
	if c.Profiles == "" {
		c.Profiles = filepath.Join(userDir(), "maps.json")
	}
	if c.DebugLog == "" {
		c.DebugLog = filepath.Join(userDir(), "debug", "logmap.log")
	}
	if c.DebugLevel == "" {
		c.DebugLevel = "info"
	}
	if c.ExportPath == "" {
		c.ExportPath = "logmap.png"
	}
	if c.ExportSize <= 0 {
		c.ExportSize = 2048
	}
	if c.GridStep <= 0 {
		c.GridStep = 1000
	}
}

// userDir is where per-user files live by default.
func userDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "logmap")
	}
	return "."
}

// ProfilesExist reports whether the resolved profiles file is present.
func (c Config) ProfilesExist() bool {
	st, err := os.Stat(c.Profiles)
	return err == nil && !st.IsDir()
}
