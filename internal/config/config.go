package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

func homeDirOrFallback() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// Config holds all user-configurable settings.
type Config struct {
	// DataPath is the tab-separated movie file to load.
	DataPath string `json:"data_path"`
	// TopN is the size of the top-rated list.
	TopN int `json:"top_n"`
	// YearMin and YearMax bound the years accepted by the year filter.
	YearMin int `json:"year_min"`
	YearMax int `json:"year_max"`
	// UseIndex caches the parsed catalog in the local SQLite index.
	UseIndex bool `json:"use_index"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataPath: "movie_data.tsv",
		TopN:     catalog.DefaultTopN,
		YearMin:  catalog.DefaultYears.Min,
		YearMax:  catalog.DefaultYears.Max,
		UseIndex: true,
		LogLevel: "info",
	}
}

// Years returns the configured year filter range.
func (c *Config) Years() catalog.YearRange {
	return catalog.YearRange{Min: c.YearMin, Max: c.YearMax}
}

// ConfigDir returns the directory where config and data files are stored.
func ConfigDir() string {
	if dir := os.Getenv("CINEMATE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home := homeDirOrFallback()
	return filepath.Join(home, ".config", "cinemate")
}

// DBPath returns the path to the SQLite index.
func DBPath() string {
	return filepath.Join(ConfigDir(), "index.db")
}

// LogPath returns the path to the log file.
func LogPath() string {
	return filepath.Join(ConfigDir(), "cinemate.log")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads config from disk, returning defaults if the file doesn't exist.
// CINEMATE_DATA overrides the data path.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if p := os.Getenv("CINEMATE_DATA"); p != "" {
		cfg.DataPath = p
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.TopN <= 0 {
		c.TopN = catalog.DefaultTopN
	}
	if c.YearMin == 0 && c.YearMax == 0 {
		c.YearMin = catalog.DefaultYears.Min
		c.YearMax = catalog.DefaultYears.Max
	}
	if c.YearMax < c.YearMin {
		c.YearMin, c.YearMax = c.YearMax, c.YearMin
	}
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0o644)
}
