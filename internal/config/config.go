package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the top-level strive configuration. Machine-level presentation
// settings live here; data-level settings travel with the database (and its
// export bundle) instead.
type Config struct {
	User    UserConfig    `toml:"user"`
	Display DisplayConfig `toml:"display"`
	Export  ExportConfig  `toml:"export"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// DisplayConfig controls terminal rendering.
type DisplayConfig struct {
	// Theme is "auto", "dark", or "light". Auto detects the terminal
	// background.
	Theme string `toml:"theme"`
}

// ExportConfig controls export defaults.
type ExportConfig struct {
	// Encrypt makes `strive export` passphrase-encrypt by default.
	// Defaults to false when not set in config.
	Encrypt *bool `toml:"encrypt,omitempty"`
}

// EncryptByDefault returns whether exports are encrypted unless overridden.
func (e ExportConfig) EncryptByDefault() bool {
	if e.Encrypt == nil {
		return false
	}
	return *e.Encrypt
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	striveConfig := filepath.Join(configDir, "strive")
	striveData := filepath.Join(dataDir, "strive")

	return Paths{
		ConfigDir:  striveConfig,
		DataDir:    striveData,
		StateDir:   filepath.Join(stateDir, "strive"),
		ConfigFile: filepath.Join(striveConfig, "config.toml"),
		DBFile:     filepath.Join(striveData, "strive.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Display.Theme == "" {
		cfg.Display.Theme = "auto"
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if strive has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{Theme: "auto"},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
