package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from the configuration file. Command-line
// flags always override file values.
type Config struct {
	// Engine is the path to the rendering engine binary.
	Engine string `toml:"engine"`

	// Preset is the default quality preset for renders.
	Preset string `toml:"preset"`

	// Listen is the default address for the serve command.
	Listen string `toml:"listen"`
}

// ConfigPath returns the configuration file location following the XDG
// standard: $XDG_CONFIG_HOME/molrender/config.toml, falling back to
// ~/.config/molrender/config.toml.
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the configuration file. A missing file is not an error;
// it yields the zero Config.
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		return Config{}, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
