package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "avctl"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/avctl or $HOME/.config/avctl
//   - macOS: $HOME/.config/avctl (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\avctl
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration from path, or from GetConfigPath() when path
// is empty. A missing file is not an error: defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()

	return loadFromFile(path)
}

// loadFromFile performs the actual file loading.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes YAML, fills unset fields with defaults and validates.
func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if cfg.Devices == nil {
		cfg.Devices = make(map[string]string)
	}
	if cfg.Serial == nil {
		cfg.Serial = defaultSerial()
	} else {
		def := defaultSerial()
		if cfg.Serial.BaudRate == 0 {
			cfg.Serial.BaudRate = def.BaudRate
		}
		if cfg.Serial.DataBits == 0 {
			cfg.Serial.DataBits = def.DataBits
		}
		if cfg.Serial.ReadTimeout == 0 {
			cfg.Serial.ReadTimeout = def.ReadTimeout
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Serial != nil {
		if c.Serial.BaudRate < 0 {
			return fmt.Errorf("invalid baud_rate: %d", c.Serial.BaudRate)
		}
		if c.Serial.DataBits < 5 || c.Serial.DataBits > 8 {
			return fmt.Errorf("invalid data_bits: %d (must be 5-8)", c.Serial.DataBits)
		}
		if c.Serial.ReadTimeout < 0 {
			return fmt.Errorf("invalid read_timeout: %s", c.Serial.ReadTimeout)
		}
	}

	for alias, path := range c.Devices {
		if alias == "" {
			return fmt.Errorf("device alias must not be empty")
		}
		if path == "" {
			return fmt.Errorf("device alias %q has no path", alias)
		}
	}

	if f := c.LogFile; f != nil {
		if f.Path == "" {
			return fmt.Errorf("log_file.path must not be empty")
		}
		if f.MaxSizeMB < 0 || f.MaxBackups < 0 || f.MaxAgeDays < 0 {
			return fmt.Errorf("log_file rotation values must not be negative")
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}

	return nil
}

// marshal encodes the config with a header comment
func marshal(c *Config, path string) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# avctl configuration file
#
# serial:   line settings for the display's RS-232 port
# devices:  aliases usable in place of a device path, e.g.
#             living-room: /dev/ttyUSB0
#             bridge: tcp://192.168.1.50:4001
#
# Location: ` + path + `

`)
	return append(header, data...), nil
}

// Save writes the config to path, or GetConfigPath() when path is empty.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshal(c, path)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a default configuration file with an example
// alias to path. It refuses to overwrite an existing file.
func CreateDefaultConfig(path string) (string, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	cfg := NewConfig()
	cfg.SetDevice("tv", defaultDevicePath())

	return path, cfg.Save(path)
}

func defaultDevicePath() string {
	switch runtime.GOOS {
	case "windows":
		return "COM1"
	case "darwin":
		return "/dev/tty.usbserial"
	default:
		return "/dev/ttyUSB0"
	}
}
