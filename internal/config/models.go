package config

import "time"

// CurrentVersion is the only config file version this build understands
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version  int               `yaml:"version"`
	Serial   *SerialSettings   `yaml:"serial,omitempty"`
	Devices  map[string]string `yaml:"devices,omitempty"`   // Alias -> device path (e.g. "living-room": /dev/ttyUSB0)
	LogLevel string            `yaml:"log_level,omitempty"` // debug, info, warn, error; empty is silent
	LogFile  *LogFileSettings  `yaml:"log_file,omitempty"`
}

// LogFileSettings enables a rotating JSON log file next to stderr output.
// It only takes effect when a log level is set.
type LogFileSettings struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// SerialSettings holds the line settings used when opening the device.
// They are ignored for tcp:// bridges except for ReadTimeout.
type SerialSettings struct {
	BaudRate    int           `yaml:"baud_rate"`
	DataBits    int           `yaml:"data_bits"`
	ReadTimeout time.Duration `yaml:"read_timeout"` // e.g. "500ms"
}

// Default serial settings for the display's RS-232 port
const (
	DefaultBaudRate    = 9600
	DefaultDataBits    = 8
	DefaultReadTimeout = 500 * time.Millisecond
)

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Serial:  defaultSerial(),
		Devices: make(map[string]string),
	}
}

func defaultSerial() *SerialSettings {
	return &SerialSettings{
		BaudRate:    DefaultBaudRate,
		DataBits:    DefaultDataBits,
		ReadTimeout: DefaultReadTimeout,
	}
}

// ResolveDevice maps a configured alias to its device path. Anything that is
// not an alias is returned unchanged.
func (c *Config) ResolveDevice(arg string) string {
	if path, ok := c.Devices[arg]; ok && path != "" {
		return path
	}
	return arg
}

// SetDevice adds or replaces a device alias.
func (c *Config) SetDevice(alias, path string) {
	if c.Devices == nil {
		c.Devices = make(map[string]string)
	}
	c.Devices[alias] = path
}
