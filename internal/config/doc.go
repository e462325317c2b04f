// Package config provides user configuration management for avctl.
//
// This package manages a YAML-based configuration file holding the serial
// line settings and device aliases. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/avctl/config.yaml or $HOME/.config/avctl/config.yaml
//   - macOS: $HOME/.config/avctl/config.yaml
//   - Windows: %LOCALAPPDATA%\avctl\config.yaml
//
// A missing file is not an error; the defaults (9600 baud, 8 data bits,
// 500ms read timeout, no aliases) are used.
//
// # Example File
//
//	version: 1
//	serial:
//	  baud_rate: 9600
//	  data_bits: 8
//	  read_timeout: 500ms
//	devices:
//	  tv: /dev/ttyUSB0
//	  bedroom: tcp://192.168.1.50:4001
//	log_level: info
//	log_file:
//	  path: /var/log/avctl.log
//	  max_backups: 3
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	device := cfg.ResolveDevice("tv") // "/dev/ttyUSB0"
//
// # Thread Safety
//
// File operations are protected by a mutex to ensure atomic writes.
package config
