package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "avctl") {
		t.Errorf("GetConfigDir() = %v, should contain 'avctl'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join(tmpDir, "avctl") {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, filepath.Join(tmpDir, "avctl"))
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != 1 {
		t.Errorf("NewConfig().Version = %v, want 1", cfg.Version)
	}
	if cfg.Devices == nil {
		t.Error("NewConfig().Devices should not be nil")
	}
	if cfg.Serial == nil {
		t.Fatal("NewConfig().Serial should not be nil")
	}
	if cfg.Serial.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", cfg.Serial.BaudRate)
	}
	if cfg.Serial.ReadTimeout != 500*time.Millisecond {
		t.Errorf("ReadTimeout = %v, want 500ms", cfg.Serial.ReadTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("NewConfig().Validate() error = %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Serial.BaudRate != DefaultBaudRate {
		t.Errorf("BaudRate = %d, want %d", cfg.Serial.BaudRate, DefaultBaudRate)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		verify  func(t *testing.T, cfg *Config)
	}{
		{
			name: "full file",
			yaml: `version: 1
serial:
  baud_rate: 19200
  data_bits: 7
  read_timeout: 1s
devices:
  tv: /dev/ttyUSB1
log_level: debug
`,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Serial.BaudRate != 19200 {
					t.Errorf("BaudRate = %d, want 19200", cfg.Serial.BaudRate)
				}
				if cfg.Serial.DataBits != 7 {
					t.Errorf("DataBits = %d, want 7", cfg.Serial.DataBits)
				}
				if cfg.Serial.ReadTimeout != time.Second {
					t.Errorf("ReadTimeout = %v, want 1s", cfg.Serial.ReadTimeout)
				}
				if cfg.ResolveDevice("tv") != "/dev/ttyUSB1" {
					t.Errorf("ResolveDevice(tv) = %q", cfg.ResolveDevice("tv"))
				}
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
				}
			},
		},
		{
			name: "partial serial section gets defaults",
			yaml: "version: 1\nserial:\n  baud_rate: 4800\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Serial.BaudRate != 4800 {
					t.Errorf("BaudRate = %d, want 4800", cfg.Serial.BaudRate)
				}
				if cfg.Serial.DataBits != DefaultDataBits {
					t.Errorf("DataBits = %d, want %d", cfg.Serial.DataBits, DefaultDataBits)
				}
				if cfg.Serial.ReadTimeout != DefaultReadTimeout {
					t.Errorf("ReadTimeout = %v, want %v", cfg.Serial.ReadTimeout, DefaultReadTimeout)
				}
			},
		},
		{
			name: "no serial section",
			yaml: "version: 1\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Serial == nil || cfg.Serial.BaudRate != DefaultBaudRate {
					t.Errorf("Serial = %+v, want defaults", cfg.Serial)
				}
				if cfg.Devices == nil {
					t.Error("Devices should not be nil")
				}
			},
		},
		{
			name:    "unsupported version",
			yaml:    "version: 2\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			yaml:    "version: [1\n",
			wantErr: true,
		},
		{
			name:    "invalid data bits",
			yaml:    "version: 1\nserial:\n  data_bits: 9\n",
			wantErr: true,
		},
		{
			name:    "invalid duration",
			yaml:    "version: 1\nserial:\n  read_timeout: soon\n",
			wantErr: true,
		},
		{
			name:    "alias without path",
			yaml:    "version: 1\ndevices:\n  tv: \"\"\n",
			wantErr: true,
		},
		{
			name:    "invalid log level",
			yaml:    "version: 1\nlog_level: loud\n",
			wantErr: true,
		},
		{
			name: "log file",
			yaml: "version: 1\nlog_level: info\nlog_file:\n  path: /tmp/avctl.log\n  max_backups: 3\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.LogFile == nil || cfg.LogFile.Path != "/tmp/avctl.log" || cfg.LogFile.MaxBackups != 3 {
					t.Errorf("LogFile = %+v", cfg.LogFile)
				}
			},
		},
		{
			name:    "log file without path",
			yaml:    "version: 1\nlog_file:\n  compress: true\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0600); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.verify != nil {
				tt.verify(t, cfg)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.SetDevice("bedroom", "tcp://192.168.1.50:4001")
	cfg.Serial.ReadTimeout = 750 * time.Millisecond

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# avctl configuration file") {
		t.Error("saved config should start with the header comment")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not be left behind")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ResolveDevice("bedroom") != "tcp://192.168.1.50:4001" {
		t.Errorf("ResolveDevice(bedroom) = %q", loaded.ResolveDevice("bedroom"))
	}
	if loaded.Serial.ReadTimeout != 750*time.Millisecond {
		t.Errorf("ReadTimeout = %v, want 750ms", loaded.Serial.ReadTimeout)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	got, err := CreateDefaultConfig(path)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("CreateDefaultConfig() path = %q, want %q", got, path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ResolveDevice("tv") == "tv" {
		t.Error("default config should define the 'tv' alias")
	}

	if _, err := CreateDefaultConfig(path); err == nil {
		t.Error("CreateDefaultConfig() should refuse to overwrite an existing file")
	}
}

func TestResolveDevice(t *testing.T) {
	cfg := NewConfig()
	cfg.SetDevice("tv", "/dev/ttyS0")

	if got := cfg.ResolveDevice("tv"); got != "/dev/ttyS0" {
		t.Errorf("ResolveDevice(tv) = %q, want /dev/ttyS0", got)
	}
	if got := cfg.ResolveDevice("/dev/ttyUSB3"); got != "/dev/ttyUSB3" {
		t.Errorf("ResolveDevice(/dev/ttyUSB3) = %q, want unchanged", got)
	}

	var empty Config
	empty.SetDevice("x", "/dev/x")
	if empty.ResolveDevice("x") != "/dev/x" {
		t.Error("SetDevice() should initialize a nil map")
	}
}
