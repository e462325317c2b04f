package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/avctl/internal/config"
	"github.com/muurk/avctl/internal/device"
	"github.com/muurk/avctl/internal/logging"
	"github.com/muurk/avctl/internal/protocol"
	"github.com/muurk/avctl/internal/transport"
	"github.com/muurk/avctl/internal/ui"
)

// Root command flags
var (
	configPath  string
	baudRate    int
	readTimeout time.Duration
	logLevel    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config directory)")
	rootCmd.Flags().IntVar(&baudRate, "baud", config.DefaultBaudRate, "Serial baud rate")
	rootCmd.Flags().DurationVar(&readTimeout, "timeout", config.DefaultReadTimeout, "Time to wait for each response read")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logs go to stderr")
}

// openPort is replaced in tests
var openPort = transport.Open

// runError carries the device and command of a failed run
type runError struct {
	Device  string
	Command string
	Err     error
}

func (e *runError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Command, e.Device, e.Err)
}

func (e *runError) Unwrap() error {
	return e.Err
}

// invocation is a fully resolved run: what to send and where
type invocation struct {
	Path    string
	Command protocol.Command
	Options transport.Options
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Reject unknown tokens before touching the port
	command, err := protocol.ParseCommand(args[1])
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.InitializeWithFile(resolveLogLevel(cmd, cfg), logFile(cfg)); err != nil {
		return err
	}

	inv := invocation{
		Path:    cfg.ResolveDevice(args[0]),
		Command: command,
		Options: resolveOptions(cmd, cfg),
	}

	if err := run(inv, cmd.OutOrStdout()); err != nil {
		return &runError{Device: inv.Path, Command: command.String(), Err: err}
	}
	return nil
}

// resolveLogLevel picks --log-level, then AVCTL_LOG_LEVEL, then the config file
func resolveLogLevel(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("log-level") {
		return logLevel
	}
	if os.Getenv(logging.LogLevelEnvVar) != "" {
		return ""
	}
	return cfg.LogLevel
}

// logFile converts the config's log_file section for the logging package
func logFile(cfg *config.Config) *logging.FileOutput {
	f := cfg.LogFile
	if f == nil {
		return nil
	}
	return &logging.FileOutput{
		Filename:   f.Path,
		MaxSizeMB:  f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAgeDays: f.MaxAgeDays,
		Compress:   f.Compress,
	}
}

// resolveOptions merges config file settings with explicit flags
func resolveOptions(cmd *cobra.Command, cfg *config.Config) transport.Options {
	opts := transport.DefaultOptions()
	if s := cfg.Serial; s != nil {
		opts.BaudRate = s.BaudRate
		opts.DataBits = s.DataBits
		opts.ReadTimeout = s.ReadTimeout
	}
	if cmd.Flags().Changed("baud") {
		opts.BaudRate = baudRate
	}
	if cmd.Flags().Changed("timeout") {
		opts.ReadTimeout = readTimeout
	}
	return opts
}

// run performs one exchange and prints the result to out
func run(inv invocation, out io.Writer) error {
	port, err := openPort(inv.Path, inv.Options)
	if err != nil {
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			logging.Warn("Failed to close port", zap.String("device", inv.Path), zap.Error(err))
		}
	}()

	client := device.NewClient(port,
		device.WithLogger(logging.GetLogger()),
		device.WithStatusWriter(ui.NoticeWriter{W: out}),
	)

	if inv.Command.Kind == protocol.CommandQueryPower {
		state, err := client.PowerStatus()
		if err != nil {
			return err
		}
		ui.WritePowerStatus(out, state)
	} else if _, err := client.Execute(inv.Command); err != nil {
		return err
	}

	ui.WriteOK(out)
	return nil
}
