// Avctl controls a display over its RS-232 port.
//
// Each invocation sends one command (power, volume or mute) and waits for
// the display's acknowledgement. Query commands such as status also print
// the value the display reports.
//
// Usage:
//
//	avctl [flags] <device> <command>
//
// The device is a serial port path, a tcp://host:port serial bridge, or an
// alias from the configuration file. See 'avctl --help' for the commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/avctl/internal/logging"
	"github.com/muurk/avctl/internal/ui"
	"github.com/muurk/avctl/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError renders err on stderr, with device details when known
func reportError(err error) {
	f := ui.NewFailure("Command failed", err)

	var re *runError
	if errors.As(err, &re) {
		f.AddDetail("Device", re.Device)
		f.AddDetail("Command", re.Command)
		f.Error = re.Err
	}

	ui.WriteFailure(os.Stderr, f)
}

var rootCmd = &cobra.Command{
	Use:   "avctl [flags] <device> <command>",
	Short: "Control a display over RS-232",
	Long: `Send a single command to a display attached to a serial port.

Commands:
  on               Turn the display on
  off              Turn the display off
  power            Toggle power (queries the current state first)
  volume-up        Raise the volume one step
  volume-down      Lower the volume one step
  volume:<0-255>   Set the volume directly
  mute             Toggle muting
  status           Print the power state

On success the last line printed is "OK".`,
	Example: `  # Turn on the display on the first USB serial adapter
  avctl /dev/ttyUSB0 on

  # Use an alias from the config file
  avctl tv volume:20

  # Talk through a serial-over-IP bridge with debug logging
  avctl --log-level debug tcp://10.0.0.5:4001 status`,
	Version:       version.Full(),
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "avctl %s\n", version.Full())
	},
}
