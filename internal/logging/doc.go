// Package logging provides structured logging for avctl.
//
// This package wraps zap logger with convenience functions for the few
// logging patterns the driver needs: port events and hex dumps of the
// frames exchanged with the display.
//
// # Log Levels
//
//   - Debug: Frame hex dumps, transaction state changes
//   - Info: Port opened/closed, resolved commands
//   - Warn: Non-fatal issues (a port that fails to close)
//
// # Silent by Default
//
// The logger is a no-op unless AVCTL_LOG_LEVEL or the --log-level flag is
// set. The CLI contract is that stdout only carries the command result, so
// log output always goes to stderr.
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Frame Logging
//
//	logging.LogFrame(logger, logging.DirectionSent, frame)
//	logging.LogFrame(logger, logging.DirectionReceived, header)
//
// # Log File
//
// InitializeWithFile additionally writes JSON entries to a rotating file
// (lumberjack). The file is only used when a level is set.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
