// Package ui renders avctl's terminal output with Lipgloss.
//
// avctl runs once and exits, so this package only formats text: the final
// OK line, the power status line, status notices written during a power
// toggle, and failure reports with troubleshooting hints.
//
// Styling degrades to plain text when output is not a terminal, so
// scripts see exactly "OK" or "Power: on". Failure reports are drawn in a
// bordered box only when stderr is a terminal.
//
// # Logging Integration
//
// zap logging is silent unless AVCTL_LOG_LEVEL is set, so the output of this
// package is normally the only thing the user sees.
package ui
