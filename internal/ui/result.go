package ui

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/muurk/avctl/internal/protocol"
)

// Failure represents a failed command with troubleshooting hints
type Failure struct {
	Title           string            // e.g., "Command failed"
	Details         map[string]string // Key-value details (device, command)
	Error           error             // The failure
	Troubleshooting []string          // Troubleshooting tips
	Boxed           bool              // Draw a border (terminals only)
	Width           int               // Terminal width
}

// NewFailure creates a failure result for err with hints derived from its kind
func NewFailure(title string, err error) *Failure {
	return &Failure{
		Title:           title,
		Error:           err,
		Troubleshooting: Troubleshooting(err),
		Width:           MinTerminalWidth,
	}
}

// AddDetail adds a detail key-value pair
func (f *Failure) AddDetail(key, value string) *Failure {
	if f.Details == nil {
		f.Details = make(map[string]string)
	}
	f.Details[key] = value
	return f
}

// Render returns the styled failure as a string
func (f *Failure) Render() string {
	var lines []string

	lines = append(lines, ErrorTitleStyle.Render(fmt.Sprintf("%s %s", FailureMarker, f.Title)))

	keys := make([]string, 0, len(f.Details))
	for key := range f.Details {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		lines = append(lines, ResultKeyStyle.Render(key+":")+" "+ResultValueStyle.Render(f.Details[key]))
	}

	if f.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("Error: "+f.Error.Error()))
	}

	if len(f.Troubleshooting) > 0 {
		lines = append(lines, "", TroubleshootingTitleStyle.Render("Troubleshooting:"))
		for _, tip := range f.Troubleshooting {
			lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
		}
	}

	content := strings.Join(lines, "\n")
	if !f.Boxed {
		return content
	}

	width := f.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return ErrorBoxStyle(width).Render(content)
}

// String implements fmt.Stringer
func (f *Failure) String() string {
	return f.Render()
}

// Troubleshooting returns hints for the kind of error
func Troubleshooting(err error) []string {
	var inErr *protocol.InputError
	if errors.As(err, &inErr) {
		return []string{
			"Valid commands: on, off, power, volume-up, volume-down, volume:<0-255>, mute, status",
		}
	}

	if isTimeout(err) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []string{
			"Check the cable and that the display is powered",
			"Verify the baud rate (the display expects 9600)",
			"Enable RS-232 control in the display's menu if it has such a setting",
		}
	}

	switch {
	case protocol.IsKind(err, protocol.ErrKindWriteCommand), protocol.IsKind(err, protocol.ErrKindWriteChecksum):
		return []string{
			"Check the device path and that you may write to it (e.g. dialout group)",
		}
	case protocol.IsKind(err, protocol.ErrKindUnexpectedResponseAnswer):
		return []string{
			"The display rejected the command; it may not accept it in its current state",
		}
	case protocol.IsKind(err, protocol.ErrKindUnexpectedResponseHeader),
		protocol.IsKind(err, protocol.ErrKindInvalidResponseChecksum),
		protocol.IsKind(err, protocol.ErrKindEmptyResponse):
		return []string{
			"The response was garbled; check the baud rate and cable",
			"Make sure no other program is using the port",
		}
	}

	return nil
}

// isTimeout reports whether any error in the chain is a timeout
func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// WriteOK prints the success marker line
func WriteOK(w io.Writer) {
	fmt.Fprintln(w, OKStyle.Render("OK"))
}

// WritePowerStatus prints "Power: on" or "Power: off"
func WritePowerStatus(w io.Writer, state protocol.PowerState) {
	style := PowerOffStyle
	if state.IsOn() {
		style = PowerOnStyle
	}
	fmt.Fprintf(w, "Power: %s\n", style.Render(state.String()))
}

// WriteFailure renders a failure to w, boxed when w is a terminal
func WriteFailure(w io.Writer, f *Failure) {
	if IsTerminal(w) {
		f.Boxed = true
		f.Width = GetTerminalWidth(w)
	}
	fmt.Fprintln(w, f.Render())
}

// NoticeWriter styles every line written to it with NoticeStyle
type NoticeWriter struct {
	W io.Writer
}

func (n NoticeWriter) Write(p []byte) (int, error) {
	text := strings.TrimSuffix(string(p), "\n")
	if _, err := fmt.Fprintln(n.W, NoticeStyle.Render(text)); err != nil {
		return 0, err
	}
	return len(p), nil
}
