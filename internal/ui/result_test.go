package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/muurk/avctl/internal/protocol"
	"github.com/muurk/avctl/internal/transport"
)

func TestWriteOK(t *testing.T) {
	var buf bytes.Buffer
	WriteOK(&buf)

	if !strings.Contains(buf.String(), "OK") {
		t.Errorf("WriteOK() = %q, want it to contain OK", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("WriteOK() should end with a newline")
	}
}

func TestWritePowerStatus(t *testing.T) {
	tests := []struct {
		state protocol.PowerState
		want  string
	}{
		{protocol.PowerStateOn, "Power: on"},
		{protocol.PowerStateOff, "Power: off"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		WritePowerStatus(&buf, tt.state)
		if !strings.Contains(buf.String(), "Power: ") || !strings.Contains(buf.String(), tt.state.String()) {
			t.Errorf("WritePowerStatus(%v) = %q, want %q", tt.state, buf.String(), tt.want)
		}
	}
}

func TestTroubleshooting(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantEmpty bool
		contains  string
	}{
		{
			name:     "input error",
			err:      &protocol.InputError{Kind: protocol.ErrKindUnknownCommand, Input: "reboot"},
			contains: "Valid commands",
		},
		{
			name:     "timeout",
			err:      &protocol.TransactionError{Kind: protocol.ErrKindReadResponse, Err: transport.ErrTimeout},
			contains: "baud rate",
		},
		{
			name:     "short read",
			err:      &protocol.TransactionError{Kind: protocol.ErrKindReadResponseData, Err: io.ErrUnexpectedEOF},
			contains: "cable",
		},
		{
			name:     "write failure",
			err:      fmt.Errorf("wrapped: %w", &protocol.TransactionError{Kind: protocol.ErrKindWriteChecksum}),
			contains: "device path",
		},
		{
			name:     "rejected",
			err:      &protocol.TransactionError{Kind: protocol.ErrKindUnexpectedResponseAnswer, Value: 0x03},
			contains: "rejected",
		},
		{
			name:     "garbled",
			err:      &protocol.TransactionError{Kind: protocol.ErrKindInvalidResponseChecksum},
			contains: "garbled",
		},
		{
			name:      "unrelated",
			err:       fmt.Errorf("something else"),
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := Troubleshooting(tt.err)
			if tt.wantEmpty {
				if len(tips) != 0 {
					t.Errorf("Troubleshooting() = %v, want none", tips)
				}
				return
			}
			if !strings.Contains(strings.Join(tips, "\n"), tt.contains) {
				t.Errorf("Troubleshooting() = %v, want a tip containing %q", tips, tt.contains)
			}
		})
	}
}

func TestFailure_Render(t *testing.T) {
	err := &protocol.TransactionError{Kind: protocol.ErrKindUnexpectedResponseHeader, Value: 0x71, Expected: 0x70}
	out := NewFailure("Command failed", err).
		AddDetail("Device", "/dev/ttyUSB0").
		AddDetail("Command", "on").
		Render()

	for _, want := range []string{"Command failed", "/dev/ttyUSB0", "unexpected response header: 0x71", "Troubleshooting:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Command:") > strings.Index(out, "Device:") {
		t.Error("details should be rendered in sorted order")
	}
}

func TestWriteFailure_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	WriteFailure(&buf, NewFailure("Command failed", fmt.Errorf("boom")))

	if strings.Contains(buf.String(), "═") {
		t.Errorf("non-terminal output should not be boxed:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("WriteFailure() = %q", buf.String())
	}
}

func TestNoticeWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := fmt.Fprintln(NoticeWriter{W: &buf}, "is off - turning on")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len("is off - turning on\n") {
		t.Errorf("Write() = %d bytes", n)
	}
	if !strings.Contains(buf.String(), "is off - turning on") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
	if GetTerminalWidth(&bytes.Buffer{}) != MinTerminalWidth {
		t.Error("non-file writers should fall back to MinTerminalWidth")
	}
}
