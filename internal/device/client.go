package device

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/muurk/avctl/internal/logging"
	"github.com/muurk/avctl/internal/protocol"
)

// Transaction states, used for debug logging
const (
	stateAwaitingHeader  = "awaiting_header"
	stateAwaitingPayload = "awaiting_payload"
	stateDone            = "done"
	stateFailed          = "failed"
)

// Client executes commands against a display over a byte channel.
//
// A Client owns its channel for the duration of a transaction and is not
// safe for concurrent use.
type Client struct {
	ch     io.ReadWriter
	logger *zap.Logger
	status io.Writer
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithLogger sets the logger used for frame dumps and state changes.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStatusWriter sets where human-readable status lines (such as the
// power toggle decision) are written. Defaults to io.Discard.
func WithStatusWriter(w io.Writer) Option {
	return func(c *Client) {
		if w != nil {
			c.status = w
		}
	}
}

// NewClient creates a Client that talks over ch.
//
// Example:
//
//	port, _ := transport.Open("/dev/ttyUSB0", transport.DefaultOptions())
//	client := device.NewClient(port, device.WithStatusWriter(os.Stdout))
//	_, err := client.Execute(protocol.PowerToggle)
func NewClient(ch io.ReadWriter, opts ...Option) *Client {
	if ch == nil {
		panic("channel cannot be nil")
	}

	c := &Client{
		ch:     ch,
		logger: logging.GetLogger(),
		status: io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs one command and returns the response payload for query
// commands (nil for control commands).
//
// PowerToggle is resolved here: the power state is queried first, a status
// line is written, and PowerOff or PowerOn is executed depending on the
// answer.
func (c *Client) Execute(cmd protocol.Command) ([]byte, error) {
	if cmd.Kind == protocol.CommandPowerToggle {
		resolved, err := c.resolveToggle()
		if err != nil {
			return nil, err
		}
		cmd = resolved
	}

	return c.transact(cmd)
}

// PowerStatus queries and decodes the display's power state.
func (c *Client) PowerStatus() (protocol.PowerState, error) {
	payload, err := c.transact(protocol.QueryPower)
	if err != nil {
		return protocol.PowerStateOff, err
	}
	return protocol.DecodePowerState(payload), nil
}

func (c *Client) resolveToggle() (protocol.Command, error) {
	state, err := c.PowerStatus()
	if err != nil {
		return protocol.Command{}, fmt.Errorf("query power state: %w", err)
	}

	if state.IsOn() {
		fmt.Fprintln(c.status, "is on - turning off")
		c.logger.Info("Resolved power toggle", zap.Stringer("state", state), zap.Stringer("command", protocol.PowerOff))
		return protocol.PowerOff, nil
	}

	fmt.Fprintln(c.status, "is off - turning on")
	c.logger.Info("Resolved power toggle", zap.Stringer("state", state), zap.Stringer("command", protocol.PowerOn))
	return protocol.PowerOn, nil
}

// transact performs a single request/response exchange:
//
//	write request -> read header -> [read trailing bytes] -> validate
//
// The first failure ends the exchange; nothing is retried.
func (c *Client) transact(cmd protocol.Command) ([]byte, error) {
	request, err := protocol.BuildRequest(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd, err)
	}

	logging.LogFrame(c.logger, logging.DirectionSent, request)
	if err := c.writeRequest(request); err != nil {
		c.logState(cmd, stateFailed, err)
		return nil, err
	}

	c.logState(cmd, stateAwaitingHeader, nil)
	frame := make([]byte, protocol.ResponseHeaderLen)
	if _, err := io.ReadFull(c.ch, frame); err != nil {
		txErr := &protocol.TransactionError{Kind: protocol.ErrKindReadResponse, Err: err}
		c.logState(cmd, stateFailed, txErr)
		return nil, txErr
	}
	logging.LogFrame(c.logger, logging.DirectionReceived, frame)

	if err := protocol.CheckHeader(frame); err != nil {
		c.logState(cmd, stateFailed, err)
		return nil, err
	}

	query := cmd.IsQuery()
	if n := protocol.TrailingLength(frame, query); n > 0 {
		c.logState(cmd, stateAwaitingPayload, nil)
		tail := make([]byte, n)
		if _, err := io.ReadFull(c.ch, tail); err != nil {
			txErr := &protocol.TransactionError{Kind: protocol.ErrKindReadResponseData, Err: err}
			c.logState(cmd, stateFailed, txErr)
			return nil, txErr
		}
		logging.LogFrame(c.logger, logging.DirectionReceived, tail)
		frame = append(frame, tail...)
	}

	resp, err := protocol.ParseResponse(frame, query)
	if err != nil {
		c.logState(cmd, stateFailed, err)
		return nil, err
	}

	c.logState(cmd, stateDone, nil)
	return resp.Payload, nil
}

// writeRequest sends the whole request in one Write call. A short write
// that stopped right before the checksum is reported as a checksum write
// failure.
func (c *Client) writeRequest(request []byte) error {
	n, err := c.ch.Write(request)
	if err == nil && n < len(request) {
		err = io.ErrShortWrite
	}
	if err == nil {
		return nil
	}

	kind := protocol.ErrKindWriteCommand
	if n == len(request)-1 {
		kind = protocol.ErrKindWriteChecksum
	}
	return &protocol.TransactionError{Kind: kind, Err: err}
}

func (c *Client) logState(cmd protocol.Command, state string, err error) {
	fields := []zap.Field{
		zap.Stringer("command", cmd),
		zap.String("state", state),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			fields = append(fields, zap.Bool("truncated", true))
		}
		c.logger.Debug("Transaction failed", fields...)
		return
	}
	c.logger.Debug("Transaction state", fields...)
}
