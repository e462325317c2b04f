package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/muurk/avctl/internal/logging"
)

// Defaults matching the display's RS-232 settings
const (
	DefaultBaudRate    = 9600
	DefaultDataBits    = 8
	DefaultReadTimeout = 500 * time.Millisecond
	DefaultDialTimeout = 3 * time.Second

	// TCPScheme prefixes device paths that refer to a serial-over-IP bridge
	TCPScheme = "tcp://"
)

// ErrTimeout is returned by Read when the device stays silent for longer
// than the read timeout. os.IsTimeout reports true for it.
var ErrTimeout error = timeoutError{}

type timeoutError struct{}

func (timeoutError) Error() string { return "read timed out" }
func (timeoutError) Timeout() bool { return true }
func (timeoutError) Temporary() bool { return false }

// Options configures how the channel is opened
type Options struct {
	BaudRate    int
	DataBits    int
	ReadTimeout time.Duration
	DialTimeout time.Duration
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		BaudRate:    DefaultBaudRate,
		DataBits:    DefaultDataBits,
		ReadTimeout: DefaultReadTimeout,
		DialTimeout: DefaultDialTimeout,
	}
}

// withDefaults fills zero fields from DefaultOptions
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.BaudRate <= 0 {
		o.BaudRate = def.BaudRate
	}
	if o.DataBits <= 0 {
		o.DataBits = def.DataBits
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = def.ReadTimeout
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = def.DialTimeout
	}
	return o
}

// Open opens the channel for device. Paths starting with tcp:// are dialed
// as serial-over-IP bridges; everything else is opened as a serial port.
func Open(device string, opts Options) (io.ReadWriteCloser, error) {
	if device == "" {
		return nil, errors.New("device path is empty")
	}
	opts = opts.withDefaults()

	if addr, ok := strings.CutPrefix(device, TCPScheme); ok {
		return openTCP(device, addr, opts)
	}
	return openSerial(device, opts)
}

// timeoutPort is the subset of serial.Port the adapter needs
type timeoutPort interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// serialPort converts go.bug.st/serial's (0, nil) timeout reads into ErrTimeout
type serialPort struct {
	name string
	port timeoutPort
}

func openSerial(device string, opts Options) (io.ReadWriteCloser, error) {
	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}

	p, err := newSerialPort(device, port, opts.ReadTimeout)
	if err != nil {
		return nil, err
	}

	logging.LogPortEvent(device, "opened",
		zap.Int("baud_rate", opts.BaudRate),
		zap.Duration("read_timeout", opts.ReadTimeout),
	)
	return p, nil
}

func newSerialPort(name string, port timeoutPort, readTimeout time.Duration) (*serialPort, error) {
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	return &serialPort{name: name, port: port}, nil
}

func (p *serialPort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if n == 0 && err == nil && len(b) > 0 {
		return 0, ErrTimeout
	}
	return n, err
}

func (p *serialPort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *serialPort) Close() error {
	logging.LogPortEvent(p.name, "closed")
	return p.port.Close()
}

// tcpPort applies the read timeout as a per-read deadline
type tcpPort struct {
	name        string
	conn        net.Conn
	readTimeout time.Duration
}

func openTCP(device, addr string, opts Options) (io.ReadWriteCloser, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing host:port in %s", device)
	}

	dialer := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	logging.LogPortEvent(device, "opened",
		zap.String("remote_addr", conn.RemoteAddr().String()),
		zap.Duration("read_timeout", opts.ReadTimeout),
	)
	return &tcpPort{name: device, conn: conn, readTimeout: opts.ReadTimeout}, nil
}

func (p *tcpPort) Read(b []byte) (int, error) {
	if err := p.conn.SetReadDeadline(time.Now().Add(p.readTimeout)); err != nil {
		return 0, fmt.Errorf("failed to set read deadline: %w", err)
	}
	n, err := p.conn.Read(b)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return n, ErrTimeout
	}
	return n, err
}

func (p *tcpPort) Write(b []byte) (int, error) {
	return p.conn.Write(b)
}

func (p *tcpPort) Close() error {
	logging.LogPortEvent(p.name, "closed")
	return p.conn.Close()
}
