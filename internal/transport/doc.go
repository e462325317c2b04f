// Package transport opens the byte channel used to talk to the display.
//
// Two kinds of device path are supported:
//
//   - A serial device such as /dev/ttyUSB0 or COM3, opened with
//     go.bug.st/serial at 8 data bits, no parity, one stop bit.
//   - tcp://host:port for serial-over-IP bridges (ser2net and similar),
//     where the bridge owns the line settings.
//
// Both return an io.ReadWriteCloser whose Read fails with ErrTimeout when
// no byte arrives within the configured read timeout. A read never blocks
// forever, so io.ReadFull on a silent device terminates.
package transport
