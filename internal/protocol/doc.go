// Package protocol implements the display's RS-232 control protocol.
//
// This package handles encoding of logical commands into wire frames,
// checksum calculation, and validation of the frames the device sends back.
// It performs no I/O itself; see package device for the transaction executor.
//
// # Request Frames
//
// Every request has this structure:
//   - Request type: 0x8C (control) or 0x83 (query)
//   - Category: 0x00
//   - Function: 0x00 power, 0x05 volume, 0x06 muting
//   - Arguments: function specific, first byte is the argument length + 1
//   - Checksum: 1 byte (8-bit wrapping sum of all preceding bytes)
//
// # Response Frames
//
// The device answers every request with a 3-byte header:
//   - Response header: 0x70
//   - Answer: 0x00 when the command was accepted
//   - Length: for control requests this is the checksum of the first two
//     bytes, for query requests the number of bytes that follow
//
// Query responses carry a payload followed by a checksum covering the header
// and payload.
//
// # Usage Example - Encoding
//
//	cmd, err := protocol.ParseCommand("volume:20")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frame, err := protocol.Encode(cmd)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_, err = port.Write(protocol.AppendChecksum(frame))
//
// # Checksum
//
// The checksum is additive. Every single bit error is detected, but errors
// that cancel each other out across bytes are not.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package protocol
