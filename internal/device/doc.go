// Package device executes protocol commands against a display.
//
// A Client wraps any io.ReadWriter (normally a port from package transport)
// and runs exactly one request/response exchange per command:
//
//  1. Encode the command and append its checksum
//  2. Write the request in a single call
//  3. Read the 3-byte response header and reject a bad header or answer
//     before reading anything else
//  4. For queries, read the announced number of trailing bytes
//  5. Verify the response checksum and return the payload
//
// Any failure ends the exchange with a *protocol.TransactionError. Nothing
// is retried; a half-sent request or half-read response is never resumed.
//
// # Power Toggle
//
// PowerToggle has no wire encoding. Execute queries the power state first,
// writes "is on - turning off" or "is off - turning on" to the status
// writer, and then sends PowerOff or PowerOn.
//
// # Usage Example
//
//	client := device.NewClient(port,
//	    device.WithLogger(logging.GetLogger()),
//	    device.WithStatusWriter(os.Stdout),
//	)
//
//	state, err := client.PowerStatus()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Power:", state)
package device
