package protocol

// Checksum computes the 8-bit wrapping sum of data.
// The same checksum covers outgoing requests and incoming responses.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// AppendChecksum returns a copy of frame with its checksum appended.
func AppendChecksum(frame []byte) []byte {
	out := make([]byte, len(frame), len(frame)+1)
	copy(out, frame)
	return append(out, Checksum(frame))
}

// VerifyChecksum reports whether the last byte of frame is the checksum of
// the bytes before it. An empty frame never verifies.
func VerifyChecksum(frame []byte) bool {
	if len(frame) == 0 {
		return false
	}
	last := len(frame) - 1
	return frame[last] == Checksum(frame[:last])
}
