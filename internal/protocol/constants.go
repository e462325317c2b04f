package protocol

// Request types
const (
	RequestControl = 0x8c
	RequestQuery   = 0x83
)

// CategoryDisplay is the only category the driver addresses
const CategoryDisplay = 0x00

// Function codes
const (
	FunctionPower  = 0x00
	FunctionVolume = 0x05
	FunctionMuting = 0x06
)

// Argument bytes. The first argument byte of every request is the number of
// argument bytes that follow plus one.
const (
	PowerArgLen = 0x02
	PowerArgOff = 0x00
	PowerArgOn  = 0x01

	VolumeArgLen    = 0x03
	VolumeArgStep   = 0x00 // relative step, followed by direction
	VolumeArgDirect = 0x01 // absolute level, followed by the level byte
	VolumeStepUp    = 0x00
	VolumeStepDown  = 0x01

	MutingArgLen    = 0x02
	MutingArgToggle = 0x00

	QueryArgPlaceholder = 0xff
)

// Response constants
const (
	ResponseHeader    = 0x70
	ResponseAnswerOK  = 0x00
	ResponseHeaderLen = 3 // header, answer, length/checksum
)
