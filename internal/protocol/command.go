package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies one of the logical commands the driver understands
type CommandKind int

const (
	CommandPowerOn CommandKind = iota
	CommandPowerOff
	CommandPowerToggle
	CommandVolumeUp
	CommandVolumeDown
	CommandVolumeSet
	CommandMuteToggle
	CommandQueryPower
)

// VolumeTokenPrefix prefixes the absolute volume token, e.g. "volume:20"
const VolumeTokenPrefix = "volume:"

// Command is a logical command. Level is only meaningful for CommandVolumeSet.
type Command struct {
	Kind  CommandKind
	Level uint8
}

// Commands without arguments
var (
	PowerOn     = Command{Kind: CommandPowerOn}
	PowerOff    = Command{Kind: CommandPowerOff}
	PowerToggle = Command{Kind: CommandPowerToggle}
	VolumeUp    = Command{Kind: CommandVolumeUp}
	VolumeDown  = Command{Kind: CommandVolumeDown}
	MuteToggle  = Command{Kind: CommandMuteToggle}
	QueryPower  = Command{Kind: CommandQueryPower}
)

// VolumeSet returns the command that sets the absolute volume level.
func VolumeSet(level uint8) Command {
	return Command{Kind: CommandVolumeSet, Level: level}
}

// tokens maps command-line tokens to argument-less commands
var tokens = map[string]Command{
	"on":          PowerOn,
	"off":         PowerOff,
	"power":       PowerToggle,
	"volume-up":   VolumeUp,
	"volume-down": VolumeDown,
	"mute":        MuteToggle,
	"status":      QueryPower,
}

// ParseCommand converts a command-line token into a Command.
//
// Recognized tokens: on, off, power, volume-up, volume-down, volume:<0-255>,
// mute, status. Anything else yields an *InputError.
func ParseCommand(token string) (Command, error) {
	if cmd, ok := tokens[token]; ok {
		return cmd, nil
	}

	level, ok := strings.CutPrefix(token, VolumeTokenPrefix)
	if !ok {
		return Command{}, &InputError{Kind: ErrKindUnknownCommand, Input: token}
	}

	v, err := strconv.ParseUint(level, 10, 8)
	if err != nil {
		return Command{}, &InputError{Kind: ErrKindInvalidVolume, Input: level, Err: err}
	}

	return VolumeSet(uint8(v)), nil
}

// IsQuery reports whether the command is sent as a query request, i.e. the
// device answers with a payload.
func (c Command) IsQuery() bool {
	return c.Kind == CommandQueryPower
}

// String returns the command-line token for the command
func (c Command) String() string {
	switch c.Kind {
	case CommandPowerOn:
		return "on"
	case CommandPowerOff:
		return "off"
	case CommandPowerToggle:
		return "power"
	case CommandVolumeUp:
		return "volume-up"
	case CommandVolumeDown:
		return "volume-down"
	case CommandVolumeSet:
		return VolumeTokenPrefix + strconv.Itoa(int(c.Level))
	case CommandMuteToggle:
		return "mute"
	case CommandQueryPower:
		return "status"
	default:
		return fmt.Sprintf("Command(%d)", c.Kind)
	}
}

// Encode maps a command to its request frame, without the trailing checksum.
//
// Request layout:
//
//	[0]   request type   RequestControl or RequestQuery
//	[1]   category       CategoryDisplay
//	[2]   function       FunctionPower, FunctionVolume or FunctionMuting
//	[3+]  arguments
//
// PowerToggle has no encoding of its own; it returns ErrNotWireCommand and
// must be resolved by the caller through a power query.
//
// VolumeSet uses the direct volume form: [0x03, 0x01, level]. The level byte
// is sent unscaled.
func Encode(cmd Command) ([]byte, error) {
	switch cmd.Kind {
	case CommandPowerOn:
		return []byte{RequestControl, CategoryDisplay, FunctionPower, PowerArgLen, PowerArgOn}, nil
	case CommandPowerOff:
		return []byte{RequestControl, CategoryDisplay, FunctionPower, PowerArgLen, PowerArgOff}, nil
	case CommandVolumeUp:
		return []byte{RequestControl, CategoryDisplay, FunctionVolume, VolumeArgLen, VolumeArgStep, VolumeStepUp}, nil
	case CommandVolumeDown:
		return []byte{RequestControl, CategoryDisplay, FunctionVolume, VolumeArgLen, VolumeArgStep, VolumeStepDown}, nil
	case CommandVolumeSet:
		return []byte{RequestControl, CategoryDisplay, FunctionVolume, VolumeArgLen, VolumeArgDirect, cmd.Level}, nil
	case CommandMuteToggle:
		return []byte{RequestControl, CategoryDisplay, FunctionMuting, MutingArgLen, MutingArgToggle}, nil
	case CommandQueryPower:
		return []byte{RequestQuery, CategoryDisplay, FunctionPower, QueryArgPlaceholder, QueryArgPlaceholder}, nil
	case CommandPowerToggle:
		return nil, ErrNotWireCommand
	default:
		return nil, fmt.Errorf("unknown command kind: %d", cmd.Kind)
	}
}

// BuildRequest encodes cmd and appends the checksum, producing the exact
// bytes to transmit.
func BuildRequest(cmd Command) ([]byte, error) {
	frame, err := Encode(cmd)
	if err != nil {
		return nil, err
	}
	return AppendChecksum(frame), nil
}
