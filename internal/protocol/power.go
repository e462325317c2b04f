package protocol

// PowerState is the decoded answer to a power query
type PowerState int

const (
	PowerStateOff PowerState = iota
	PowerStateOn
)

// DecodePowerState interprets a QueryPower payload. A payload starting with
// 0x01 means the display is on; anything else, including an empty payload,
// means it is off.
func DecodePowerState(payload []byte) PowerState {
	if len(payload) > 0 && payload[0] == PowerArgOn {
		return PowerStateOn
	}
	return PowerStateOff
}

// IsOn reports whether the state is PowerStateOn
func (s PowerState) IsOn() bool {
	return s == PowerStateOn
}

func (s PowerState) String() string {
	if s == PowerStateOn {
		return "on"
	}
	return "off"
}
