package engine

// Command is one element of the closed input set the engine accepts.
// Commands are queued per tick and applied in submission order.
type Command uint8

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdRotateCW
	CmdRotateCCW
	CmdSoftDropOn
	CmdSoftDropOff
	CmdHardDrop
	CmdHold
)

// String returns a stable name for logging and replay serialization.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdRotateCW:
		return "rotate_cw"
	case CmdRotateCCW:
		return "rotate_ccw"
	case CmdSoftDropOn:
		return "soft_drop_on"
	case CmdSoftDropOff:
		return "soft_drop_off"
	case CmdHardDrop:
		return "hard_drop"
	case CmdHold:
		return "hold"
	default:
		return "unknown"
	}
}

// ParseCommand is the inverse of String, used when loading replays.
func ParseCommand(s string) (Command, bool) {
	for c := CmdMoveLeft; c <= CmdHold; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}
