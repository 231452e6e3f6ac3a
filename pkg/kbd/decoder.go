package kbd

// Escape sequence decoding is a small state machine so the ANSI and the
// legacy console paths stay exhaustive:
//
//	idle    --ESC-->        esc
//	idle    --0x00/0xe0-->  ext
//	esc     --'['/'O'-->    bracket
//	esc     --other-->      idle (quit)
//	bracket --A/B/C/D-->    idle (arrow)
//	ext     --H/P/K/M-->    idle (arrow)
//
// A dangling esc or bracket state with no pending input resolves to quit;
// an ext state waits for its second half.

const (
	state_IDLE = iota
	state_ESC
	state_BRACKET
	state_EXT
)

type decoder struct {
	state int
}

// feed consumes one rune and returns a completed key, or KeyNone while a
// sequence is in flight or the rune is not bound.
func (d *decoder) feed(r rune) Key {
	switch d.state {
	case state_ESC:
		if r == '[' || r == 'O' {
			d.state = state_BRACKET
			return KeyNone
		}
		d.state = state_IDLE
		return KeyQuit
	case state_BRACKET:
		d.state = state_IDLE
		switch r {
		case 'A':
			return KeyUp
		case 'B':
			return KeyDown
		case 'C':
			return KeyRight
		case 'D':
			return KeyLeft
		}
		return KeyNone
	case state_EXT:
		d.state = state_IDLE
		switch r {
		case 'H':
			return KeyUp
		case 'P':
			return KeyDown
		case 'K':
			return KeyLeft
		case 'M':
			return KeyRight
		}
		return KeyNone
	}

	switch r {
	case 0x1b:
		d.state = state_ESC
		return KeyNone
	case 0x00, 0xe0:
		d.state = state_EXT
		return KeyNone
	case '↑':
		return KeyUp
	case '↓':
		return KeyDown
	case '←':
		return KeyLeft
	case '→':
		return KeyRight
	case 'q', 'Q':
		return KeyQuit
	case 'e', 'E':
		return KeyTakeoff
	case 'r', 'R':
		return KeyReset
	case 'w', 'W':
		return KeyW
	case 'a', 'A':
		return KeyA
	case 's', 'S':
		return KeyS
	case 'd', 'D':
		return KeyD
	}
	return KeyNone
}

// flush resolves a dangling escape once no further input is pending.
// ESC alone, or ESC [ with no final byte, means quit.
func (d *decoder) flush() Key {
	switch d.state {
	case state_ESC, state_BRACKET:
		d.state = state_IDLE
		return KeyQuit
	}
	return KeyNone
}
