package kbd

// Key is a normalized console key token.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTakeoff
	KeyReset
	KeyQuit
)

var keyNames = map[Key]string{
	KeyNone:    "none",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyTakeoff: "takeoff",
	KeyReset:   "reset",
	KeyQuit:    "quit",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsDirectional reports whether k is one of the eight held inputs
// (as opposed to a one-shot action or quit).
func (k Key) IsDirectional() bool {
	return k >= KeyW && k <= KeyRight
}
