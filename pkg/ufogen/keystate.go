package ufogen

import (
	"time"

	kbd "github.com/stronnag/kbd2ufo/pkg/kbd"
)

// KeyState tracks when each directional key was last seen. A key with no
// recorded activity carries the zero time, which reads as "pressed in the
// far past" and so never counts as held.
type KeyState struct {
	hold time.Duration
	last [kbd.KeyRight - kbd.KeyW + 1]time.Time
}

func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{hold: hold}
}

func (ks *KeyState) Record(k kbd.Key, now time.Time) {
	if k.IsDirectional() {
		ks.last[k-kbd.KeyW] = now
	}
}

// IsHeld reports whether k was active within the hold window, boundary
// included.
func (ks *KeyState) IsHeld(k kbd.Key, now time.Time) bool {
	if !k.IsDirectional() {
		return false
	}
	t := ks.last[k-kbd.KeyW]
	if t.IsZero() {
		return false
	}
	return now.Sub(t) <= ks.hold
}

func (ks *KeyState) ResetAll() {
	for i := range ks.last {
		ks.last[i] = time.Time{}
	}
}

// Held is one sampling of all eight directional keys.
type Held struct {
	W, A, S, D            bool
	Up, Down, Left, Right bool
}

func (ks *KeyState) Sample(now time.Time) Held {
	return Held{
		W:     ks.IsHeld(kbd.KeyW, now),
		A:     ks.IsHeld(kbd.KeyA, now),
		S:     ks.IsHeld(kbd.KeyS, now),
		D:     ks.IsHeld(kbd.KeyD, now),
		Up:    ks.IsHeld(kbd.KeyUp, now),
		Down:  ks.IsHeld(kbd.KeyDown, now),
		Left:  ks.IsHeld(kbd.KeyLeft, now),
		Right: ks.IsHeld(kbd.KeyRight, now),
	}
}
