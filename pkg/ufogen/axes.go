package ufogen

import (
	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

// Channels folds a key sample into the four channel bytes.
//
//	c1  w / s
//	c2  d / a
//	thr up / down, biased from base rather than a mid-stick centre
//	c4  right / left
//
// A held w also forces full throttle.
func (h Held) Channels(c1Center, c2Center, c4Center, thrBase int) (c1, c2, thr, c4 byte) {
	c1 = ufo.ClampU8(ufo.AxisValue(h.W, h.S, byte(c1Center)))
	c2 = ufo.ClampU8(ufo.AxisValue(h.D, h.A, byte(c2Center)))
	c4 = ufo.ClampU8(ufo.AxisValue(h.Right, h.Left, byte(c4Center)))
	if h.W {
		thr = 0xff
	} else {
		thr = ufo.ClampU8(ufo.AxisValue(h.Up, h.Down, byte(thrBase)))
	}
	return c1, c2, thr, c4
}
