package ufogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannels(t *testing.T) {
	testCases := []struct {
		name string
		h    Held
		c1   byte
		c2   byte
		thr  byte
		c4   byte
	}{
		{"neutral", Held{}, 0x80, 0x80, 0x00, 0x80},
		{"forward", Held{W: true}, 0xff, 0x80, 0xff, 0x80},
		{"back", Held{S: true}, 0x00, 0x80, 0x00, 0x80},
		{"fwd and back", Held{W: true, S: true}, 0x80, 0x80, 0xff, 0x80},
		{"left", Held{A: true}, 0x80, 0x00, 0x00, 0x80},
		{"right", Held{D: true}, 0x80, 0xff, 0x00, 0x80},
		{"left and right", Held{A: true, D: true}, 0x80, 0x80, 0x00, 0x80},
		{"throttle up", Held{Up: true}, 0x80, 0x80, 0xff, 0x80},
		{"throttle down", Held{Down: true}, 0x80, 0x80, 0x00, 0x80},
		{"yaw left", Held{Left: true}, 0x80, 0x80, 0x00, 0x00},
		{"yaw right", Held{Right: true}, 0x80, 0x80, 0x00, 0xff},
		{"fwd overrides down", Held{W: true, Down: true}, 0xff, 0x80, 0xff, 0x80},
		{"everything", Held{W: true, A: true, S: true, D: true, Up: true, Down: true, Left: true, Right: true}, 0x80, 0x80, 0xff, 0x80},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c1, c2, thr, c4 := tc.h.Channels(0x80, 0x80, 0x80, 0x00)
			assert.Equal(t, tc.c1, c1, "c1")
			assert.Equal(t, tc.c2, c2, "c2")
			assert.Equal(t, tc.thr, thr, "thr")
			assert.Equal(t, tc.c4, c4, "c4")
		})
	}
}

func TestChannelsCustomBias(t *testing.T) {
	c1, c2, thr, c4 := Held{}.Channels(0x7f, 0x81, 0x90, 0x40)
	assert.Equal(t, byte(0x7f), c1)
	assert.Equal(t, byte(0x81), c2)
	assert.Equal(t, byte(0x40), thr)
	assert.Equal(t, byte(0x90), c4)

	_, _, thr, _ = Held{Up: true}.Channels(0x7f, 0x81, 0x90, 0x40)
	assert.Equal(t, byte(0xff), thr)
}
