package kbd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pollAll runs a scripted rune stream through a Driver and collects every
// key until the stream is exhausted.
func pollAll(t *testing.T, runes []rune) []Key {
	t.Helper()
	d := &Driver{ch: make(chan rune, len(runes)+1)}
	for _, r := range runes {
		d.ch <- r
	}
	var keys []Key
	for {
		k := d.Poll()
		if k == KeyNone {
			return keys
		}
		keys = append(keys, k)
	}
}

func TestDecodeSequences(t *testing.T) {
	testCases := []struct {
		name   string
		input  []rune
		expect []Key
	}{
		{"ansi up", []rune{0x1b, '[', 'A'}, []Key{KeyUp}},
		{"ansi down", []rune{0x1b, '[', 'B'}, []Key{KeyDown}},
		{"ansi right", []rune{0x1b, '[', 'C'}, []Key{KeyRight}},
		{"ansi left", []rune{0x1b, '[', 'D'}, []Key{KeyLeft}},
		{"ansi O form", []rune{0x1b, 'O', 'A'}, []Key{KeyUp}},
		{"legacy up", []rune{0x00, 'H'}, []Key{KeyUp}},
		{"legacy down", []rune{0xe0, 'P'}, []Key{KeyDown}},
		{"legacy left", []rune{0xe0, 'K'}, []Key{KeyLeft}},
		{"legacy right", []rune{0x00, 'M'}, []Key{KeyRight}},
		{"glyph arrows", []rune("↑↓←→"), []Key{KeyUp, KeyDown, KeyLeft, KeyRight}},
		{"esc alone", []rune{0x1b}, []Key{KeyQuit}},
		{"esc junk", []rune{0x1b, 'x'}, []Key{KeyQuit}},
		{"esc bracket alone", []rune{0x1b, '['}, []Key{KeyQuit}},
		{"esc unknown final", []rune{0x1b, '[', 'Z'}, nil},
		{"legacy unknown final", []rune{0xe0, 'Z'}, nil},
		{"wasd lower", []rune("wasd"), []Key{KeyW, KeyA, KeyS, KeyD}},
		{"wasd upper", []rune("WASD"), []Key{KeyW, KeyA, KeyS, KeyD}},
		{"quit q", []rune{'q'}, []Key{KeyQuit}},
		{"quit Q", []rune{'Q'}, []Key{KeyQuit}},
		{"takeoff", []rune{'e'}, []Key{KeyTakeoff}},
		{"reset", []rune{'R'}, []Key{KeyReset}},
		{"unbound", []rune{'z', '7', ' '}, nil},
		{"mixed stream", []rune{'w', 0x1b, '[', 'C', 'e'}, []Key{KeyW, KeyRight, KeyTakeoff}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, pollAll(t, tc.input))
		})
	}
}

func TestExtWaitsForSecondHalf(t *testing.T) {
	// the legacy prefix keeps its state across polls until the second
	// half of the pair arrives
	d := &Driver{ch: make(chan rune, 4)}
	d.ch <- 0xe0
	require.Equal(t, KeyNone, d.Poll())
	d.ch <- 'M'
	require.Equal(t, KeyRight, d.Poll())
}

func TestEscResolvesOnEmptyQueue(t *testing.T) {
	d := &Driver{ch: make(chan rune, 4)}
	d.ch <- 0x1b
	require.Equal(t, KeyQuit, d.Poll())
	// decoder is idle again afterwards
	d.ch <- 'w'
	require.Equal(t, KeyW, d.Poll())
}

func TestClosedStreamIsQuit(t *testing.T) {
	d := &Driver{ch: make(chan rune)}
	close(d.ch)
	require.Equal(t, KeyQuit, d.Poll())
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "up", KeyUp.String())
	assert.Equal(t, "takeoff", KeyTakeoff.String())
	assert.Equal(t, "none", KeyNone.String())
	assert.Equal(t, "unknown", Key(99).String())
	assert.True(t, KeyW.IsDirectional())
	assert.True(t, KeyRight.IsDirectional())
	assert.False(t, KeyTakeoff.IsDirectional())
	assert.False(t, KeyNone.IsDirectional())
}
