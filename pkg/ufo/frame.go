package ufo

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Wire format for the UFO-03 analog control packet, as observed in
// controller traffic:
//
//	03 66 c1 c2 thr c4 flags chk 99
//
// with chk = c1 ^ c2 ^ thr ^ c4 ^ flags.

const (
	AnalogLen     = 9
	AnalogHdr     = 0x03
	AnalogType    = 0x66
	AnalogTrailer = 0x99
)

// FlagFastFly requests the receiver's takeoff-assist behaviour.
const FlagFastFly = 0x01

// Keepalive0101 is the 2 byte keepalive observed in controller traffic.
var Keepalive0101 = []byte{0x01, 0x01}

var (
	ErrRange = errors.New("value out of range 0..255")
	ErrFrame = errors.New("malformed analog frame")
)

func U8(x int) (byte, error) {
	if x < 0 || x > 255 {
		return 0, fmt.Errorf("%w: %d", ErrRange, x)
	}
	return byte(x), nil
}

// ClampU8 saturates x into a byte. Only used when assembling axis values;
// out of range protocol input is an error, not a clamp.
func ClampU8[T constraints.Integer](x T) byte {
	if x < 0 {
		return 0
	}
	if uint64(x) > 255 {
		return 255
	}
	return byte(x)
}

// AxisValue converts a digital key pair to an axis byte value: positive
// only gives full deflection, negative only gives none, both or neither
// rests at center.
func AxisValue(posOn, negOn bool, center byte) int {
	if posOn && !negOn {
		return 0xFF
	}
	if negOn && !posOn {
		return 0x00
	}
	return int(center)
}

// BuildAnalog builds the 9 byte control packet. All five values must
// already be in 0..255.
func BuildAnalog(c1, c2, thr, c4, flags int) ([]byte, error) {
	var p [5]byte
	for i, v := range [5]int{c1, c2, thr, c4, flags} {
		u, err := U8(v)
		if err != nil {
			return nil, err
		}
		p[i] = u
	}
	chk := p[0] ^ p[1] ^ p[2] ^ p[3] ^ p[4]
	return []byte{AnalogHdr, AnalogType, p[0], p[1], p[2], p[3], p[4], chk, AnalogTrailer}, nil
}

// Analog holds the payload of a decoded control packet.
type Analog struct {
	C1    byte
	C2    byte
	Thr   byte
	C4    byte
	Flags byte
}

func (a Analog) Checksum() byte {
	return a.C1 ^ a.C2 ^ a.Thr ^ a.C4 ^ a.Flags
}

// ParseAnalog validates framing and checksum and decodes the payload.
func ParseAnalog(buf []byte) (Analog, error) {
	if len(buf) != AnalogLen {
		return Analog{}, fmt.Errorf("%w: length %d", ErrFrame, len(buf))
	}
	if buf[0] != AnalogHdr || buf[1] != AnalogType || buf[8] != AnalogTrailer {
		return Analog{}, fmt.Errorf("%w: framing %02x %02x .. %02x", ErrFrame, buf[0], buf[1], buf[8])
	}
	a := Analog{C1: buf[2], C2: buf[3], Thr: buf[4], C4: buf[5], Flags: buf[6]}
	if chk := a.Checksum(); chk != buf[7] {
		return Analog{}, fmt.Errorf("%w: checksum %02x, expected %02x", ErrFrame, buf[7], chk)
	}
	return a, nil
}

// IsKeepalive reports whether buf is the 2 byte keepalive.
func IsKeepalive(buf []byte) bool {
	return len(buf) == 2 && buf[0] == 0x01 && buf[1] == 0x01
}
