// Package kbd polls normalized key tokens from the console.
package kbd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
)

// Driver owns the raw tty and delivers one normalized key per Poll.
// A reader goroutine pumps runes into a buffered channel so Poll never
// blocks the control loop.
type Driver struct {
	tty *tty.TTY
	ch  chan rune
	dec decoder
}

func Open() (*Driver, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("kbd: stdin is not a terminal")
	}
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("kbd: %w", err)
	}
	d := &Driver{tty: t, ch: make(chan rune, 64)}
	go d.pump()
	return d, nil
}

func (d *Driver) pump() {
	for {
		r, err := d.tty.ReadRune()
		if err != nil {
			close(d.ch)
			return
		}
		d.ch <- r
	}
}

// Poll returns the next normalized key, or KeyNone when no input is
// pending. Losing the tty behaves as a synthetic quit.
func (d *Driver) Poll() Key {
	for {
		select {
		case r, ok := <-d.ch:
			if !ok {
				return KeyQuit
			}
			if k := d.dec.feed(r); k != KeyNone {
				return k
			}
		default:
			if k := d.dec.flush(); k != KeyNone {
				return k
			}
			return KeyNone
		}
	}
}

func (d *Driver) Close() {
	if d.tty != nil {
		d.tty.Close()
	}
}
