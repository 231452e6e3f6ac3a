// Package ufogen runs the keyboard to UDP control loop for the UFO-03.
//
// One goroutine owns the whole schedule: it drains pending keys, emits
// analog frames and keepalives when their deadlines pass, and naps only
// when nothing is due. Deadlines advance by whole periods from their
// previous values, so a stall (a takeoff burst, a slow send) is followed
// by catch-up sends rather than a silently stretched interval.
package ufogen

import (
	"fmt"
	"log"
	"time"

	kbd "github.com/stronnag/kbd2ufo/pkg/kbd"
	options "github.com/stronnag/kbd2ufo/pkg/options"
	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

const (
	takeoffDur = time.Second
	maxNap     = 10 * time.Millisecond
)

// KeySource yields pending normalized keys without blocking.
type KeySource interface {
	Poll() kbd.Key
}

// Sender pushes one datagram towards the drone.
type Sender interface {
	Send([]byte) error
}

// Sink observes each datagram after it has been sent.
type Sink interface {
	Frame(b []byte, when time.Time)
}

type Gen struct {
	keys  KeySource
	dev   Sender
	sinks []Sink
	st    *KeyState
	now   func() time.Time
	sleep func(time.Duration)
}

func NewGen(keys KeySource, dev Sender, sinks ...Sink) *Gen {
	return &Gen{
		keys:  keys,
		dev:   dev,
		sinks: sinks,
		st:    NewKeyState(time.Duration(options.Config.HoldMs) * time.Millisecond),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

func rateInterval(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}

func (g *Gen) send(b []byte, when time.Time) error {
	if err := g.dev.Send(b); err != nil {
		return fmt.Errorf("ufogen: %w", err)
	}
	for _, s := range g.sinks {
		s.Frame(b, when)
	}
	return nil
}

// idle naps until the given deadline distance, capped so fresh key input
// never waits more than maxNap to be noticed.
func (g *Gen) idle(d time.Duration) {
	if d > maxNap {
		d = maxNap
	}
	if d > 0 {
		g.sleep(d)
	}
}

// burst sends fastFly flagged frames at the analog rate until dur has
// elapsed. Channel values stay at their neutral configuration for the
// whole burst.
func (g *Gen) burst(dur time.Duration) error {
	pkt, err := ufo.BuildAnalog(options.Config.C1Center, options.Config.C2Center,
		options.Config.ThrBase, options.Config.C4Center, int(ufo.FlagFastFly))
	if err != nil {
		return err
	}
	period := rateInterval(options.Config.RateHz)
	end := g.now().Add(dur)
	next := g.now()
	for {
		now := g.now()
		if !now.Before(end) {
			break
		}
		if !now.Before(next) {
			if err = g.send(pkt, now); err != nil {
				return err
			}
			next = next.Add(period)
		} else {
			g.idle(next.Sub(now))
		}
	}
	return nil
}

// Run owns the console session until quit is pressed or a send fails.
// It opens with an automatic takeoff burst, then settles into the steady
// analog / keepalive schedule.
func (g *Gen) Run() error {
	log.SetPrefix("[kbd2ufo] ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if !options.Config.Quiet {
		log.Printf("auto-takeoff: sending fastFly flag for %.1fs\n", takeoffDur.Seconds())
	}
	if err := g.burst(takeoffDur); err != nil {
		return err
	}

	analogPeriod := rateInterval(options.Config.RateHz)
	kaPeriod := time.Duration(0)
	if options.Config.Keepalive {
		kaPeriod = rateInterval(options.Config.KeepaliveHz)
	}

	t0 := g.now()
	nextAnalog := t0
	nextKa := t0

	for {
		now := g.now()

		for {
			k := g.keys.Poll()
			if k == kbd.KeyNone {
				break
			}
			switch {
			case k == kbd.KeyQuit:
				return nil
			case k == kbd.KeyTakeoff:
				if !options.Config.Quiet {
					log.Printf("takeoff: sending fastFly burst for %.1fs\n", takeoffDur.Seconds())
				}
				if err := g.burst(takeoffDur); err != nil {
					return err
				}
			case k == kbd.KeyReset:
				g.st.ResetAll()
			case k.IsDirectional():
				g.st.Record(k, now)
			}
		}

		did := false
		if !now.Before(nextAnalog) {
			h := g.st.Sample(now)
			c1, c2, thr, c4 := h.Channels(options.Config.C1Center, options.Config.C2Center,
				options.Config.C4Center, options.Config.ThrBase)
			pkt, err := ufo.BuildAnalog(int(c1), int(c2), int(thr), int(c4), 0)
			if err != nil {
				return err
			}
			if err = g.send(pkt, now); err != nil {
				return err
			}
			Ulog(0, "analog c1=%02x c2=%02x thr=%02x c4=%02x", c1, c2, thr, c4)
			nextAnalog = nextAnalog.Add(analogPeriod)
			did = true
		}

		if kaPeriod > 0 && !now.Before(nextKa) {
			if err := g.send(ufo.Keepalive0101, now); err != nil {
				return err
			}
			Ulog(1, "keepalive")
			nextKa = nextKa.Add(kaPeriod)
			did = true
		}

		if !did {
			tnext := nextAnalog
			if kaPeriod > 0 && nextKa.Before(tnext) {
				tnext = nextKa
			}
			g.idle(tnext.Sub(now))
		}
	}
}
