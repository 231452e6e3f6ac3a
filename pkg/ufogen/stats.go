package ufogen

import (
	"fmt"
	"time"

	"github.com/bmizerany/perks/quantile"
	"github.com/dustin/go-humanize"

	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

// Stats accumulates transmit counters and inter-send gap quantiles for
// the end of session summary.
type Stats struct {
	analog    int64
	takeoff   int64
	keepalive int64
	start     time.Time
	last      time.Time
	gaps      *quantile.Stream
}

func NewStats() *Stats {
	return &Stats{gaps: quantile.NewTargeted(0.50, 0.99)}
}

func (s *Stats) Frame(b []byte, when time.Time) {
	if s.start.IsZero() {
		s.start = when
	}
	if !s.last.IsZero() {
		s.gaps.Insert(float64(when.Sub(s.last).Microseconds()))
	}
	s.last = when

	if ufo.IsKeepalive(b) {
		s.keepalive++
		return
	}
	if a, err := ufo.ParseAnalog(b); err == nil && a.Flags&ufo.FlagFastFly != 0 {
		s.takeoff++
	} else {
		s.analog++
	}
}

func (s *Stats) Summary() map[string]string {
	m := make(map[string]string)
	m["Analog"] = humanize.Comma(s.analog)
	m["Takeoff"] = humanize.Comma(s.takeoff)
	if s.keepalive > 0 {
		m["Alive"] = humanize.Comma(s.keepalive)
	}
	if s.last.After(s.start) {
		m["Elapsed"] = s.last.Sub(s.start).Round(time.Millisecond).String()
	}
	if s.gaps.Count() > 0 {
		m["Gap"] = fmt.Sprintf("%.1f / %.1f ms (50%% / 99%%)",
			s.gaps.Query(0.50)/1000.0, s.gaps.Query(0.99)/1000.0)
	}
	return m
}
