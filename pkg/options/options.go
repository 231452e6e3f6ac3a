package options

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

type Options struct {
	DstIP       string
	DstPort     int
	BindIP      string
	BindPort    int
	RateHz      float64
	Keepalive   bool
	KeepaliveHz float64
	HoldMs      int
	C1Center    int
	C2Center    int
	C4Center    int
	ThrBase     int
	StickDelta  int
	YawDelta    int
	ThrDelta    int
	Quiet       bool
	Verbose     int
	Mqttopts    string
	Sql         string
	Fast        bool
}

var Config = Options{
	DstIP:       "192.168.1.1",
	DstPort:     7099,
	BindIP:      "0.0.0.0",
	BindPort:    0,
	RateHz:      20.0,
	KeepaliveHz: 1.0,
	HoldMs:      180,
	C1Center:    0x80,
	C2Center:    0x80,
	C4Center:    0x80,
	ThrBase:     0x00,
	StickDelta:  35,
	YawDelta:    35,
	ThrDelta:    35,
}

const controlsText = `Controls:
  w / s          c1 axis (+/-)
  a / d          c2 axis (-/+)
  up / down      throttle (+/- from base)
  left / right   c4 axis (-/+)
  e              takeoff burst (~1s fastFly)
  r              reset channels to neutral
  q or ESC       quit`

func IsFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func Usage() {
	flag.Usage()
}

func ParseCLI(gv func() string) ([]string, string) {
	app := filepath.Base(os.Args[0])

	flag.Usage = func() {
		posargs := ""
		if app == "ufoplay" {
			posargs = "recording.db"
		}
		fmt.Fprintf(os.Stderr, "Usage of %s [options] %s\n", app, posargs)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		if app != "ufoplay" {
			fmt.Fprintln(os.Stderr, controlsText)
			fmt.Fprintf(os.Stderr, "\n")
		}
		fmt.Fprintln(os.Stderr, gv())
	}

	defs := os.Getenv("KBD2UFO_OPTS")
	_parts := strings.Split(defs, " ")
	var parts []string
	for _, p := range _parts {
		if p != "" {
			parts = append(parts, p)
		}
	}

	envflags := flag.NewFlagSet("$KBD2UFO_OPTS", flag.ExitOnError)
	dstip := envflags.String("dst-ip", Config.DstIP, "dst-ip")
	dstport := envflags.Int("dst-port", Config.DstPort, "dst-port")
	rate := envflags.Float64("rate-hz", Config.RateHz, "rate-hz")
	hold := envflags.Int("hold-ms", Config.HoldMs, "hold-ms")
	quiet := envflags.Bool("quiet", false, "quiet")
	broker := envflags.String("broker", "", "broker")
	envflags.Parse(parts)
	Config.DstIP = *dstip
	Config.DstPort = *dstport
	Config.RateHz = *rate
	Config.HoldMs = *hold
	Config.Quiet = *quiet
	Config.Mqttopts = *broker

	flag.StringVar(&Config.DstIP, "dst-ip", Config.DstIP, "Drone address")
	flag.IntVar(&Config.DstPort, "dst-port", Config.DstPort, "Drone control port")
	flag.StringVar(&Config.BindIP, "bind-ip", Config.BindIP, "Local bind address")
	flag.IntVar(&Config.BindPort, "bind-port", Config.BindPort, "Local bind port, 0 for ephemeral")
	flag.IntVar(&Config.Verbose, "verbose", Config.Verbose, "Log verbosity")
	flag.BoolVar(&Config.Quiet, "quiet", Config.Quiet, "Suppress startup and takeoff messages")
	if app == "ufoplay" {
		flag.BoolVar(&Config.Fast, "fast", false, "Replay without recorded pacing")
	} else {
		flag.Float64Var(&Config.RateHz, "rate-hz", Config.RateHz, "Control packet rate (Hz)")
		flag.BoolVar(&Config.Keepalive, "send-keepalive", Config.Keepalive, "Send 0x01 0x01 keepalives as well")
		flag.Float64Var(&Config.KeepaliveHz, "keepalive-hz", Config.KeepaliveHz, "Keepalive rate (Hz)")
		flag.IntVar(&Config.HoldMs, "hold-ms", Config.HoldMs, "How long a key stays active without repeat events (ms)")
		flag.IntVar(&Config.C1Center, "c1-center", Config.C1Center, "c1 neutral value")
		flag.IntVar(&Config.C2Center, "c2-center", Config.C2Center, "c2 neutral value")
		flag.IntVar(&Config.C4Center, "c4-center", Config.C4Center, "c4 neutral value")
		flag.IntVar(&Config.ThrBase, "thr-base", Config.ThrBase, "Base throttle value")
		flag.IntVar(&Config.StickDelta, "stick-delta", Config.StickDelta, "WASD axis offset")
		flag.IntVar(&Config.YawDelta, "yaw-delta", Config.YawDelta, "Arrow left/right offset")
		flag.IntVar(&Config.ThrDelta, "thr-delta", Config.ThrDelta, "Arrow up/down offset")
		flag.StringVar(&Config.Sql, "sql", "", "Record the session to an SQLite db")
		flag.StringVar(&Config.Mqttopts, "broker", Config.Mqttopts, "Mqtt URI (mqtt://[user[:pass]@]broker[:port]/topic[?cafile=file]")
	}

	flag.Parse()

	files := flag.Args()
	return files, app
}

// Validate rejects option combinations the control loop cannot run with.
func Validate() error {
	if Config.RateHz <= 0 {
		return fmt.Errorf("--rate-hz must be > 0")
	}
	if Config.KeepaliveHz <= 0 {
		return fmt.Errorf("--keepalive-hz must be > 0")
	}
	if Config.HoldMs <= 0 {
		return fmt.Errorf("--hold-ms must be > 0")
	}

	centers := []struct {
		name string
		val  int
	}{
		{"c1-center", Config.C1Center},
		{"c2-center", Config.C2Center},
		{"c4-center", Config.C4Center},
		{"thr-base", Config.ThrBase},
	}
	for _, c := range centers {
		if _, err := ufo.U8(c.val); err != nil {
			return fmt.Errorf("--%s: %w", c.name, err)
		}
	}
	return nil
}
