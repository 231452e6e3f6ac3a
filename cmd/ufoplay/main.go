package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	options "github.com/stronnag/kbd2ufo/pkg/options"
	txlog "github.com/stronnag/kbd2ufo/pkg/txlog"
	ufogen "github.com/stronnag/kbd2ufo/pkg/ufogen"
)

var GitCommit = "local"
var GitTag = "0.0.0"

func getVersion() string {
	return fmt.Sprintf("%s %s, commit: %s", filepath.Base(os.Args[0]), GitTag, GitCommit)
}

func main() {
	log.SetPrefix("[ufoplay] ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	files, _ := options.ParseCLI(getVersion)
	if len(files) != 1 {
		options.Usage()
		os.Exit(1)
	}

	r := txlog.NewSessionReader(files[0])
	defer r.Close()

	meta, err := r.Meta()
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	frames, err := r.Frames()
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	if len(frames) == 0 {
		log.Fatalln("empty recording")
	}

	// the session's own destination applies unless overridden
	dstip := options.Config.DstIP
	dstport := options.Config.DstPort
	if h, p, err := net.SplitHostPort(meta.Dst); err == nil {
		if !options.IsFlagSet("dst-ip") {
			dstip = h
		}
		if !options.IsFlagSet("dst-port") {
			dstport, _ = strconv.Atoi(p)
		}
	}

	dev, err := ufogen.NewUDPDev(options.Config.BindIP, options.Config.BindPort, dstip, dstport)
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	defer dev.Close()

	if !options.Config.Quiet {
		fmt.Printf("%-8.8s : %s\n", "Session", meta.Dtg)
		fmt.Printf("%-8.8s : %s:%d\n", "Dst", dstip, dstport)
		fmt.Printf("%-8.8s : %s @ %.1f Hz\n", "Frames", humanize.Comma(int64(len(frames))), meta.RateHz)
	}

	st := ufogen.NewStats()
	lastoff := int64(-1)
	for _, f := range frames {
		b, err := f.Bytes()
		if err != nil {
			log.Fatalf("%v\n", err)
		}
		if lastoff >= 0 {
			tdiff := time.Duration(f.OffUs-lastoff) * time.Microsecond
			if options.Config.Fast {
				time.Sleep(10 * time.Millisecond)
			} else if tdiff > 0 {
				time.Sleep(tdiff)
			}
		}
		if err = dev.Send(b); err != nil {
			log.Fatalf("%v\n", err)
		}
		st.Frame(b, time.Now())
		lastoff = f.OffUs
	}

	for k, v := range st.Summary() {
		fmt.Printf("%-8.8s : %s\n", k, v)
	}
}
