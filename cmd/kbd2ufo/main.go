package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/yookoala/realpath"

	ctlmqtt "github.com/stronnag/kbd2ufo/pkg/ctlmqtt"
	kbd "github.com/stronnag/kbd2ufo/pkg/kbd"
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
	files, app := options.ParseCLI(getVersion)
	if len(files) != 0 {
		options.Usage()
		os.Exit(1)
	}
	if err := options.Validate(); err != nil {
		log.Fatalf("%s: %v\n", app, err)
	}

	if !options.Config.Quiet {
		fmt.Printf("dst=%s:%d\n", options.Config.DstIP, options.Config.DstPort)
		fmt.Printf("bind=%s:%d\n", options.Config.BindIP, options.Config.BindPort)
		fmt.Println("controls: W/S c1, A/D c2, arrows thr/c4, E takeoff, R reset, Q/ESC quit")
	}

	keys, err := kbd.Open()
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	dev, err := ufogen.NewUDPDev(options.Config.BindIP, options.Config.BindPort,
		options.Config.DstIP, options.Config.DstPort)
	if err != nil {
		keys.Close()
		log.Fatalf("%v\n", err)
	}

	stats := ufogen.NewStats()
	sinks := []ufogen.Sink{stats}

	var db *txlog.DBL
	if options.Config.Sql != "" {
		db = txlog.NewSessionDB(options.Config.Sql)
		db.Writemeta(fmt.Sprintf("%s:%d", options.Config.DstIP, options.Config.DstPort),
			options.Config.RateHz, options.Config.HoldMs, options.Config.Keepalive)
		db.Begin()
		sinks = append(sinks, db)
	}

	if m := ctlmqtt.NewMirror(); m != nil {
		defer m.Close()
		sinks = append(sinks, m)
	}

	gen := ufogen.NewGen(keys, dev, sinks...)
	err = gen.Run()

	// put the console back before anything else writes to it
	keys.Close()
	dev.Close()

	if db != nil {
		db.Commit()
		db.Close()
	}

	for k, v := range stats.Summary() {
		fmt.Printf("%-8.8s : %s\n", k, v)
	}
	if options.Config.Sql != "" {
		show_output(options.Config.Sql)
	}

	if err != nil {
		log.Fatalf("%v\n", err)
	}
}

func show_output(outfn string) {
	if outfn != "" {
		rp, err := realpath.Realpath(outfn)
		if err != nil || rp == "" {
			rp = outfn
		}
		fmt.Printf("%-8.8s : %s\n", "Record", rp)
	}
}
