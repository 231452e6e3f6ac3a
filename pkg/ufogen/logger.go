package ufogen

import (
	"log"

	options "github.com/stronnag/kbd2ufo/pkg/options"
)

func Ulog(val int, ofmt string, params ...interface{}) {
	if options.Config.Verbose > val {
		log.Printf(ofmt, params...)
	}
}
