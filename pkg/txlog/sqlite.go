// Package txlog records a control session to SQLite so it can be
// inspected or replayed later.
package txlog

import (
	"database/sql"
	"encoding/hex"
	"log"
	"os"
	"time"

	_ "modernc.org/sqlite"

	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

const SCHEMA = `CREATE TABLE IF NOT EXISTS session (id integer NOT NULL PRIMARY KEY, dtg text,
 dst text, rate double precision, hold integer, keepalive integer);
CREATE TABLE IF NOT EXISTS frames(id integer, idx integer, offus integer, kind text,
 c1 integer, c2 integer, thr integer, c4 integer, flags integer, raw text)`

const IMETA = `insert into session (id, dtg, dst, rate, hold, keepalive) values ($1,$2,$3,$4,$5,$6)`
const IFRAME = `insert into frames (id, idx, offus, kind, c1, c2, thr, c4, flags, raw) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

type DBL struct {
	db    *sql.DB
	count int
	start time.Time
}

func NewSessionDB(fn string) *DBL {
	var d DBL
	var err error

	os.Remove(fn)

	d.db, err = sql.Open("sqlite", fn)
	if err != nil {
		log.Fatalf("db %+v\n", err)
	}

	if _, err = d.db.Exec(SCHEMA); err != nil {
		log.Fatalf("tables %+v\n", err)
	}
	return &d
}

func (d *DBL) Writemeta(dst string, rate float64, holdms int, keepalive bool) {
	ka := 0
	if keepalive {
		ka = 1
	}
	dtg := time.Now().Format(time.RFC3339)
	if _, err := d.db.Exec(IMETA, 1, dtg, dst, rate, holdms, ka); err != nil {
		log.Fatalf("meta %+v\n", err)
	}
}

func (d *DBL) Begin() {
	if _, err := d.db.Exec(`BEGIN TRANSACTION`); err != nil {
		log.Fatalf("begin %+v\n", err)
	}
}

func (d *DBL) Commit() {
	if _, err := d.db.Exec(`COMMIT`); err != nil {
		log.Fatalf("commit %+v\n", err)
	}
}

// Frame appends one sent datagram. Offsets are stored in microseconds
// from the first frame so a replay can reproduce the original pacing.
func (d *DBL) Frame(b []byte, when time.Time) {
	if d.count == 0 {
		d.start = when
	}
	offus := when.Sub(d.start).Microseconds()

	kind := "R"
	var c1, c2, thr, c4, flags int
	if ufo.IsKeepalive(b) {
		kind = "K"
	} else if a, err := ufo.ParseAnalog(b); err == nil {
		kind = "A"
		c1 = int(a.C1)
		c2 = int(a.C2)
		thr = int(a.Thr)
		c4 = int(a.C4)
		flags = int(a.Flags)
	}

	_, err := d.db.Exec(IFRAME, 1, d.count, offus, kind, c1, c2, thr, c4, flags,
		hex.EncodeToString(b))
	if err != nil {
		log.Fatalf("frame %+v\n", err)
	}
	d.count++
}

func (d *DBL) Count() int {
	return d.count
}

func (d *DBL) Close() {
	d.db.Close()
}
