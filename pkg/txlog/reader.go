package txlog

import (
	"encoding/hex"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type SessionMeta struct {
	ID        int     `db:"id"`
	Dtg       string  `db:"dtg"`
	Dst       string  `db:"dst"`
	RateHz    float64 `db:"rate"`
	HoldMs    int     `db:"hold"`
	Keepalive int     `db:"keepalive"`
}

type FrameRec struct {
	ID    int    `db:"id"`
	Idx   int    `db:"idx"`
	OffUs int64  `db:"offus"`
	Kind  string `db:"kind"`
	C1    int    `db:"c1"`
	C2    int    `db:"c2"`
	Thr   int    `db:"thr"`
	C4    int    `db:"c4"`
	Flags int    `db:"flags"`
	Raw   string `db:"raw"`
}

func (f *FrameRec) Bytes() ([]byte, error) {
	b, err := hex.DecodeString(f.Raw)
	if err != nil {
		return nil, fmt.Errorf("txlog: frame %d: %w", f.Idx, err)
	}
	return b, nil
}

type SessionReader struct {
	name string
	db   *sqlx.DB
}

func NewSessionReader(fn string) *SessionReader {
	var r SessionReader
	r.name = fn
	r.db, _ = sqlx.Open("sqlite", fn)
	return &r
}

func (r *SessionReader) Meta() (SessionMeta, error) {
	var m SessionMeta
	err := r.db.Get(&m, "SELECT * FROM session WHERE id = 1")
	if err != nil {
		return m, fmt.Errorf("txlog: %s: %w", r.name, err)
	}
	return m, nil
}

func (r *SessionReader) Frames() ([]FrameRec, error) {
	var frames []FrameRec
	err := r.db.Select(&frames, "SELECT * FROM frames ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("txlog: %s: %w", r.name, err)
	}
	return frames, nil
}

func (r *SessionReader) Close() {
	r.db.Close()
}
