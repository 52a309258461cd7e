package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/san-kum/forcebox/internal/sim"
)

const schema = `
CREATE TABLE runs (
	scene    TEXT,
	dt       REAL,
	duration REAL,
	steps    INTEGER);
CREATE TABLE frames (
	frame INTEGER,
	time  REAL,
	id    INTEGER, -- body slot
	x     REAL,
	y     REAL,
	vx    REAL,
	vy    REAL,
	ax    REAL,
	ay    REAL,
	mass  REAL);
CREATE TABLE forces (
	frame  INTEGER,
	seq    INTEGER,
	name   TEXT,
	detail TEXT);
CREATE TABLE metrics (
	name  TEXT PRIMARY KEY,
	value REAL);
`

const indices = `
CREATE INDEX idx_frame ON frames (frame, id);
CREATE INDEX idx_id ON frames (id);
`

const (
	insertRun    = `INSERT INTO runs VALUES (?, ?, ?, ?);`
	insertFrame  = `INSERT INTO frames VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	insertForce  = `INSERT INTO forces VALUES (?, ?, ?, ?);`
	insertMetric = `INSERT INTO metrics VALUES (?, ?);`
)

// ExportSQLite writes a run into a new sqlite database at path. It refuses
// to overwrite an existing file.
func ExportSQLite(path string, scene string, dt, duration float64, result *sim.Result) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s exists", path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := writeRun(tx, scene, dt, duration, result); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	_, err = db.Exec(indices)
	return err
}

func writeRun(tx *sql.Tx, scene string, dt, duration float64, result *sim.Result) error {
	if _, err := tx.Exec(insertRun, scene, dt, duration, result.StepsTaken); err != nil {
		return err
	}

	frameStmt, err := tx.Prepare(insertFrame)
	if err != nil {
		return err
	}
	defer frameStmt.Close()

	for i, f := range result.Frames {
		for id := 0; id < f.Len(); id++ {
			_, err := frameStmt.Exec(i, f.Time, id, f.X[id], f.Y[id], f.VX[id], f.VY[id], f.AX[id], f.AY[id], f.Mass[id])
			if err != nil {
				return err
			}
		}
	}

	forceStmt, err := tx.Prepare(insertForce)
	if err != nil {
		return err
	}
	defer forceStmt.Close()

	for i, acted := range result.Acted {
		for seq, d := range acted {
			if _, err := forceStmt.Exec(i, seq, d.Name, d.Detail); err != nil {
				return err
			}
		}
	}

	for name, v := range result.Metrics {
		if _, err := tx.Exec(insertMetric, name, v); err != nil {
			return err
		}
	}
	return nil
}
