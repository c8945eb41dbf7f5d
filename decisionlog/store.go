// Package decisionlog keeps an advisory sqlite record of what plays
// decided. Nothing in the engine reads it back.
package decisionlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
	"github.com/nstehr/stp/stp-core/play"
)

const schema = `
CREATE TABLE IF NOT EXISTS stage_transitions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	play_id     TEXT NOT NULL,
	play        TEXT NOT NULL,
	from_stage  INTEGER NOT NULL,
	to_stage    INTEGER NOT NULL,
	world_time  INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pass_commits (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	play_id     TEXT NOT NULL,
	play        TEXT NOT NULL,
	passer_id   INTEGER NOT NULL,
	passer_x    REAL NOT NULL,
	passer_y    REAL NOT NULL,
	receiver_x  REAL NOT NULL,
	receiver_y  REAL NOT NULL,
	speed       REAL NOT NULL,
	pass_type   INTEGER NOT NULL,
	rating      REAL NOT NULL,
	threshold   REAL NOT NULL,
	elapsed_ns  INTEGER NOT NULL,
	world_time  INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stage_transitions_play ON stage_transitions(play_id);
CREATE INDEX IF NOT EXISTS idx_pass_commits_play ON pass_commits(play_id);
`

// Store records play events in SQLite. The play.Recorder methods only
// enqueue; Run does the writes, so a slow disk never stalls a tick.
type Store struct {
	db      *sql.DB
	events  chan event
	dropped atomic.Int64
}

type event struct {
	stage  *play.StageEvent
	commit *play.CommitEvent
}

var _ play.Recorder = (*Store)(nil)

// Open opens (creating if needed) the database at path. ":memory:" works
// for tests.
func Open(path string, queueSize int) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Store{db: db, events: make(chan event, queueSize)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Dropped counts events discarded because the queue was full.
func (s *Store) Dropped() int64 {
	return s.dropped.Load()
}

func (s *Store) StageChanged(e play.StageEvent) {
	s.enqueue(event{stage: &e})
}

func (s *Store) PassCommitted(e play.CommitEvent) {
	s.enqueue(event{commit: &e})
}

func (s *Store) enqueue(e event) {
	select {
	case s.events <- e:
	default:
		n := s.dropped.Add(1)
		slog.Warn("decision log queue full, dropping event", "dropped", n)
	}
}

// Run writes queued events until ctx is cancelled, then flushes whatever
// is still queued.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case e := <-s.events:
			s.write(e)
		}
	}
}

func (s *Store) drain() {
	for {
		select {
		case e := <-s.events:
			s.write(e)
		default:
			return
		}
	}
}

func (s *Store) write(e event) {
	var err error
	switch {
	case e.stage != nil:
		err = s.insertStage(*e.stage)
	case e.commit != nil:
		err = s.insertCommit(*e.commit)
	}
	if err != nil {
		slog.Error("decision log write failed", "error", err)
	}
}

func (s *Store) insertStage(e play.StageEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO stage_transitions (play_id, play, from_stage, to_stage, world_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.PlayID.String(), e.Play, int(e.From), int(e.To), int64(e.At),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert stage transition: %w", err)
	}
	return nil
}

func (s *Store) insertCommit(e play.CommitEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO pass_commits (play_id, play, passer_id, passer_x, passer_y, receiver_x, receiver_y,
		                           speed, pass_type, rating, threshold, elapsed_ns, world_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.PlayID.String(), e.Play, int(e.PasserID),
		e.Pass.PasserPoint.X, e.Pass.PasserPoint.Y,
		e.Pass.ReceiverPoint.X, e.Pass.ReceiverPoint.Y,
		e.Pass.Speed, int(e.Pass.Type), e.Rating, e.Threshold,
		int64(e.Elapsed), int64(e.At),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert pass commit: %w", err)
	}
	return nil
}

// Transitions returns the recorded stage changes of one play in order.
func (s *Store) Transitions(playID uuid.UUID) ([]play.StageEvent, error) {
	rows, err := s.db.Query(
		`SELECT play, from_stage, to_stage, world_time FROM stage_transitions
		 WHERE play_id = ? ORDER BY id`,
		playID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []play.StageEvent
	for rows.Next() {
		e := play.StageEvent{PlayID: playID}
		var from, to int
		var at int64
		if err := rows.Scan(&e.Play, &from, &to, &at); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		e.From, e.To, e.At = play.Stage(from), play.Stage(to), model.Timestamp(at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Commits returns the passes one play committed to.
func (s *Store) Commits(playID uuid.UUID) ([]play.CommitEvent, error) {
	rows, err := s.db.Query(
		`SELECT play, passer_id, passer_x, passer_y, receiver_x, receiver_y, speed, pass_type,
		        rating, threshold, elapsed_ns, world_time
		 FROM pass_commits WHERE play_id = ? ORDER BY id`,
		playID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query commits: %w", err)
	}
	defer rows.Close()

	var out []play.CommitEvent
	for rows.Next() {
		e := play.CommitEvent{PlayID: playID}
		var (
			passerID, passType int
			px, py, rx, ry     float64
			elapsed, at        int64
		)
		if err := rows.Scan(&e.Play, &passerID, &px, &py, &rx, &ry, &e.Pass.Speed, &passType,
			&e.Rating, &e.Threshold, &elapsed, &at); err != nil {
			return nil, fmt.Errorf("scan commit: %w", err)
		}
		e.PasserID = model.RobotID(passerID)
		e.Pass.PasserPoint = geom.Point{X: px, Y: py}
		e.Pass.ReceiverPoint = geom.Point{X: rx, Y: ry}
		e.Pass.Type = passing.PassType(passType)
		e.Elapsed = time.Duration(elapsed)
		e.At = model.Timestamp(at)
		out = append(out, e)
	}
	return out, rows.Err()
}
