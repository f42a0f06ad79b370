// Package store persists measurement runs and their speed measurements
// to a sqlite database for queryable history across runs.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/swdee/go-speedcam/pipeline"
	"github.com/swdee/go-speedcam/speed"
)

// Store wraps the sqlite database holding run history
type Store struct {
	*sql.DB
}

// Open opens the sqlite database at the given path, creating the schema
// if needed.  Use ":memory:" for a transient database.
func Open(path string) (*Store, error) {

	db, err := sql.Open("sqlite", path)

	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id             TEXT PRIMARY KEY,
			video_path         TEXT,
			frames_processed   BIGINT,
			detection_count    BIGINT,
			track_count        BIGINT,
			processing_time_ms BIGINT,
			timestamp          TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS speed_measurements (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               TEXT REFERENCES runs(run_id),
			track_id             BIGINT,
			speed_kmh            DOUBLE,
			speed_ms             DOUBLE,
			frame_count          BIGINT,
			time_seconds         DOUBLE,
			distance_meters      DOUBLE,
			left_crossing_frame  BIGINT,
			right_crossing_frame BIGINT,
			confidence           DOUBLE,
			is_valid             BOOLEAN,
			timestamp            TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &Store{db}, nil
}

// SaveRun inserts the run and all its speed measurements in one
// transaction
func (s *Store) SaveRun(result pipeline.Result, videoPath string) error {

	tx, err := s.Begin()

	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, video_path, frames_processed, detection_count, track_count, processing_time_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID.String(), videoPath, result.FramesProcessed,
		result.DetectionCount, result.TrackCount,
		result.ProcessingTime.Milliseconds())

	if err != nil {
		return fmt.Errorf("error inserting run: %w", err)
	}

	for _, m := range result.Measurements {

		_, err = tx.Exec(`INSERT INTO speed_measurements
			(run_id, track_id, speed_kmh, speed_ms, frame_count, time_seconds,
			 distance_meters, left_crossing_frame, right_crossing_frame,
			 confidence, is_valid)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.RunID.String(), m.TrackID, m.SpeedKMH, m.SpeedMS,
			m.FrameCount, m.TimeSeconds, m.DistanceMeters,
			m.LeftCrossingFrame, m.RightCrossingFrame, m.Confidence,
			m.IsValid)

		if err != nil {
			return fmt.Errorf("error inserting measurement for track %d: %w",
				m.TrackID, err)
		}
	}

	return tx.Commit()
}

// Measurements returns the stored speed measurements for a run in track
// completion order
func (s *Store) Measurements(runID string) ([]speed.Measurement, error) {

	rows, err := s.Query(`SELECT track_id, speed_kmh, speed_ms, frame_count,
		time_seconds, distance_meters, left_crossing_frame,
		right_crossing_frame, confidence, is_valid
		FROM speed_measurements WHERE run_id = ? ORDER BY id`, runID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []speed.Measurement

	for rows.Next() {

		var m speed.Measurement

		err = rows.Scan(&m.TrackID, &m.SpeedKMH, &m.SpeedMS, &m.FrameCount,
			&m.TimeSeconds, &m.DistanceMeters, &m.LeftCrossingFrame,
			&m.RightCrossingFrame, &m.Confidence, &m.IsValid)

		if err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

// RunCount returns the number of stored runs
func (s *Store) RunCount() (int, error) {

	var count int

	err := s.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count)

	return count, err
}
