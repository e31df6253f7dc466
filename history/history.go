// Package history keeps a local record of past tagging runs so their
// statistics can be inspected without re-querying CloudTrail.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/yairfalse/merkki/types"
)

var bucketRuns = []byte("runs")

// Record is one persisted run summary. Outcomes are not stored; the
// run's statistics are its durable trace.
type Record struct {
	Region    string             `json:"region"`
	Stats     types.TaggingStats `json:"stats"`
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
}

// Store is a bbolt-backed run log. Keys are RFC3339Nano start times, so
// bbolt's ordered buckets give chronological iteration for free.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the run log at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one run.
func (s *Store) Append(result types.ProcessingResult) error {
	record := Record{
		Region:    result.Region,
		Stats:     result.Stats,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	key := []byte(result.StartTime.UTC().Format(time.RFC3339Nano))

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("failed to store run record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	var records []Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketRuns).Cursor()
		for k, v := cursor.Last(); k != nil && len(records) < limit; k, v = cursor.Prev() {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("corrupt run record %s: %w", k, err)
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
