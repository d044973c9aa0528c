package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// ErrRunNotFound is returned when a run ID is absent from the history store.
var ErrRunNotFound = errors.New("run not found")

// runKeyPrefix orders history keys by start time so listing walks
// chronologically. "run0" is the first key past the prefix range.
// The timestamp format is fixed-width so lexicographic key order matches
// chronological order.
const (
	runKeyPrefix = "run/"
	runKeyEnd    = "run0"
	runKeyTime   = "2006-01-02T15:04:05.000000000Z"
)

// HistoryStore persists run reports in a local Pebble database so past runs
// can be listed and re-rendered.
type HistoryStore struct {
	db *pebble.DB
}

// OpenHistory opens (or creates) the history store at path.
func OpenHistory(path string) (*HistoryStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Targets   int       `json:"targets"`
	Failed    int       `json:"failed"`
}

func runKey(report *RunReport) []byte {
	return []byte(runKeyPrefix + report.StartedAt.UTC().Format(runKeyTime) + "/" + report.ID)
}

// Put stores a serialized run report keyed by start time and run ID.
func (s *HistoryStore) Put(report *RunReport) error {
	value, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode run %q: %w", report.ID, err)
	}
	return s.db.Set(runKey(report), value, pebble.Sync)
}

// Get returns the stored report with the given run ID.
func (s *HistoryStore) Get(id string) (*RunReport, error) {
	var found *RunReport
	err := s.walk(func(report *RunReport) {
		if report.ID == id {
			found = report
		}
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("run %q: %w", id, ErrRunNotFound)
	}
	return found, nil
}

// List returns summaries of all stored runs in chronological order.
func (s *HistoryStore) List() ([]RunSummary, error) {
	var summaries []RunSummary
	err := s.walk(func(report *RunReport) {
		summary := RunSummary{
			ID:        report.ID,
			StartedAt: report.StartedAt,
			Targets:   len(report.Results),
		}
		for _, r := range report.Results {
			if !r.OK() {
				summary.Failed++
			}
		}
		summaries = append(summaries, summary)
	})
	return summaries, err
}

func (s *HistoryStore) walk(fn func(*RunReport)) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(runKeyPrefix),
		UpperBound: []byte(runKeyEnd),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var report RunReport
		if err := json.Unmarshal(iter.Value(), &report); err != nil {
			return fmt.Errorf("decode stored run %q: %w", iter.Key(), err)
		}
		fn(&report)
	}
	return iter.Error()
}

// Close shuts down the underlying Pebble instance.
func (s *HistoryStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
