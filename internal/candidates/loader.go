package candidates

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrUnavailable is returned by Store accessors whose backing dataset
// failed to load. The failure is terminal for the process lifetime; the
// datasets are static, so nothing re-fetches them.
var ErrUnavailable = errors.New("candidates: dataset unavailable")

const (
	centresFile = "study_centres.json"
	cardsFile   = "candidates.json"
	posterFile  = "data.json"

	loadAttempts = 3
)

// Store holds the three static datasets, loaded once at startup and
// read-only afterwards. Each dataset degrades independently: a missing or
// malformed file leaves that accessor returning ErrUnavailable while the
// others keep working.
type Store struct {
	centres []string
	cards   []Candidate
	poster  []Candidate

	centresErr error
	cardsErr   error
	posterErr  error
}

// Load reads the datasets from dataDir. It never fails as a whole;
// per-dataset errors are reported through the accessors (and Err).
func Load(dataDir string) *Store {
	s := &Store{}
	s.centresErr = loadJSON(filepath.Join(dataDir, centresFile), &s.centres)
	s.cardsErr = loadJSON(filepath.Join(dataDir, cardsFile), &s.cards)
	s.posterErr = loadJSON(filepath.Join(dataDir, posterFile), &s.poster)
	return s
}

// loadJSON reads and decodes one dataset with a small bounded retry.
func loadJSON(path string, dst any) error {
	var lastErr error
	for attempt := 0; attempt < loadAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			// A parse error will not fix itself on re-read.
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("reading %s: %w", path, lastErr)
}

// Centres returns the ordered study-centre names.
func (s *Store) Centres() ([]string, error) {
	if s.centresErr != nil {
		return nil, ErrUnavailable
	}
	return s.centres, nil
}

// Cards returns the ID-card dataset (candidates.json).
func (s *Store) Cards() ([]Candidate, error) {
	if s.cardsErr != nil {
		return nil, ErrUnavailable
	}
	return s.cards, nil
}

// PosterEntries returns the poster-tool dataset (data.json).
func (s *Store) PosterEntries() ([]Candidate, error) {
	if s.posterErr != nil {
		return nil, ErrUnavailable
	}
	return s.poster, nil
}

// Err reports the underlying load errors, if any, for startup logging.
func (s *Store) Err() error {
	return errors.Join(s.centresErr, s.cardsErr, s.posterErr)
}
