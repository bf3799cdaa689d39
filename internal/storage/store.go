package storage

import (
	"encoding/json"
	"fmt"
	"log"

	bolt "go.etcd.io/bbolt"

	"github.com/strideapp/stride/backend/internal/model/exercise"
	"github.com/strideapp/stride/backend/internal/model/journal"
)

// Bucket and key layout. All values are JSON-encoded and written
// read-then-replace; there is one writer per store file.
var (
	bucketState   = []byte("state")
	bucketScores  = []byte("scores")
	bucketJournal = []byte("journal")

	keyMood          = []byte("mood")
	keyGoals         = []byte("dailyGoals")
	keyHomeExercises = []byte("homeExercises")
	keyEntries       = []byte("entries")
)

// Store persists the companion state in a local bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store at path and ensures buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketState, bucketScores, bucketJournal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveMood persists the current mood selection.
func (s *Store) SaveMood(mood string) error {
	return s.putJSON(bucketState, keyMood, mood)
}

// Mood returns the persisted mood selection, empty if never set.
func (s *Store) Mood() (string, error) {
	var mood string
	err := s.getJSON(bucketState, keyMood, &mood)
	return mood, err
}

// AppendScore pushes one entry onto a domain's history. Histories are
// append-only; existing entries are never rewritten or truncated.
func (s *Store) AppendScore(domain exercise.Domain, entry exercise.ScoreEntry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketScores)

		var history []exercise.ScoreEntry
		if raw := bucket.Get([]byte(domain)); raw != nil {
			if err := json.Unmarshal(raw, &history); err != nil {
				return fmt.Errorf("corrupt score history for %s: %w", domain, err)
			}
		}

		history = append(history, entry)
		raw, err := json.Marshal(history)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(domain), raw)
	})
}

// Scores returns a domain's full history, oldest first.
func (s *Store) Scores(domain exercise.Domain) ([]exercise.ScoreEntry, error) {
	var history []exercise.ScoreEntry
	err := s.getJSON(bucketScores, []byte(domain), &history)
	return history, err
}

// PrependJournal inserts an entry at the head of the journal (newest first).
func (s *Store) PrependJournal(entry journal.Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketJournal)

		var entries []journal.Entry
		if raw := bucket.Get(keyEntries); raw != nil {
			if err := json.Unmarshal(raw, &entries); err != nil {
				return fmt.Errorf("corrupt journal: %w", err)
			}
		}

		entries = append([]journal.Entry{entry}, entries...)
		raw, err := json.Marshal(entries)
		if err != nil {
			return err
		}
		return bucket.Put(keyEntries, raw)
	})
}

// JournalEntries returns all entries, newest first.
func (s *Store) JournalEntries() ([]journal.Entry, error) {
	var entries []journal.Entry
	err := s.getJSON(bucketJournal, keyEntries, &entries)
	return entries, err
}

// SetGoalDone flips one daily-goal completion flag.
func (s *Store) SetGoalDone(goalID string, done bool) error {
	return s.updateFlags(keyGoals, goalID, done)
}

// Goals returns the daily-goal completion flags.
func (s *Store) Goals() (map[string]bool, error) {
	return s.flags(keyGoals)
}

// SetHomeExerciseDone marks a home exercise completed (or not). The
// completed set is order-irrelevant.
func (s *Store) SetHomeExerciseDone(id string, done bool) error {
	return s.updateFlags(keyHomeExercises, id, done)
}

// HomeExercises returns the completed home-exercise set.
func (s *Store) HomeExercises() (map[string]bool, error) {
	return s.flags(keyHomeExercises)
}

func (s *Store) updateFlags(key []byte, id string, done bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketState)

		flags := make(map[string]bool)
		if raw := bucket.Get(key); raw != nil {
			if err := json.Unmarshal(raw, &flags); err != nil {
				return fmt.Errorf("corrupt flags under %s: %w", key, err)
			}
		}

		if done {
			flags[id] = true
		} else {
			delete(flags, id)
		}

		raw, err := json.Marshal(flags)
		if err != nil {
			return err
		}
		return bucket.Put(key, raw)
	})
}

func (s *Store) flags(key []byte) (map[string]bool, error) {
	flags := make(map[string]bool)
	err := s.getJSON(bucketState, key, &flags)
	if err != nil {
		return nil, err
	}
	return flags, nil
}

func (s *Store) putJSON(bucket, key []byte, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key, raw)
	})
}

func (s *Store) getJSON(bucket, key []byte, out any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucket).Get(key)
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			log.Printf("[storage] failed to decode %s/%s: %v", bucket, key, err)
			return fmt.Errorf("corrupt value under %s/%s: %w", bucket, key, err)
		}
		return nil
	})
}
