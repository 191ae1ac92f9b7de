// Package journal keeps an append-only record of applied fix sessions in a
// local bbolt database, so past rewrites can be audited.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var sessionsBucket = []byte("sessions")

// Change records one commit's timestamp move within a session.
type Change struct {
	Hash         string `json:"hash"`
	OldAuthor    string `json:"old_author"`
	OldCommitter string `json:"old_committer"`
	New          string `json:"new"`
}

// Record captures one fix session outcome for auditing.
type Record struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Mode          string    `json:"mode"`
	Changes       []Change  `json:"changes"`
	Success       bool      `json:"success"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

// Journal is a bbolt-backed session log. Single-writer, local use only.
type Journal struct {
	db *bolt.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Append stores a session record. A missing ID or start time is filled in.
func (j *Journal) Append(rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	// Keys sort chronologically: RFC3339 start time plus the id for
	// uniqueness.
	key := []byte(rec.StartedAt.UTC().Format(time.RFC3339Nano) + "/" + rec.ID)

	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put(key, data)
	})
}

// Sessions returns all recorded sessions, oldest first.
func (j *Journal) Sessions() ([]Record, error) {
	var records []Record
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt session record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
