package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/pot2go/internal/ui"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/exp/slices"
)

const (
	BucketCommits = "commits"
)

// CommitRecord describes a single latch of the setpoint
type CommitRecord struct {
	Value       int       `json:"value"`
	Previous    int       `json:"previous"`
	HasPrevious bool      `json:"hasPrevious"`
	WriteError  string    `json:"writeError,omitempty"`
	At          time.Time `json:"at"`
}

// Persistence is a write-mostly journal of setpoint commits.
// It is kept for diagnostics, nothing is restored from it on startup.
type Persistence interface {
	Init() error

	SaveCommit(record CommitRecord) (err error)
	// LoadCommits returns up to limit of the most recent records, oldest first.
	// A limit <= 0 returns all records.
	LoadCommits(limit int) ([]CommitRecord, error)
	DeleteCommits() (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveCommit appends the given record to the journal
func (p persistence) SaveCommit(record CommitRecord) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketCommits))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), data)
	})
}

// LoadCommits loads the most recent commit records from the journal
func (p persistence) LoadCommits(limit int) ([]CommitRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []CommitRecord
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketCommits))
		if b == nil {
			return nil
		}

		// walk backwards so a limit keeps the newest entries
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(result) >= limit {
				break
			}
			var record CommitRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("invalid commit record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			result = append(result, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(result)
	return result, nil
}

// DeleteCommits removes all records from the journal
func (p persistence) DeleteCommits() (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(BucketCommits))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
