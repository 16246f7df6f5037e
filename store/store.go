// Package store keeps named snapshots of trees in a bolt database.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/numtide/fstree/codec"
	"github.com/numtide/fstree/tree"
	bolt "go.etcd.io/bbolt"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is a tree saved under a name.
type Snapshot struct {
	Name    string      `msgpack:"name"`
	Created time.Time   `msgpack:"created"`
	Root    *codec.Node `msgpack:"root"`
}

// Store wraps a bolt database holding snapshots.
type Store struct {
	db  *bolt.DB
	log *log.Logger
}

// Path returns the default location of the snapshot database.
func Path() (string, error) {
	path, err := xdg.DataFile("fstree/snapshots.db")
	if err != nil {
		return "", fmt.Errorf("could not resolve local path for the snapshot store: %w", err)
	}

	return path, nil
}

// Open opens, or creates, the snapshot database at path. An empty path selects the default location.
func Open(path string) (*Store, error) {
	var err error

	if path == "" {
		if path, err = Path(); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store at %s: %w", path, err)
	}

	// ensure bucket exists so read transactions can find it
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := bucket[Snapshot](bucketSnapshots, tx)

		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	l := log.WithPrefix("store")
	l.Debugf("opened snapshot store at %s", path)

	return &Store{db: db, log: l}, nil
}

func (s *Store) Close() error {
	return s.db.Close() //nolint:wrapcheck
}

// Save encodes root and stores it under name, replacing any snapshot with the same name.
func (s *Store) Save(name string, root tree.Element) (*Snapshot, error) {
	node, err := codec.Encode(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}

	snapshot := &Snapshot{
		Name:    name,
		Created: time.Now(),
		Root:    node,
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket[Snapshot](bucketSnapshots, tx)
		if err != nil {
			return err
		}

		return b.Put(name, snapshot)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}

	s.log.Infof("saved snapshot %s", name)

	return snapshot, nil
}

// Get returns the raw snapshot stored under name.
func (s *Store) Get(name string) (*Snapshot, error) {
	var snapshot *Snapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket[Snapshot](bucketSnapshots, tx)
		if err != nil {
			return err
		}

		snapshot, err = b.Get(name)

		return err
	})

	if errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}

	return snapshot, nil
}

// Load rebuilds the tree stored under name, preserving element ids and dates.
func (s *Store) Load(name string) (tree.Element, error) {
	snapshot, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	root, err := codec.Decode(snapshot.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}

	return root, nil
}

// List returns the names of all snapshots, sorted.
func (s *Store) List() ([]string, error) {
	var names []string

	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket[Snapshot](bucketSnapshots, tx)
		if err != nil {
			return err
		}

		names = b.Keys()

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	return names, nil
}

// Snapshots returns every snapshot, ordered by name.
func (s *Store) Snapshots() ([]*Snapshot, error) {
	var snapshots []*Snapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket[Snapshot](bucketSnapshots, tx)
		if err != nil {
			return err
		}

		return b.ForEach(func(_ string, snapshot *Snapshot) error {
			snapshots = append(snapshots, snapshot)

			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}

	return snapshots, nil
}

// Delete removes the snapshot stored under name.
func (s *Store) Delete(name string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket[Snapshot](bucketSnapshots, tx)
		if err != nil {
			return err
		}

		return b.Delete(name)
	})

	if errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	} else if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", name, err)
	}

	s.log.Infof("deleted snapshot %s", name)

	return nil
}
