package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the snapshot as a single JSON document on disk. It is
// the default backend for development and tests. An RWMutex serializes
// Update cycles while allowing concurrent Views.
type FileStore struct {
	mu   sync.RWMutex
	path string
	snap *Snapshot
}

// OpenFile loads the JSON database at path, creating it when absent
func OpenFile(path string) (*FileStore, error) {
	st := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		st.snap = NewSnapshot()
		if err := st.persist(st.snap); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read database file: %w", err)
	default:
		snap := NewSnapshot()
		if err := json.Unmarshal(raw, snap); err != nil {
			return nil, fmt.Errorf("decode database file: %w", err)
		}
		st.snap = snap
	}
	return st, nil
}

// View runs fn against the current snapshot under a read lock
func (st *FileStore) View(ctx context.Context, fn func(*Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return fn(st.snap)
}

// Update runs fn against a private copy and persists the result. The copy is
// only installed after a successful write, so readers never observe a torn
// or discarded mutation.
func (st *FileStore) Update(ctx context.Context, fn func(*Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	work, err := st.snap.Clone()
	if err != nil {
		return err
	}
	if err := fn(work); err != nil {
		return err
	}
	if err := st.persist(work); err != nil {
		return err
	}
	st.snap = work
	return nil
}

// Close is a no-op for the file backend
func (st *FileStore) Close(context.Context) error { return nil }

func (st *FileStore) persist(snap *Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode database file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write database file: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}
	return nil
}
