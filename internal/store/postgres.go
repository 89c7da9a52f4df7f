package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshotRow stores the whole snapshot as one JSONB document. The store
// keeps a warm in-memory copy and writes through on every Update, so read
// paths never hit the database.
type snapshotRow struct {
	ID        int    `gorm:"primaryKey"`
	Data      []byte `gorm:"type:jsonb;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (snapshotRow) TableName() string { return "snapshots" }

// PostgresStore persists the snapshot in a PostgreSQL table via GORM
type PostgresStore struct {
	mu   sync.RWMutex
	db   *gorm.DB
	snap *Snapshot
}

// OpenPostgres connects, migrates the snapshots table and loads the current
// snapshot, initializing an empty one on first run
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots table: %w", err)
	}

	st := &PostgresStore{db: db}
	var row snapshotRow
	err = db.WithContext(ctx).First(&row, 1).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		st.snap = NewSnapshot()
		if err := st.persist(ctx, db, st.snap); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	default:
		snap := NewSnapshot()
		if err := json.Unmarshal(row.Data, snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		st.snap = snap
	}
	return st, nil
}

// View runs fn against the in-memory snapshot under a read lock
func (st *PostgresStore) View(ctx context.Context, fn func(*Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return fn(st.snap)
}

// Update clones the snapshot, applies fn and writes the result back inside
// a transaction before installing the new copy
func (st *PostgresStore) Update(ctx context.Context, fn func(*Snapshot) error) error {
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
	err = st.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return st.persist(ctx, tx, work)
	})
	if err != nil {
		return err
	}
	st.snap = work
	return nil
}

// Close releases the underlying connection pool
func (st *PostgresStore) Close(context.Context) error {
	sqlDB, err := st.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (st *PostgresStore) persist(ctx context.Context, db *gorm.DB, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	row := snapshotRow{ID: 1, Data: raw}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
