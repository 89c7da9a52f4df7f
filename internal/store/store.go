// Package store provides the persistent record store backing all application
// state. Every mutating operation runs as a single Update callback over the
// full snapshot; backends serialize updates so that concurrent
// read-modify-write cycles cannot lose writes.
package store

import (
	"context"

	"go.uber.org/zap"
)

// Store is the injectable record store. View callbacks run concurrently
// under a read lock and must not mutate the snapshot; Update callbacks are
// serialized and their changes are persisted atomically before the next
// writer is admitted. An error returned from an Update callback discards
// the mutation.
type Store interface {
	View(ctx context.Context, fn func(*Snapshot) error) error
	Update(ctx context.Context, fn func(*Snapshot) error) error
	Close(ctx context.Context) error
}

// Options configure Open
type Options struct {
	// Driver selects the backend: "postgres", "mongo" or "file"
	Driver string
	// FilePath is the JSON database location for the file backend
	FilePath string
	// PostgresURL is the DSN for the postgres backend
	PostgresURL string
	// MongoURI is the connection string for the mongo backend
	MongoURI string
}

// Open initializes the configured backend. When the configured backend
// cannot be reached it falls back to the file store so a development
// environment works without any database running.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Driver {
	case "postgres":
		st, err := OpenPostgres(ctx, opts.PostgresURL)
		if err == nil {
			logger.Info("record store ready", zap.String("driver", "postgres"))
			return st, nil
		}
		logger.Warn("postgres unavailable, falling back to file store", zap.Error(err))
	case "mongo":
		st, err := OpenMongo(ctx, opts.MongoURI)
		if err == nil {
			logger.Info("record store ready", zap.String("driver", "mongo"))
			return st, nil
		}
		logger.Warn("mongo unavailable, falling back to file store", zap.Error(err))
	}
	st, err := OpenFile(opts.FilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("record store ready", zap.String("driver", "file"), zap.String("path", opts.FilePath))
	return st, nil
}
