package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabase   = "connectsphere"
	mongoCollection = "snapshots"
	mongoDocumentID = "current"
)

type mongoDoc struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore persists the snapshot as a single document. Like the other
// backends it keeps a warm in-memory copy guarded by an RWMutex.
type MongoStore struct {
	mu   sync.RWMutex
	coll *mongo.Collection
	cli  *mongo.Client
	snap *Snapshot
}

// OpenMongo connects and loads the current snapshot, initializing an empty
// one on first run
func OpenMongo(ctx context.Context, uri string) (*MongoStore, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	st := &MongoStore{cli: cli, coll: cli.Database(mongoDatabase).Collection(mongoCollection)}
	var doc mongoDoc
	err = st.coll.FindOne(ctx, bson.M{"_id": mongoDocumentID}).Decode(&doc)
	switch {
	case err == mongo.ErrNoDocuments:
		st.snap = NewSnapshot()
		if err := st.persist(ctx, st.snap); err != nil {
			_ = cli.Disconnect(ctx)
			return nil, err
		}
	case err != nil:
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("load snapshot: %w", err)
	default:
		snap := NewSnapshot()
		if err := json.Unmarshal(doc.Data, snap); err != nil {
			_ = cli.Disconnect(ctx)
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		st.snap = snap
	}
	return st, nil
}

// View runs fn against the in-memory snapshot under a read lock
func (st *MongoStore) View(ctx context.Context, fn func(*Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return fn(st.snap)
}

// Update clones the snapshot, applies fn and replaces the stored document
// before installing the new copy
func (st *MongoStore) Update(ctx context.Context, fn func(*Snapshot) error) error {
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
	if err := st.persist(ctx, work); err != nil {
		return err
	}
	st.snap = work
	return nil
}

// Close disconnects the client
func (st *MongoStore) Close(ctx context.Context) error {
	return st.cli.Disconnect(ctx)
}

func (st *MongoStore) persist(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	doc := mongoDoc{ID: mongoDocumentID, Data: raw, UpdatedAt: time.Now()}
	_, err = st.coll.ReplaceOne(ctx, bson.M{"_id": mongoDocumentID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
