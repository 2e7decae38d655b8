package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/singleflight"
)

// ErrUnavailable is returned when the database cannot be reached.
var ErrUnavailable = errors.New("database unavailable")

const connectTimeout = 10 * time.Second

// Conn lazily establishes one MongoDB client per process and hands out the
// cached database handle to every caller. Concurrent callers share a single
// in-flight connect attempt; a failed attempt is not cached.
type Conn struct {
	uri    string
	dbName string

	dial singleflight.Group

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

func New(uri, dbName string) *Conn {
	return &Conn{uri: uri, dbName: dbName}
}

// Get returns the client and database, connecting and pinging on first use.
// A caller whose ctx ends while the attempt is still running gives up early.
func (c *Conn) Get(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	if client, db := c.cached(); db != nil {
		return client, db, nil
	}

	ch := c.dial.DoChan("connect", func() (interface{}, error) {
		return nil, c.connect()
	})

	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, context.Cause(ctx))
	case res := <-ch:
		if res.Err != nil {
			return nil, nil, res.Err
		}
	}

	client, db := c.cached()
	if db == nil {
		return nil, nil, fmt.Errorf("%w: connection closed", ErrUnavailable)
	}
	return client, db, nil
}

func (c *Conn) cached() (*mongo.Client, *mongo.Database) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client, c.db
}

// connect runs detached from any one request, so a waiter leaving early does
// not cancel the attempt for the others.
func (c *Conn) connect() error {
	if _, db := c.cached(); db != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(c.uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetRetryWrites(true)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.mu.Lock()
	c.client = client
	c.db = client.Database(c.dbName)
	c.mu.Unlock()

	log.Info().Str("db", c.dbName).Msg("connected to MongoDB")
	return nil
}

// Collection resolves a collection handle, connecting if needed.
func (c *Conn) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	_, db, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Close disconnects the cached client, if any.
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client, c.db = nil, nil
	return err
}

// IsUnavailable reports whether err means the database could not be reached,
// either at connect time or mid-operation.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
