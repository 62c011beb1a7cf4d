package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"
)

// NewPool は PostgreSQL 接続プールを生成し、疎通を確認する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// DialFunc opens a pool for connString.
type DialFunc func(ctx context.Context, connString string) (*pgxpool.Pool, error)

// Connector owns the process-wide database pool. The pool is opened on first
// use rather than at startup so the API can serve from the fallback store
// while the database is unreachable. Concurrent first callers share a single
// in-flight dial; a failed dial is not cached and the next call tries again.
type Connector struct {
	connString string
	timeout    time.Duration
	dial       DialFunc

	group singleflight.Group

	mu     sync.RWMutex
	pool   *pgxpool.Pool
	closed bool
}

// NewConnector creates a Connector. timeout bounds each dial attempt.
func NewConnector(connString string, timeout time.Duration) *Connector {
	return NewConnectorWithDial(connString, timeout, NewPool)
}

// NewConnectorWithDial is NewConnector with a custom dial function.
func NewConnectorWithDial(connString string, timeout time.Duration, dial DialFunc) *Connector {
	return &Connector{connString: connString, timeout: timeout, dial: dial}
}

func (c *Connector) cached() (*pgxpool.Pool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool, c.closed
}

// Pool returns the shared pool, dialing it if this is the first call.
func (c *Connector) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if pool, closed := c.cached(); closed {
		return nil, ErrClosed
	} else if pool != nil {
		return pool, nil
	}

	v, err, _ := c.group.Do("pool", func() (any, error) {
		if pool, closed := c.cached(); closed {
			return nil, ErrClosed
		} else if pool != nil {
			return pool, nil
		}

		// The dial is shared by every waiting caller, so it must not be
		// cancelled by whichever request happened to start it.
		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		pool, err := c.dial(dialCtx, c.connString)
		if err != nil {
			return nil, fmt.Errorf("repository: connect: %w", err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			pool.Close()
			return nil, ErrClosed
		}
		c.pool = pool
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pgxpool.Pool), nil
}

// Ping checks that the database is reachable, dialing if needed.
func (c *Connector) Ping(ctx context.Context) error {
	pool, err := c.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close releases the pool. Subsequent calls to Pool return ErrClosed.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
}
