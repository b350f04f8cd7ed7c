// Package db provides database connectivity and migration functionality for the finstarter service.
// It owns the single process-wide connection handle: the Postgres pool is created on
// first use and reused thereafter, and it is handed to the credential store by injection
// rather than reached through a package-level global.
package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/finstarter-go/apperror"
)

// DialFunc opens a new connection pool.
type DialFunc func(ctx context.Context) (*pgxpool.Pool, error)

// LazyPool connects on first use and then reuses the same *pgxpool.Pool.
// A failed connect is not cached; the next caller tries again.
//
// It satisfies the narrow query interface the repositories depend on, so a
// repository never has to know whether the pool is already up.
type LazyPool struct {
	mu   sync.Mutex
	pool *pgxpool.Pool
	dial DialFunc
}

// NewLazyPool wraps dial. Nothing is opened until the first query.
func NewLazyPool(dial DialFunc) *LazyPool {
	return &LazyPool{dial: dial}
}

// NewPostgresDialer returns a DialFunc that parses databaseURL, applies pool
// limits and verifies the connection with a ping.
func NewPostgresDialer(databaseURL string, maxConns int) DialFunc {
	return func(ctx context.Context) (*pgxpool.Pool, error) {
		poolConfig, err := pgxpool.ParseConfig(databaseURL)
		if err != nil {
			return nil, apperror.NewDatabaseError("error parsing database URL", err)
		}

		poolConfig.MaxConns = int32(maxConns)
		poolConfig.MaxConnIdleTime = 10 * time.Minute
		poolConfig.MaxConnLifetime = 30 * time.Minute

		// Bound pool creation so an unreachable database cannot hang the first request forever.
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err != nil {
			return nil, apperror.NewDatabaseError("error creating pgxpool", err)
		}

		if err := pool.Ping(connectCtx); err != nil {
			pool.Close()
			return nil, apperror.NewDatabaseError("error connecting to the database", err)
		}

		return pool, nil
	}
}

// Pool returns the shared pool, connecting if this is the first call.
func (p *LazyPool) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}

	pool, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return pool, nil
}

// Exec runs a statement on the shared pool.
func (p *LazyPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := p.Pool(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pool.Exec(ctx, sql, args...)
}

// QueryRow runs a single-row query on the shared pool. A connect failure is
// reported by the returned row's Scan.
func (p *LazyPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := p.Pool(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

// Ping checks connectivity, connecting first if needed.
func (p *LazyPool) Ping(ctx context.Context) error {
	pool, err := p.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close closes the pool if it was ever opened. The LazyPool may reconnect afterwards.
func (p *LazyPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

// String is used in log lines; it never includes credentials.
func (p *LazyPool) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool == nil {
		return "postgres(not connected)"
	}
	cfg := p.pool.Config().ConnConfig
	return fmt.Sprintf("postgres(%s:%d/%s)", cfg.Host, cfg.Port, cfg.Database)
}
