package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/pkg/helpers"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// DefaultTxTimeout bounds a transaction whose context has no deadline
const DefaultTxTimeout = 30 * time.Second

// DBTX is the statement surface shared by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts a transaction
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// Transactor runs fn inside a single all-or-nothing transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn TransactionFn) error
}

// PooledConn is a connection checked out of the pool. Release hands it back.
type PooledConn interface {
	TxBeginner
	Release()
}

// Acquirer checks dedicated connections out of a pool
type Acquirer interface {
	Acquire(ctx context.Context) (PooledConn, error)
}

type poolAcquirer struct {
	pool *pgxpool.Pool
}

func (a poolAcquirer) Acquire(ctx context.Context) (PooledConn, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// PostgresDB owns the process-wide connection pool
type PostgresDB struct {
	Pool  *pgxpool.Pool
	conns Acquirer
}

// NewPostgresDB creates the connection pool and verifies it with a ping.
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = helpers.ParseDuration(cfg.Database.ConnMaxLifetime, time.Hour)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &PostgresDB{Pool: pool, conns: poolAcquirer{pool: pool}}, nil
}

// Close releases every pooled connection
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks that the store is reachable
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// WithTransaction acquires a dedicated connection, runs fn in a transaction on
// it and hands the connection back to the pool whatever the outcome.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	conns := db.conns
	if conns == nil {
		conns = poolAcquirer{pool: db.Pool}
	}
	return RunInConn(ctx, conns, fn)
}

// RunInConn runs fn through RunInTx on a connection taken from a. The
// connection is released after commit or rollback, including when fn panics.
func RunInConn(ctx context.Context, a Acquirer, fn TransactionFn) error {
	conn, err := a.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	return RunInTx(ctx, conn, fn)
}

// RunInTx begins a transaction on b, commits when fn succeeds and rolls back
// when it fails or panics. A failed rollback is logged and joined to fn's error.
func RunInTx(ctx context.Context, b TxBeginner, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTxTimeout)
		defer cancel()
	}

	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// rollback must run even when the request context is already cancelled
	rollbackCtx := context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(rollbackCtx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(rollbackCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error().Err(rbErr).AnErr("cause", err).Msg("Failed to rollback transaction")
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		logger.Debug().Err(err).Msg("Transaction rolled back")
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
