package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErVaaL/argos-resource-service/internal/adapters/repos"
	"github.com/ErVaaL/argos-resource-service/internal/config"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/pkg/circuitbreaker"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type (
	// GuardedPool wraps a connection pool with circuit breakers so that a
	// struggling database sheds load instead of piling up connections.
	// An open circuit surfaces as ErrStorageUnavailable.
	GuardedPool struct {
		pool       repos.PoolOps
		queryCB    *circuitbreaker.CircuitBreaker[pgx.Rows]
		queryRowCB *circuitbreaker.CircuitBreaker[pgx.Row]
		execCB     *circuitbreaker.CircuitBreaker[pgconn.CommandTag]
	}

	errRow struct {
		err error
	}
)

func (r errRow) Scan(...any) error { return r.err }

// NewGuardedPool wraps pool with circuit breakers built from cfg.
// With the breaker disabled every call passes straight through.
func NewGuardedPool(pool repos.PoolOps, cfg config.Breaker) *GuardedPool {
	build := func(name string) circuitbreaker.Config {
		return circuitbreaker.Config{
			Name:             name,
			Enabled:          cfg.Enabled,
			MaxRequests:      cfg.MaxRequests,
			Interval:         cfg.Interval,
			Timeout:          cfg.Timeout,
			FailureThreshold: cfg.FailureThreshold,
		}
	}

	return &GuardedPool{
		pool:       pool,
		queryCB:    circuitbreaker.New[pgx.Rows](build("postgres-query")),
		queryRowCB: circuitbreaker.New[pgx.Row](build("postgres-query-row")),
		execCB:     circuitbreaker.New[pgconn.CommandTag](build("postgres-exec")),
	}
}

func (p *GuardedPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := circuitbreaker.Execute(p.queryCB, func() (pgx.Rows, error) {
		return p.pool.Query(ctx, sql, args...)
	})
	if err != nil {
		return nil, mapBreakerError(err)
	}

	return rows, nil
}

func (p *GuardedPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	row, err := circuitbreaker.Execute(p.queryRowCB, func() (pgx.Row, error) {
		return p.pool.QueryRow(ctx, sql, args...), nil
	})
	if err != nil {
		return errRow{err: mapBreakerError(err)}
	}

	return row
}

func (p *GuardedPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := circuitbreaker.Execute(p.execCB, func() (pgconn.CommandTag, error) {
		return p.pool.Exec(ctx, sql, args...)
	})
	if err != nil {
		return pgconn.CommandTag{}, mapBreakerError(err)
	}

	return tag, nil
}

func (p *GuardedPool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func mapBreakerError(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	return err
}
