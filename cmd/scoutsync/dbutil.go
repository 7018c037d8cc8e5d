package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoutsync/scoutsync/pkg/composables"
	"github.com/scoutsync/scoutsync/pkg/configuration"
)

// openPool connects to the configured database and returns a context
// carrying the pool and logger for the repository layer.
func openPool(ctx context.Context) (context.Context, *pgxpool.Pool, error) {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return nil, nil, withCode(exitDB, fmt.Errorf("connect database: %w", err))
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, withCode(exitDB, fmt.Errorf("ping database: %w", err))
	}

	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithLogger(ctx, conf.Logger())
	return ctx, pool, nil
}
