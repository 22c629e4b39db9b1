//go:build integration

// Package pgtest starts a throwaway Postgres for integration tests and
// applies the embedded migrations to it.
package pgtest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/JudoNutritionBack/internal/database"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type Handle struct {
	Pool   *pgxpool.Pool
	URL    string
	cancel func()
	stop   func(context.Context) error
}

func (h *Handle) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

func Start(ctx context.Context) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("judo"),
		postgres.WithUsername("judo"),
		postgres.WithPassword("judo"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	fail := func(err error) (*Handle, error) {
		_ = pg.Terminate(context.Background())
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail(err)
	}

	pool, err := database.Connect(ctx, uri, 5, nil)
	if err != nil {
		return fail(err)
	}
	if err := database.Migrate(uri); err != nil {
		pool.Close()
		return fail(err)
	}

	return &Handle{
		Pool:   pool,
		URL:    uri,
		cancel: cancel,
		stop:   pg.Terminate,
	}, nil
}

// Reset empties every table between tests.
func (h *Handle) Reset(ctx context.Context) error {
	_, err := h.Pool.Exec(ctx, `
		TRUNCATE messages, competitions, tasks, weekly_assessments, weight_entries,
			nutritionists, athletes, users
		RESTART IDENTITY CASCADE
	`)
	return err
}
