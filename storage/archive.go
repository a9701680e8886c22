// Package storage holds the dataset object store and the archive of
// computed plans.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// Archive records computed plans so they can be listed later.
type Archive interface {
	Record(ctx context.Context, run models.PlanRun) error
	// Recent returns the newest runs first. An empty kind matches all.
	Recent(ctx context.Context, kind string, limit int) ([]models.PlanRun, error)
	Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS plan_runs (
	id          UUID PRIMARY KEY,
	kind        TEXT NOT NULL,
	request_id  TEXT,
	request     JSONB,
	response    JSONB,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS plan_runs_kind_created_idx ON plan_runs (kind, created_at DESC);
`

type PostgresArchive struct {
	pool *pgxpool.Pool
}

// NewPostgresArchive connects and creates the plan_runs table if needed.
func NewPostgresArchive(ctx context.Context, url string) (*PostgresArchive, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create plan_runs table: %w", err)
	}
	return &PostgresArchive{pool: pool}, nil
}

func (a *PostgresArchive) Record(ctx context.Context, run models.PlanRun) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO plan_runs (id, kind, request_id, request, response, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Kind, run.RequestID, jsonText(run.Request), jsonText(run.Response), run.DurationMs, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert plan run: %w", err)
	}
	return nil
}

func (a *PostgresArchive) Recent(ctx context.Context, kind string, limit int) ([]models.PlanRun, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT id::text, kind, COALESCE(request_id, ''), request, response, duration_ms, created_at
		 FROM plan_runs
		 WHERE $1 = '' OR kind = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("query plan runs: %w", err)
	}
	defer rows.Close()

	runs := []models.PlanRun{}
	for rows.Next() {
		var run models.PlanRun
		var req, resp []byte
		if err := rows.Scan(&run.ID, &run.Kind, &run.RequestID, &req, &resp, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan run: %w", err)
		}
		run.Request, run.Response = req, resp
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (a *PostgresArchive) Close() { a.pool.Close() }

func jsonText(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	return &s
}

// MemoryArchive keeps the most recent runs in process. It backs the history
// endpoint when no database is configured.
type MemoryArchive struct {
	mu   sync.Mutex
	runs []models.PlanRun
	size int
}

func NewMemoryArchive(size int) *MemoryArchive {
	if size <= 0 {
		size = 100
	}
	return &MemoryArchive{size: size}
}

func (a *MemoryArchive) Record(_ context.Context, run models.PlanRun) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runs = append(a.runs, run)
	if over := len(a.runs) - a.size; over > 0 {
		a.runs = append([]models.PlanRun(nil), a.runs[over:]...)
	}
	return nil
}

func (a *MemoryArchive) Recent(_ context.Context, kind string, limit int) ([]models.PlanRun, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []models.PlanRun{}
	for i := len(a.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if kind == "" || a.runs[i].Kind == kind {
			out = append(out, a.runs[i])
		}
	}
	return out, nil
}

func (a *MemoryArchive) Close() {}
