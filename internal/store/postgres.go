package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Migrate creates the schema if it does not exist. Statements are idempotent
// so repeated startups are safe.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vmx_benchmarks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			bands JSONB NOT NULL DEFAULT '[]',
			target_ranges JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS vmx_scenarios (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			benchmark_id UUID NOT NULL REFERENCES vmx_benchmarks(id) ON DELETE CASCADE,
			area_sqft DOUBLE PRECISION NOT NULL,
			selections JSONB NOT NULL DEFAULT '[]',
			result JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS vmx_settings (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

const benchmarkColumns = `id, name, currency, bands, target_ranges, created_at, updated_at`

func (s *PostgresStore) CreateBenchmark(ctx context.Context, b *Benchmark) error {
	bandsJSON, _ := json.Marshal(b.Bands)
	rangesJSON, _ := json.Marshal(b.TargetRanges)

	return s.pool.QueryRow(ctx, `
		INSERT INTO vmx_benchmarks (name, currency, bands, target_ranges)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		b.Name, b.Currency, bandsJSON, rangesJSON,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (s *PostgresStore) scanBenchmark(row pgx.Row) (*Benchmark, error) {
	b := &Benchmark{}
	var bandsJSON, rangesJSON []byte
	err := row.Scan(&b.ID, &b.Name, &b.Currency, &bandsJSON, &rangesJSON, &b.CreatedAt, &b.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if bandsJSON != nil {
		_ = json.Unmarshal(bandsJSON, &b.Bands)
	}
	if rangesJSON != nil {
		_ = json.Unmarshal(rangesJSON, &b.TargetRanges)
	}
	return b, nil
}

func (s *PostgresStore) GetBenchmark(ctx context.Context, id uuid.UUID) (*Benchmark, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+benchmarkColumns+`
		FROM vmx_benchmarks WHERE id = $1`, id)
	return s.scanBenchmark(row)
}

func (s *PostgresStore) ListBenchmarks(ctx context.Context) ([]*Benchmark, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+benchmarkColumns+`
		FROM vmx_benchmarks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Benchmark
	for rows.Next() {
		b, err := s.scanBenchmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateBenchmark(ctx context.Context, b *Benchmark) error {
	bandsJSON, _ := json.Marshal(b.Bands)
	rangesJSON, _ := json.Marshal(b.TargetRanges)

	return s.pool.QueryRow(ctx, `
		UPDATE vmx_benchmarks
		SET name = $2, currency = $3, bands = $4, target_ranges = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		b.ID, b.Name, b.Currency, bandsJSON, rangesJSON,
	).Scan(&b.UpdatedAt)
}

func (s *PostgresStore) DeleteBenchmark(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM vmx_benchmarks WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) CountBenchmarks(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vmx_benchmarks`).Scan(&n)
	return n, err
}

const scenarioColumns = `id, name, benchmark_id, area_sqft, selections, result, created_at, updated_at`

func (s *PostgresStore) CreateScenario(ctx context.Context, sc *Scenario) error {
	selectionsJSON, _ := json.Marshal(sc.Selections)
	var resultJSON []byte
	if sc.Result != nil {
		resultJSON, _ = json.Marshal(sc.Result)
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO vmx_scenarios (name, benchmark_id, area_sqft, selections, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		sc.Name, sc.BenchmarkID, sc.AreaSqft, selectionsJSON, resultJSON,
	).Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
}

func (s *PostgresStore) scanScenario(row pgx.Row) (*Scenario, error) {
	sc := &Scenario{}
	var selectionsJSON, resultJSON []byte
	err := row.Scan(&sc.ID, &sc.Name, &sc.BenchmarkID, &sc.AreaSqft, &selectionsJSON, &resultJSON, &sc.CreatedAt, &sc.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if selectionsJSON != nil {
		_ = json.Unmarshal(selectionsJSON, &sc.Selections)
	}
	if resultJSON != nil {
		_ = json.Unmarshal(resultJSON, &sc.Result)
	}
	return sc, nil
}

func (s *PostgresStore) GetScenario(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+scenarioColumns+`
		FROM vmx_scenarios WHERE id = $1`, id)
	return s.scanScenario(row)
}

func (s *PostgresStore) ListScenarios(ctx context.Context) ([]*Scenario, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+scenarioColumns+`
		FROM vmx_scenarios ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Scenario
	for rows.Next() {
		sc, err := s.scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM vmx_scenarios WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM vmx_settings WHERE key = $1`, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO vmx_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, []byte(value))
	return err
}
