package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/career-recommender/internal/types"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS recommendation_sets (
	id              UUID PRIMARY KEY,
	profile         JSONB NOT NULL,
	recommendations JSONB NOT NULL,
	role_ids        TEXT[] NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createIndexSQL = `CREATE INDEX IF NOT EXISTS recommendation_sets_created_at_idx
	ON recommendation_sets (created_at DESC)`

// PostgresStore persists sets in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the table exists
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the recommendation_sets table when missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createTableSQL, createIndexSQL} {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return &StorageError{Op: "migrate", Message: "failed to create schema", Cause: err}
		}
	}
	return nil
}

// Save inserts or replaces a set
func (s *PostgresStore) Save(ctx context.Context, saved *types.SavedSet) error {
	if saved == nil {
		return &StorageError{Op: "save", Message: "nil set"}
	}

	profileJSON, err := json.Marshal(saved.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	setJSON, err := json.Marshal(saved.Set)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation set: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO recommendation_sets (id, profile, recommendations, role_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET profile = $2, recommendations = $3, role_ids = $4`,
		saved.ID, profileJSON, setJSON, saved.Set.RoleIDs(), saved.CreatedAt,
	)
	if err != nil {
		return &StorageError{Op: "save", Message: fmt.Sprintf("failed to save set %s", saved.ID), Cause: err}
	}
	return nil
}

// Get retrieves a set by id
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*types.SavedSet, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, profile, recommendations, created_at FROM recommendation_sets WHERE id = $1`,
		id,
	)
	saved, err := scanSavedSet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &StorageError{Op: "get", Message: fmt.Sprintf("failed to get set %s", id), Cause: err}
	}
	return saved, nil
}

// List returns the most recent sets, newest first
func (s *PostgresStore) List(ctx context.Context, limit int) ([]types.SavedSet, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, profile, recommendations, created_at FROM recommendation_sets
		 ORDER BY created_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, &StorageError{Op: "list", Message: "failed to query sets", Cause: err}
	}
	defer rows.Close()

	var sets []types.SavedSet
	for rows.Next() {
		saved, err := scanSavedSet(rows)
		if err != nil {
			return nil, &StorageError{Op: "list", Message: "failed to scan set", Cause: err}
		}
		sets = append(sets, *saved)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Message: "failed to iterate sets", Cause: err}
	}
	return sets, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func scanSavedSet(row pgx.Row) (*types.SavedSet, error) {
	var (
		saved       types.SavedSet
		profileJSON []byte
		setJSON     []byte
	)
	if err := row.Scan(&saved.ID, &profileJSON, &setJSON, &saved.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profileJSON, &saved.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if err := json.Unmarshal(setJSON, &saved.Set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation set: %w", err)
	}
	return &saved, nil
}
