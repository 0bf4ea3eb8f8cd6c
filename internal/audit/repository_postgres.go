package audit

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	createLoadsTableQuery = `
		CREATE TABLE IF NOT EXISTS config_loads (
			load_id UUID PRIMARY KEY,
			environment TEXT NOT NULL,
			keys TEXT[] NOT NULL DEFAULT '{}',
			env_file TEXT,
			env_file_found BOOLEAN NOT NULL DEFAULT FALSE,
			loaded_at TIMESTAMPTZ NOT NULL
		)
	`
	insertLoadQuery = `
		INSERT INTO config_loads (load_id, environment, keys, env_file, env_file_found, loaded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	listLoadsQuery = `
		SELECT load_id, environment, keys, env_file, env_file_found, loaded_at
		FROM config_loads
		ORDER BY loaded_at DESC
		LIMIT $1
	`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the config_loads table when it is missing.
func (r *PostgresRepository) EnsureSchema() error {
	if _, err := r.db.Exec(createLoadsTableQuery); err != nil {
		return fmt.Errorf("create config_loads: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Save(rec LoadRecord) error {
	_, err := r.db.Exec(insertLoadQuery,
		rec.ID.String(),
		rec.Environment,
		pq.Array(rec.Keys),
		rec.EnvFile,
		rec.EnvFileFound,
		rec.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert config load %s: %w", rec.ID, err)
	}
	return nil
}

func (r *PostgresRepository) List(limit int) ([]LoadRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(listLoadsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list config loads: %w", err)
	}
	defer rows.Close()

	out := make([]LoadRecord, 0)
	for rows.Next() {
		var (
			id      string
			rec     LoadRecord
			keys    pq.StringArray
			envFile sql.NullString
		)
		if err := rows.Scan(&id, &rec.Environment, &keys, &envFile, &rec.EnvFileFound, &rec.LoadedAt); err != nil {
			return nil, fmt.Errorf("scan config load: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse load id %q: %w", id, err)
		}
		rec.ID = parsed
		rec.Keys = []string(keys)
		if envFile.Valid {
			rec.EnvFile = envFile.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
