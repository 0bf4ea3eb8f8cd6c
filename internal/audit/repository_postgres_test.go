package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestPostgresSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rec := LoadRecord{
		ID:           uuid.New(),
		Environment:  "production",
		Keys:         []string{"DB_NAME", "WP_HOME"},
		EnvFile:      ".env",
		EnvFileFound: true,
		LoadedAt:     time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec("INSERT INTO config_loads").
		WithArgs(rec.ID.String(), "production", pq.Array(rec.Keys), ".env", true, rec.LoadedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSave_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO config_loads").WillReturnError(errors.New("connection refused"))

	if err := repo.Save(LoadRecord{ID: uuid.New()}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := uuid.New()
	loaded := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"load_id", "environment", "keys", "env_file", "env_file_found", "loaded_at"}).
		AddRow(id.String(), "development", "{DB_NAME,SAVEQUERIES}", nil, false, loaded)
	mock.ExpectQuery("FROM config_loads").WithArgs(10).WillReturnRows(rows)

	recs, err := repo.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	got := recs[0]
	if got.ID != id || got.Environment != "development" || got.EnvFile != "" || !got.LoadedAt.Equal(loaded) {
		t.Fatalf("unexpected record %+v", got)
	}
	if len(got.Keys) != 2 || got.Keys[1] != "SAVEQUERIES" {
		t.Fatalf("unexpected keys %v", got.Keys)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresList_DefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM config_loads").WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"load_id", "environment", "keys", "env_file", "env_file_found", "loaded_at"}))

	recs, err := repo.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS config_loads").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := NewPostgresRepository(db).EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
}
