// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/talentdesk/internal/dbx"
	"github.com/dmitrijs2005/talentdesk/internal/server/migrations"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/interactions"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/referentes"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/talents"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Talents returns a talents.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Talents(db dbx.DBTX) talents.Repository {
	return talents.NewPostgresRepository(db)
}

// Referentes returns a referentes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Referentes(db dbx.DBTX) referentes.Repository {
	return referentes.NewPostgresRepository(db)
}

// Interactions returns an interactions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Interactions(db dbx.DBTX) interactions.Repository {
	return interactions.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// OpenDB opens a pgx-backed *sql.DB and verifies connectivity.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
