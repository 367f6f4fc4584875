// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
	"github.com/alfredjeanlab/jobly/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewWithDB wraps an already-open database without running migrations.
func NewWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Ping verifies the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateCompany(ctx context.Context, c *model.Company) (*model.Company, error) {
	return queryCreateCompany(ctx, s.db, c)
}

func (s *PostgresStore) ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error) {
	return queryListCompanies(ctx, s.db, filter)
}

func (s *PostgresStore) GetCompany(ctx context.Context, handle string) (*model.Company, error) {
	return queryGetCompany(ctx, s.db, handle)
}

func (s *PostgresStore) UpdateCompany(ctx context.Context, handle string, patch sqlbuild.Payload) (*model.Company, error) {
	return queryUpdateCompany(ctx, s.db, handle, patch)
}

func (s *PostgresStore) DeleteCompany(ctx context.Context, handle string) error {
	return queryDeleteCompany(ctx, s.db, handle)
}

func (s *PostgresStore) ListCompanyJobs(ctx context.Context, handle string) ([]*model.Job, error) {
	return queryListCompanyJobs(ctx, s.db, handle)
}

func (s *PostgresStore) CreateJob(ctx context.Context, j *model.Job) (*model.Job, error) {
	return queryCreateJob(ctx, s.db, j)
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	return queryListJobs(ctx, s.db, filter)
}

func (s *PostgresStore) GetJob(ctx context.Context, title string) (*model.Job, error) {
	return queryGetJob(ctx, s.db, title)
}

func (s *PostgresStore) UpdateJob(ctx context.Context, title string, patch sqlbuild.Payload) (*model.Job, error) {
	return queryUpdateJob(ctx, s.db, title, patch)
}

func (s *PostgresStore) DeleteJob(ctx context.Context, title string) error {
	return queryDeleteJob(ctx, s.db, title)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateCompany(ctx context.Context, c *model.Company) (*model.Company, error) {
	return queryCreateCompany(ctx, s.tx, c)
}

func (s *txStore) ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error) {
	return queryListCompanies(ctx, s.tx, filter)
}

func (s *txStore) GetCompany(ctx context.Context, handle string) (*model.Company, error) {
	return queryGetCompany(ctx, s.tx, handle)
}

func (s *txStore) UpdateCompany(ctx context.Context, handle string, patch sqlbuild.Payload) (*model.Company, error) {
	return queryUpdateCompany(ctx, s.tx, handle, patch)
}

func (s *txStore) DeleteCompany(ctx context.Context, handle string) error {
	return queryDeleteCompany(ctx, s.tx, handle)
}

func (s *txStore) ListCompanyJobs(ctx context.Context, handle string) ([]*model.Job, error) {
	return queryListCompanyJobs(ctx, s.tx, handle)
}

func (s *txStore) CreateJob(ctx context.Context, j *model.Job) (*model.Job, error) {
	return queryCreateJob(ctx, s.tx, j)
}

func (s *txStore) ListJobs(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	return queryListJobs(ctx, s.tx, filter)
}

func (s *txStore) GetJob(ctx context.Context, title string) (*model.Job, error) {
	return queryGetJob(ctx, s.tx, title)
}

func (s *txStore) UpdateJob(ctx context.Context, title string, patch sqlbuild.Payload) (*model.Job, error) {
	return queryUpdateJob(ctx, s.tx, title, patch)
}

func (s *txStore) DeleteJob(ctx context.Context, title string) error {
	return queryDeleteJob(ctx, s.tx, title)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Ping is a no-op inside a transaction; the connection is already in use.
func (s *txStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
