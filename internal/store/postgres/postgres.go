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

	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/store"
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

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateIssue(ctx context.Context, issue *model.Issue) error {
	return queryCreateIssue(ctx, s.db, issue)
}

func (s *PostgresStore) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	return queryGetIssue(ctx, s.db, id)
}

func (s *PostgresStore) ListIssues(ctx context.Context, workspaceID string, filter model.IssueFilter) ([]*model.Issue, int, error) {
	return queryListIssues(ctx, s.db, workspaceID, filter)
}

func (s *PostgresStore) UpdateIssue(ctx context.Context, issue *model.Issue) error {
	return queryUpdateIssue(ctx, s.db, issue)
}

func (s *PostgresStore) DeleteIssue(ctx context.Context, id string) error {
	return queryDeleteIssue(ctx, s.db, id)
}

func (s *PostgresStore) CreateSavedFilter(ctx context.Context, f *model.SavedFilter) error {
	return queryCreateSavedFilter(ctx, s.db, f)
}

func (s *PostgresStore) GetSavedFilter(ctx context.Context, id string) (*model.SavedFilter, error) {
	return queryGetSavedFilter(ctx, s.db, id)
}

func (s *PostgresStore) ListSavedFilters(ctx context.Context, workspaceID, userID string) ([]*model.SavedFilter, error) {
	return queryListSavedFilters(ctx, s.db, workspaceID, userID)
}

func (s *PostgresStore) GetDefaultSavedFilter(ctx context.Context, workspaceID, userID string) (*model.SavedFilter, error) {
	return queryGetDefaultSavedFilter(ctx, s.db, workspaceID, userID)
}

// SetDefaultSavedFilter flips the default flag inside a single transaction
// so there is never an observable moment with two defaults.
func (s *PostgresStore) SetDefaultSavedFilter(ctx context.Context, workspaceID, userID, filterID string) (*model.SavedFilter, error) {
	var updated *model.SavedFilter
	err := s.RunInTransaction(ctx, func(tx store.Store) error {
		f, err := tx.SetDefaultSavedFilter(ctx, workspaceID, userID, filterID)
		if err != nil {
			return err
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) DeleteSavedFilter(ctx context.Context, id string) error {
	return queryDeleteSavedFilter(ctx, s.db, id)
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

func (s *txStore) CreateIssue(ctx context.Context, issue *model.Issue) error {
	return queryCreateIssue(ctx, s.tx, issue)
}

func (s *txStore) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	return queryGetIssue(ctx, s.tx, id)
}

func (s *txStore) ListIssues(ctx context.Context, workspaceID string, filter model.IssueFilter) ([]*model.Issue, int, error) {
	return queryListIssues(ctx, s.tx, workspaceID, filter)
}

func (s *txStore) UpdateIssue(ctx context.Context, issue *model.Issue) error {
	return queryUpdateIssue(ctx, s.tx, issue)
}

func (s *txStore) DeleteIssue(ctx context.Context, id string) error {
	return queryDeleteIssue(ctx, s.tx, id)
}

func (s *txStore) CreateSavedFilter(ctx context.Context, f *model.SavedFilter) error {
	return queryCreateSavedFilter(ctx, s.tx, f)
}

func (s *txStore) GetSavedFilter(ctx context.Context, id string) (*model.SavedFilter, error) {
	return queryGetSavedFilter(ctx, s.tx, id)
}

func (s *txStore) ListSavedFilters(ctx context.Context, workspaceID, userID string) ([]*model.SavedFilter, error) {
	return queryListSavedFilters(ctx, s.tx, workspaceID, userID)
}

func (s *txStore) GetDefaultSavedFilter(ctx context.Context, workspaceID, userID string) (*model.SavedFilter, error) {
	return queryGetDefaultSavedFilter(ctx, s.tx, workspaceID, userID)
}

// SetDefaultSavedFilter on a txStore runs both updates on the enclosing
// transaction.
func (s *txStore) SetDefaultSavedFilter(ctx context.Context, workspaceID, userID, filterID string) (*model.SavedFilter, error) {
	if err := queryUnsetDefaultSavedFilter(ctx, s.tx, workspaceID, userID); err != nil {
		return nil, err
	}
	return queryMarkDefaultSavedFilter(ctx, s.tx, filterID)
}

func (s *txStore) DeleteSavedFilter(ctx context.Context, id string) error {
	return queryDeleteSavedFilter(ctx, s.tx, id)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
