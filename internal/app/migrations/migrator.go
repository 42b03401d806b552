package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/db"
)

//go:embed sql/*.sql
var embedded embed.FS

// Store is what the migrator needs from the pool
type Store interface {
	db.DBTX
	db.TxBeginner
}

// Migrator manages database migrations
type Migrator struct {
	db     Store
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a migrator over the embedded SQL files
func NewMigrator(store Store, logger zerolog.Logger) *Migrator {
	sub, _ := fs.Sub(embedded, "sql")
	return NewMigratorFS(store, sub, logger)
}

// NewMigratorFS creates a migrator reading *.sql from the root of files
func NewMigratorFS(store Store, files fs.FS, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     store,
		files:  files,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := m.db.Exec(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	err := m.db.QueryRow(ctx, query, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Files lists the migration files in the order they are applied
func (m *Migrator) Files() ([]string, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)
	return sqlFiles, nil
}

// versionOf extracts the version from a file name ("001_init.sql" => "001")
func versionOf(filename string) string {
	return strings.SplitN(path.Base(filename), "_", 2)[0]
}

// Migrate applies every pending migration in lexical order, each in its own
// transaction together with its tracking row. It returns the versions it
// applied.
func (m *Migrator) Migrate(ctx context.Context) ([]string, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return nil, err
	}

	files, err := m.Files()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, file := range files {
		version := versionOf(file)

		done, err := m.isMigrationApplied(ctx, version)
		if err != nil {
			return applied, err
		}
		if done {
			m.logger.Debug().Str("file", file).Msg("Migration already applied, skipping")
			continue
		}

		content, err := fs.ReadFile(m.files, file)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		err = db.RunInTx(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("error occurred during SQL migration %s: %w", file, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
				version, time.Now()); err != nil {
				return fmt.Errorf("failed to record migration: %w", err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		m.logger.Info().Str("file", file).Msg("Migration applied")
		applied = append(applied, version)
	}

	return applied, nil
}
