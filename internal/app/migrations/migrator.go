package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Files holds the SQL migrations shipped with the binary
//
//go:embed sql/*.sql
var Files embed.FS

// Migrator manages database migrations
type Migrator struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:  db,
		log: lgr,
	}
}

// migrationFile is one SQL file and the version derived from its name
type migrationFile struct {
	Version string
	Path    string
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Migrate applies the embedded migrations
func (m *Migrator) Migrate(ctx context.Context) error {
	return m.MigrateFS(ctx, Files)
}

// MigrateFS applies every pending *.sql file of fsys in version order.
// Each file runs in its own transaction together with its bookkeeping row.
func (m *Migrator) MigrateFS(ctx context.Context, fsys fs.FS) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	files, err := collectMigrations(fsys)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := m.apply(ctx, fsys, file); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, fsys fs.FS, file migrationFile) error {
	applied, err := m.isMigrationApplied(ctx, file.Version)
	if err != nil {
		return err
	}
	if applied {
		m.log.Debug().Str("file", file.Path).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, file.Path)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file.Path, err)
	}

	err = pgx.BeginFunc(ctx, m.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration execution: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, file.Version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migration %s: %w", file.Path, err)
	}

	m.log.Info().Str("file", file.Path).Str("version", file.Version).Msg("Migration applied")
	return nil
}

// collectMigrations finds *.sql files anywhere in fsys, sorted by file name.
// The version is the file name prefix before the first underscore
// ("001_create_graduates.sql" => "001").
func collectMigrations(fsys fs.FS) ([]migrationFile, error) {
	var files []migrationFile
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}

		version := strings.SplitN(d.Name(), "_", 2)[0]
		if prev, dup := seen[version]; dup {
			return fmt.Errorf("duplicate migration version %s: %s and %s", version, prev, p)
		}
		seen[version] = p
		files = append(files, migrationFile{Version: version, Path: p})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return path.Base(files[i].Path) < path.Base(files[j].Path)
	})
	return files, nil
}
