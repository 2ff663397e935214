package migrate

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedded embed.FS

// ledgerLockKey serializes concurrent migrators on the same database.
const ledgerLockKey int64 = 8_117_119_001

var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Migration is one NNN_name.sql file.
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

type MigrationStatus struct {
	Version   int        `json:"version"`
	Name      string     `json:"name"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

type ledgerRow struct {
	Version   int       `db:"version"`
	Name      string    `db:"name"`
	Checksum  string    `db:"checksum"`
	AppliedAt time.Time `db:"applied_at"`
}

type Migrator struct {
	db     *sqlx.DB
	files  fs.FS
	logger zerolog.Logger
}

// Embedded returns the migrations compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

func NewMigrator(db *sqlx.DB, files fs.FS, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		files:  files,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// LoadMigrations reads the .sql files at the root of files ordered by version.
// Files without a numeric prefix are skipped; a repeated version is an error.
func LoadMigrations(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	seen := make(map[int]string)
	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, name)
		}
		seen[version] = name

		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			SQL:      string(content),
			Checksum: Checksum(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (m *Migrator) EnsureLedger(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			checksum CHAR(64) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) appliedRows(ctx context.Context) (map[int]ledgerRow, error) {
	var rows []ledgerRow
	query := `SELECT version, name, checksum, applied_at FROM schema_migrations ORDER BY version`
	if err := m.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}

	applied := make(map[int]ledgerRow, len(rows))
	for _, row := range rows {
		applied[row.Version] = row
	}
	return applied, nil
}

// Up applies every pending migration and returns how many ran. Nothing runs
// if an applied migration no longer matches its file.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.EnsureLedger(ctx); err != nil {
		return 0, err
	}

	migrations, err := LoadMigrations(m.files)
	if err != nil {
		return 0, err
	}

	applied, err := m.appliedRows(ctx)
	if err != nil {
		return 0, err
	}

	for _, mig := range migrations {
		row, ok := applied[mig.Version]
		if ok && strings.TrimSpace(row.Checksum) != mig.Checksum {
			return 0, fmt.Errorf("%w: version %d (%s)", ErrChecksumMismatch, mig.Version, mig.Name)
		}
	}

	count := 0
	for _, mig := range migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}

		ran, err := m.apply(ctx, mig)
		if err != nil {
			return count, fmt.Errorf("apply migration %d (%s): %w", mig.Version, mig.Name, err)
		}
		if ran {
			m.logger.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("applied migration")
			count++
		}
	}
	return count, nil
}

// apply runs one migration and its ledger row in a single transaction. It
// reports false when another migrator applied the version first.
func (m *Migrator) apply(ctx context.Context, mig Migration) (applied bool, err error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil || !applied {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return false, fmt.Errorf("acquire migration lock: %w", err)
	}

	var exists bool
	err = tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, mig.Version)
	if err != nil {
		return false, fmt.Errorf("check ledger: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err = tx.ExecContext(ctx, mig.SQL); err != nil {
		return false, fmt.Errorf("execute SQL: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		mig.Version, mig.Name, mig.Checksum,
	)
	if err != nil {
		return false, fmt.Errorf("record migration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// Status lists every known migration. Ledger rows whose file is gone are
// reported as applied so drift stays visible.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.EnsureLedger(ctx); err != nil {
		return nil, err
	}

	migrations, err := LoadMigrations(m.files)
	if err != nil {
		return nil, err
	}

	applied, err := m.appliedRows(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, mig := range migrations {
		st := MigrationStatus{Version: mig.Version, Name: mig.Name}
		if row, ok := applied[mig.Version]; ok {
			at := row.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
			delete(applied, mig.Version)
		}
		statuses = append(statuses, st)
	}

	for _, row := range applied {
		at := row.AppliedAt
		statuses = append(statuses, MigrationStatus{
			Version:   row.Version,
			Name:      row.Name,
			Applied:   true,
			AppliedAt: &at,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Version < statuses[j].Version
	})
	return statuses, nil
}
