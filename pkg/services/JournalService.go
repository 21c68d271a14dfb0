package services

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/adampresley/flickralbums/pkg/models"
	_ "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
)

var (
	//go:embed sql-migrations
	sqlMigrationsFs embed.FS

	registerBinds sync.Once
)

type JournalServicer interface {
	StartRun(ctx context.Context, command, intent string, dryRun bool) (string, error)
	RecordResult(ctx context.Context, runID string, result models.OperationResult) error
	FinishRun(ctx context.Context, runID string, report models.ExecutionReport) error
	GetRun(ctx context.Context, runID string) (models.JournalRun, error)
	GetRunEntries(ctx context.Context, runID string) ([]models.JournalEntry, error)
}

type JournalServiceConfig struct {
	DB  *sqlz.DB
	Now func() time.Time
}

// JournalService records every run and the outcome of each operation it handled.
type JournalService struct {
	db  *sqlz.DB
	now func() time.Time
}

/*
OpenJournalDB connects to the sqlite database at dsn and applies the
embedded migrations.
*/
func OpenJournalDB(ctx context.Context, dsn string) (*sqlz.DB, error) {
	var (
		err error
		db  *sqlz.DB
	)

	registerBinds.Do(func() {
		binds.Register("sqlite", binds.BindByDriver("sqlite3"))
	})

	if db, err = sqlz.Connect("sqlite", dsn); err != nil {
		return nil, models.NewServiceError(models.KindSetup, dsn, fmt.Errorf("error connecting to journal database: %w", err))
	}

	if err = migrateJournal(ctx, db); err != nil {
		return nil, models.NewServiceError(models.KindSetup, dsn, err)
	}

	return db, nil
}

func migrateJournal(ctx context.Context, db *sqlz.DB) error {
	var (
		err  error
		dirs []fs.DirEntry
		b    []byte
	)

	if dirs, err = sqlMigrationsFs.ReadDir("sql-migrations"); err != nil {
		return fmt.Errorf("error reading migrations: %w", err)
	}

	for _, d := range dirs {
		if d.IsDir() || !strings.HasPrefix(d.Name(), "commit") {
			continue
		}

		if b, err = fs.ReadFile(sqlMigrationsFs, path.Join("sql-migrations", d.Name())); err != nil {
			return fmt.Errorf("error reading migration %s: %w", d.Name(), err)
		}

		if err = runSqlScript(ctx, db, b); err != nil && !isIgnorableError(err) {
			return fmt.Errorf("error running migration %s: %w", d.Name(), err)
		}
	}

	return nil
}

func runSqlScript(ctx context.Context, db *sqlz.DB, script []byte) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(script))
	return err
}

func isIgnorableError(err error) bool {
	return strings.Contains(err.Error(), "duplicate column")
}

func NewJournalService(config JournalServiceConfig) JournalService {
	now := config.Now

	if now == nil {
		now = time.Now
	}

	return JournalService{
		db:  config.DB,
		now: now,
	}
}

func (s JournalService) StartRun(ctx context.Context, command, intent string, dryRun bool) (string, error) {
	var (
		err error
	)

	runID := uuid.NewString()

	sql := `
INSERT INTO runs (
   id
   , command
   , intent
   , dry_run
   , started_at
) VALUES (?, ?, ?, ?, ?)
`

	params := []any{runID, command, intent, dryRun, s.timestamp()}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return "", fmt.Errorf("error starting journal run for %s: %w", command, err)
	}

	return runID, nil
}

func (s JournalService) RecordResult(ctx context.Context, runID string, result models.OperationResult) error {
	var (
		err error
	)

	errorMessage := ""

	if result.Err != nil {
		errorMessage = result.Err.Error()
	}

	op := result.Resolved

	if op.Kind == "" {
		op = result.Operation
	}

	sql := `
INSERT INTO run_entries (
   run_id
   , position
   , kind
   , album_id
   , photo_id
   , title
   , local_path
   , outcome
   , produced_id
   , attempts
   , error_message
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

	params := []any{
		runID,
		result.Index,
		string(op.Kind),
		op.AlbumID,
		op.PhotoID,
		op.Title,
		op.LocalPath,
		string(result.Outcome),
		result.ProducedID,
		result.Attempts,
		errorMessage,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("error recording operation %d of run %s: %w", result.Index, runID, err)
	}

	return nil
}

func (s JournalService) FinishRun(ctx context.Context, runID string, report models.ExecutionReport) error {
	var (
		err error
	)

	sql := `
UPDATE runs SET
   finished_at=?
   , succeeded=?
   , already_satisfied=?
   , failed=?
   , previewed=?
WHERE id=?
`

	params := []any{
		s.timestamp(),
		report.Succeeded,
		report.AlreadySatisfied,
		report.Failed,
		report.Previewed,
		runID,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("error finishing journal run %s: %w", runID, err)
	}

	return nil
}

func (s JournalService) GetRun(ctx context.Context, runID string) (models.JournalRun, error) {
	var (
		err error
	)

	result := models.JournalRun{}

	sql := `
SELECT
   r.id
   , r.command
   , r.intent
   , r.dry_run
   , r.started_at
   , r.finished_at
   , r.succeeded
   , r.already_satisfied
   , r.failed
   , r.previewed
FROM runs AS r
WHERE 1=1
   AND r.id=?
`

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, &result, sql, runID); err != nil {
		return result, fmt.Errorf("error querying for journal run %s: %w", runID, err)
	}

	return result, nil
}

func (s JournalService) GetRunEntries(ctx context.Context, runID string) ([]models.JournalEntry, error) {
	var (
		err error
	)

	result := []models.JournalEntry{}

	sql := `
SELECT
   e.run_id
   , e.position
   , e.kind
   , e.album_id
   , e.photo_id
   , e.title
   , e.local_path
   , e.outcome
   , e.produced_id
   , e.attempts
   , e.error_message
FROM run_entries AS e
WHERE 1=1
   AND e.run_id=?
ORDER BY e.position
`

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, runID); err != nil {
		return result, fmt.Errorf("error querying for entries of journal run %s: %w", runID, err)
	}

	return result, nil
}

func (s JournalService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
