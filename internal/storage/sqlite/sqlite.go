package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// SaveSession stores the session, replacing any previous one.
func (r *Repository) SaveSession(ctx context.Context, s model.Session) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	query := `
		INSERT INTO sessions (id, username, server_url, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			server_url = excluded.server_url,
			created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, query, s.Username, s.ServerURL, s.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}

	r.logger.Debugf("Saved session for %s", s.Username)
	return nil
}

// GetSession retrieves the stored session.
func (r *Repository) GetSession(ctx context.Context) (*model.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT username, server_url, created_at FROM sessions WHERE id = 1`)

	var s model.Session
	var createdAt int64
	err := row.Scan(&s.Username, &s.ServerURL, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query session: %w", err)
	}
	s.CreatedAt = timeFromUnix(createdAt)

	return &s, nil
}

// DeleteSession deletes the stored session. Deleting a missing session is
// not an error, logout must be idempotent.
func (r *Repository) DeleteSession(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	r.logger.Debugf("Deleted session")
	return nil
}

// ReplaceCourses swaps the cached course list wholesale.
func (r *Repository) ReplaceCourses(ctx context.Context, courses []model.Course) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("could not clear course cache: %w", err)
	}

	query := `
		INSERT INTO courses (id, title, author, thumbnail, duration, video_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, c := range courses {
		_, err := tx.ExecContext(ctx, query, c.ID, c.Title, c.Author, c.Thumbnail, c.Duration, c.VideoURL, c.CreatedAt.Unix())
		if err != nil {
			return fmt.Errorf("could not insert course %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Cached %d courses", len(courses))
	return nil
}

// ListCourses returns the cached course list, most recent first.
func (r *Repository) ListCourses(ctx context.Context) ([]model.Course, error) {
	query := `
		SELECT id, title, author, thumbnail, duration, video_url, created_at
		FROM courses
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Title, &c.Author, &c.Thumbnail, &c.Duration, &c.VideoURL, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		c.CreatedAt = timeFromUnix(createdAt)
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// EnqueueBreakpoint stores a captured breakpoint in the delivery queue.
func (r *Repository) EnqueueBreakpoint(ctx context.Context, bp model.QueuedBreakpoint) error {
	if err := bp.Validate(); err != nil {
		return fmt.Errorf("invalid breakpoint: %w", err)
	}

	query := `
		INSERT INTO breakpoints (id, workspace_id, start_time, end_time, text, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		bp.ID,
		bp.WorkspaceID,
		bp.Breakpoint.StartTime,
		bp.Breakpoint.EndTime,
		bp.Breakpoint.Text,
		bp.Breakpoint.Description,
		bp.Status,
		bp.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: breakpoints.") {
			return fmt.Errorf("breakpoint already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert breakpoint: %w", err)
	}

	r.logger.Debugf("Enqueued breakpoint %s", bp.ID)
	return nil
}

// ListPendingBreakpoints returns undelivered breakpoints, oldest first.
func (r *Repository) ListPendingBreakpoints(ctx context.Context) ([]model.QueuedBreakpoint, error) {
	query := selectBreakpoints + ` WHERE status = ? ORDER BY created_at ASC`
	return r.queryBreakpoints(ctx, query, model.QueuedBreakpointStatusPending)
}

// ListWorkspaceBreakpoints returns all breakpoints captured for a workspace.
func (r *Repository) ListWorkspaceBreakpoints(ctx context.Context, workspaceID string) ([]model.QueuedBreakpoint, error) {
	query := selectBreakpoints + ` WHERE workspace_id = ? ORDER BY start_time ASC`
	return r.queryBreakpoints(ctx, query, workspaceID)
}

// MarkBreakpointSent flips a queued breakpoint to sent.
func (r *Repository) MarkBreakpointSent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE breakpoints SET status = ? WHERE id = ?`, model.QueuedBreakpointStatusSent, id)
	if err != nil {
		return fmt.Errorf("could not update breakpoint: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("breakpoint %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Marked breakpoint sent: %s", id)
	return nil
}

const selectBreakpoints = `
	SELECT id, workspace_id, start_time, end_time, text, description, status, created_at
	FROM breakpoints
`

func (r *Repository) queryBreakpoints(ctx context.Context, query string, args ...any) ([]model.QueuedBreakpoint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query breakpoints: %w", err)
	}
	defer rows.Close()

	var bps []model.QueuedBreakpoint
	for rows.Next() {
		var bp model.QueuedBreakpoint
		var createdAt int64
		err := rows.Scan(
			&bp.ID,
			&bp.WorkspaceID,
			&bp.Breakpoint.StartTime,
			&bp.Breakpoint.EndTime,
			&bp.Breakpoint.Text,
			&bp.Breakpoint.Description,
			&bp.Status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		bp.CreatedAt = timeFromUnix(createdAt)
		bps = append(bps, bp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bps, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
