package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/academlist/seller-portal/internal/domain"
)

// ErrNotFound is returned when no submission has the requested ID.
var ErrNotFound = errors.New("submission not found")

// schema mirrors db/migrations; it lets a fresh database work without
// running dbmate first.
const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	seller_name     TEXT    NOT NULL,
	seller_email    TEXT    NOT NULL,
	title           TEXT    NOT NULL,
	summary         TEXT    NOT NULL,
	terms_accepted  INTEGER NOT NULL DEFAULT 0,
	file_name       TEXT    NOT NULL,
	file_media_type TEXT    NOT NULL,
	file_size       INTEGER NOT NULL,
	created_at      DATETIME NOT NULL
)`

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database at dsn and ensures the submissions table.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) CreateSubmission(ctx context.Context, s *domain.Submission) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO submissions (
			seller_name, seller_email, title, summary, terms_accepted,
			file_name, file_media_type, file_size, created_at
		) VALUES (?,?,?,?,?,?,?,?,?)`,
		s.Fields.Name, s.Fields.Email, s.Fields.Title, s.Fields.Summary,
		boolToInt(s.Fields.TermsAccepted),
		s.File.Name, s.File.MediaType, s.File.Size,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	s.ID = id
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, id int64) (*domain.Submission, error) {
	s := &domain.Submission{}
	var terms int
	err := r.db.QueryRowContext(ctx, `
		SELECT id, seller_name, seller_email, title, summary, terms_accepted,
		       file_name, file_media_type, file_size, created_at
		FROM submissions WHERE id=?`, id).Scan(
		&s.ID, &s.Fields.Name, &s.Fields.Email, &s.Fields.Title, &s.Fields.Summary, &terms,
		&s.File.Name, &s.File.MediaType, &s.File.Size, &s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Fields.TermsAccepted = terms == 1
	return s, nil
}

// ListSubmissions returns every submission, newest first, without summaries.
func (r *Repository) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seller_name, seller_email, title, file_name, file_media_type, file_size, created_at
		FROM submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Submission
	for rows.Next() {
		var s domain.Submission
		if err := rows.Scan(&s.ID, &s.Fields.Name, &s.Fields.Email, &s.Fields.Title,
			&s.File.Name, &s.File.MediaType, &s.File.Size, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
