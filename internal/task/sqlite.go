package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS task (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'UNDEFINED',
	user_id     INTEGER
)`

// SQLiteRepository implements Repository on an SQLite database file
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at path
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// a single connection keeps writes serialized and :memory: databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Save inserts or updates t
func (r *SQLiteRepository) Save(ctx context.Context, t *Task) error {
	if t.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO task (title, description, status, user_id) VALUES (?, ?, ?, ?)`,
			t.Title, t.Description, string(t.EffectiveStatus()), nullableID(t.UserID))
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted id: %w", err)
		}
		t.ID = id
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE task SET title = ?, description = ?, status = ?, user_id = ? WHERE id = ?`,
		t.Title, t.Description, string(t.EffectiveStatus()), nullableID(t.UserID), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", t.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w with id %d", ErrTaskNotFound, t.ID)
	}
	return nil
}

// FindByID loads one task
func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, status, user_id FROM task WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w with id %d", ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task %d: %w", id, err)
	}
	return t, nil
}

// ExistsByID reports whether a task with id is stored
func (r *SQLiteRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM task WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check task %d: %w", id, err)
	}
	return n > 0, nil
}

// DeleteByID removes a task; deleting a missing task is not an error
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

// FindAll returns every task ordered by ID
func (r *SQLiteRepository) FindAll(ctx context.Context) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, status, user_id FROM task ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*Task, error) {
	var t Task
	var status string
	var userID sql.NullInt64
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &status, &userID); err != nil {
		return nil, err
	}
	t.Status = Status(status)
	if userID.Valid {
		id := userID.Int64
		t.UserID = &id
	}
	return &t, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
