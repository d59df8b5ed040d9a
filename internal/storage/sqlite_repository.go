package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, date, start_time, repeat, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Notes, in.Date, nullString(in.StartTime), in.Repeat,
		boolInt(in.Completed), mustTime(in.CreatedAt),
	)
	if err != nil {
		return err
	}
	if err := insertCompletedDays(ctx, tx, in.ID, in.CompletedDays); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, notes, date, start_time, repeat, completed, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	days, err := r.ListCompletedDays(ctx, id)
	if err != nil {
		return Task{}, err
	}
	task.CompletedDays = days
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, notes = ?, date = ?, start_time = ?, repeat = ?, completed = ?
		WHERE id = ?`,
		in.Title, in.Notes, in.Date, nullString(in.StartTime), in.Repeat,
		boolInt(in.Completed), in.ID,
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM completed_days WHERE task_id = ?`, in.ID); err != nil {
		return err
	}
	if err := insertCompletedDays(ctx, tx, in.ID, in.CompletedDays); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, notes, date, start_time, repeat, completed, created_at FROM tasks`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Repeat != "" {
		clauses = append(clauses, "repeat = ?")
		args = append(args, filter.Repeat)
	}
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		days, daysErr := r.ListCompletedDays(ctx, out[i].ID)
		if daysErr != nil {
			return nil, daysErr
		}
		out[i].CompletedDays = days
	}
	return out, nil
}

func (r *SQLiteRepository) AddCompletedDay(ctx context.Context, taskID, ymd string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO completed_days (task_id, day) VALUES (?, ?)`, taskID, ymd)
	return err
}

func (r *SQLiteRepository) ListCompletedDays(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day FROM completed_days WHERE task_id = ? ORDER BY day ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, rows.Err()
}

func insertCompletedDays(ctx context.Context, tx *sql.Tx, taskID string, days []string) error {
	for _, day := range days {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO completed_days (task_id, day) VALUES (?, ?)`, taskID, day); err != nil {
			return err
		}
	}
	return nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var start sql.NullString
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Notes, &out.Date, &start, &out.Repeat, &completed, &created); err != nil {
		return Task{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Task{}, err
	}
	if start.Valid {
		out.StartTime = start.String
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
