package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"roteiro/internal/models"
)

// ErrTaskNotFound is returned when no task has the requested id.
var ErrTaskNotFound = errors.New("task not found")

// Store wraps access to the SQLite database and exposes high level helpers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL,
            completed INTEGER NOT NULL DEFAULT 0,
            task_type INTEGER NULL DEFAULT 0,
            due_date TEXT NULL,
            due_days INTEGER NOT NULL DEFAULT 0,
            priority_level INTEGER NULL,
            category TEXT NULL,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);`,
		`CREATE TRIGGER IF NOT EXISTS trg_tasks_updated
            AFTER UPDATE ON tasks
            FOR EACH ROW BEGIN
                UPDATE tasks SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
            END;`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const taskColumns = `id, name, description, completed, task_type, due_date, due_days, priority_level, category, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanTask(row rowScanner) (models.Task, error) {
	var (
		t        models.Task
		taskType sql.NullInt64
		dueDate  sql.NullString
		priority sql.NullInt64
		category sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Completed, &taskType, &dueDate, &t.DueDays, &priority, &category, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Task{}, err
	}

	if taskType.Valid {
		tt, err := models.TaskTypeFromOrdinal(taskType.Int64)
		if err != nil {
			// Keep the raw value: Status reports it as an invalid type.
			s.logger.Warn("stored task has unknown type", slog.Int64("id", t.ID), slog.String("error", err.Error()))
		}
		t.TaskType = tt
	}
	if dueDate.Valid && dueDate.String != "" {
		d, err := models.ParseDate(dueDate.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
		}
		t.DueDate = &d
	}
	if priority.Valid {
		p := int(priority.Int64)
		t.PriorityLevel = &p
	}
	if category.Valid {
		c := category.String
		t.Category = &c
	}
	return t, nil
}

// taskArgs returns the column values for name through category.
func taskArgs(t models.Task) []any {
	var dueDate, priority, category any
	if t.DueDate != nil {
		dueDate = models.FormatDate(*t.DueDate)
	}
	if t.PriorityLevel != nil {
		priority = int64(*t.PriorityLevel)
	}
	if t.Category != nil {
		category = *t.Category
	}
	return []any{t.Name, t.Description, t.Completed, t.TaskType.Ordinal(), dueDate, t.DueDays, priority, category}
}

// ListTasks returns tasks matching the filter ordered by priority rank, unranked last.
func (s *Store) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var (
		where []string
		args  []any
	)
	if filter.Completed != nil {
		where = append(where, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.TaskType != nil {
		if *filter.TaskType == models.TaskTypeData {
			where = append(where, "(task_type = ? OR task_type IS NULL)")
		} else {
			where = append(where, "task_type = ?")
		}
		args = append(args, filter.TaskType.Ordinal())
	}
	if filter.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *filter.Category)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY priority_level IS NULL, priority_level, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := s.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask inserts a new task and returns it with its assigned id.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(name, description, completed, task_type, due_date, due_days, priority_level, category)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`, taskArgs(t)...)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := s.scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask overwrites every editable field of the task with t.ID.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	args := append(taskArgs(t), t.ID)
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET name = ?, description = ?, completed = ?, task_type = ?, due_date = ?,
        due_days = ?, priority_level = ?, category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, args...)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return s.GetTask(ctx, t.ID)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ListCategories returns every non-empty category with its task count.
func (s *Store) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM tasks
        WHERE category IS NOT NULL AND category <> '' GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CategorySummary{}
	for rows.Next() {
		var c models.CategorySummary
		if err := rows.Scan(&c.Name, &c.Tasks); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
