package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storytasks/internal/errs"
	"storytasks/internal/models"
)

const taskColumns = `id, story_id, name, status, created_at, updated_at`

// TaskRepo implements TaskRepository on SQLite.
type TaskRepo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

var _ TaskRepository = (*TaskRepo)(nil)

// errBadStatus marks a row whose stored status does not map to models.Status.
var errBadStatus = errors.New("corrupt task status")

func scanTask(row scanner) (*models.Task, error) {
	var (
		task      models.Task
		status    string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&task.ID, &task.StoryID, &task.Name, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: task %s: %w", errBadStatus, task.ID, err)
	}
	task.Status = parsed
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	return &task, nil
}

// Fetch retrieves a task by ID.
func (r *TaskRepo) Fetch(ctx context.Context, id string) (*models.Task, error) {
	r.logger.DebugContext(ctx, "fetch task", "id", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFound("task not found: %s", id)
		}
		return nil, internalError(ctx, r.logger, "fetch task", err, "id", id)
	}

	return task, nil
}

// ListByStory returns the tasks of a story in creation order.
func (r *TaskRepo) ListByStory(ctx context.Context, storyID string, filter TaskFilter) ([]models.Task, error) {
	r.logger.DebugContext(ctx, "list tasks", "story_id", storyID)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE story_id = ?`
	args := []any{storyID}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, filter.Status.String())
	}
	query += ` ORDER BY created_at, rowid LIMIT ?`
	args = append(args, MaxTasksPerStory)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internalError(ctx, r.logger, "list tasks", err, "story_id", storyID)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, internalError(ctx, r.logger, "scan task", err, "story_id", storyID)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, internalError(ctx, r.logger, "list tasks", err, "story_id", storyID)
	}

	return tasks, nil
}

// Create inserts a new task under storyID and returns the stored row.
func (r *TaskRepo) Create(ctx context.Context, storyID, name string, status models.Status) (*models.Task, error) {
	r.logger.DebugContext(ctx, "create task", "story_id", storyID, "name", name, "status", status)

	now := toMillis(r.now())
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (id, story_id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+taskColumns,
		r.newID(), storyID, name, status.String(), now, now,
	)
	task, err := scanTask(row)
	if err != nil {
		return nil, internalError(ctx, r.logger, "create task", err, "story_id", storyID)
	}

	return task, nil
}

// Update overwrites name and status. Callers are expected to fetch first;
// a missing row surfaces as NotFound.
func (r *TaskRepo) Update(ctx context.Context, id, name string, status models.Status) (*models.Task, error) {
	r.logger.DebugContext(ctx, "update task", "id", id, "name", name, "status", status)

	row := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET name = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+taskColumns,
		name, status.String(), toMillis(r.now()), id,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFound("task not found: %s", id)
		}
		return nil, internalError(ctx, r.logger, "update task", err, "id", id)
	}

	return task, nil
}

// Delete removes a single task and returns the number of rows deleted.
func (r *TaskRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.logger.DebugContext(ctx, "delete task", "id", id)

	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, internalError(ctx, r.logger, "delete task", err, "id", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, internalError(ctx, r.logger, "delete task", err, "id", id)
	}

	return rows, nil
}

// Exists is best effort: store errors are logged and reported as false.
func (r *TaskRepo) Exists(ctx context.Context, id string) bool {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		r.logger.DebugContext(ctx, "task exists check failed", "id", id, "error", err)
		return false
	}
	return exists
}
