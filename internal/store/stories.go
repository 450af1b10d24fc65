package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"storytasks/internal/errs"
	"storytasks/internal/models"
)

const storyColumns = `seqno, id, name, created_at, updated_at`

// StoryRepo implements StoryRepository on SQLite.
type StoryRepo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	// afterTaskDelete runs inside the Delete transaction between its two
	// statements. Tests only.
	afterTaskDelete func()
}

var _ StoryRepository = (*StoryRepo)(nil)

func scanStory(row scanner) (*models.Story, error) {
	var (
		story     models.Story
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&story.Seqno, &story.ID, &story.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	story.CreatedAt = fromMillis(createdAt)
	story.UpdatedAt = fromMillis(updatedAt)
	return &story, nil
}

// Fetch retrieves a story by ID.
func (r *StoryRepo) Fetch(ctx context.Context, id string) (*models.Story, error) {
	r.logger.DebugContext(ctx, "fetch story", "id", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = ?`, id)
	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFound("story not found: %s", id)
		}
		return nil, internalError(ctx, r.logger, "fetch story", err, "id", id)
	}

	return story, nil
}

// List returns up to pageSize stories with seqno <= cursor, newest first.
func (r *StoryRepo) List(ctx context.Context, cursor int64, pageSize int) ([]models.Story, error) {
	r.logger.DebugContext(ctx, "list stories", "cursor", cursor, "page_size", pageSize)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+storyColumns+`
		FROM stories
		WHERE seqno <= ?
		ORDER BY seqno DESC
		LIMIT ?
	`, cursor, pageSize)
	if err != nil {
		return nil, internalError(ctx, r.logger, "list stories", err, "cursor", cursor)
	}
	defer rows.Close()

	stories := make([]models.Story, 0, pageSize)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, internalError(ctx, r.logger, "scan story", err)
		}
		stories = append(stories, *story)
	}

	if err := rows.Err(); err != nil {
		return nil, internalError(ctx, r.logger, "list stories", err, "cursor", cursor)
	}

	return stories, nil
}

// Create inserts a new story and returns the stored row.
func (r *StoryRepo) Create(ctx context.Context, name string) (*models.Story, error) {
	r.logger.DebugContext(ctx, "create story", "name", name)

	now := toMillis(r.now())
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO stories (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING `+storyColumns,
		r.newID(), name, now, now,
	)
	story, err := scanStory(row)
	if err != nil {
		return nil, internalError(ctx, r.logger, "create story", err, "name", name)
	}

	return story, nil
}

// Update overwrites the story name. Callers are expected to fetch first;
// a missing row surfaces as NotFound.
func (r *StoryRepo) Update(ctx context.Context, id string, name string) (*models.Story, error) {
	r.logger.DebugContext(ctx, "update story", "id", id, "name", name)

	row := r.db.QueryRowContext(ctx, `
		UPDATE stories
		SET name = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+storyColumns,
		name, toMillis(r.now()), id,
	)
	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFound("story not found: %s", id)
		}
		return nil, internalError(ctx, r.logger, "update story", err, "id", id)
	}

	return story, nil
}

// Delete removes a story and all of its tasks in one transaction and
// returns the number of story rows deleted.
func (r *StoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.logger.DebugContext(ctx, "delete story", "id", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, internalError(ctx, r.logger, "begin delete story", err, "id", id)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE story_id = ?`, id); err != nil {
		return 0, internalError(ctx, r.logger, "delete story tasks", err, "id", id)
	}
	if r.afterTaskDelete != nil {
		r.afterTaskDelete()
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return 0, internalError(ctx, r.logger, "delete story", err, "id", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, internalError(ctx, r.logger, "delete story", err, "id", id)
	}

	if err := tx.Commit(); err != nil {
		return 0, internalError(ctx, r.logger, "commit delete story", err, "id", id)
	}

	return rows, nil
}

// Exists is best effort: store errors are logged and reported as false.
func (r *StoryRepo) Exists(ctx context.Context, id string) bool {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM stories WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		r.logger.DebugContext(ctx, "story exists check failed", "id", id, "error", err)
		return false
	}
	return exists
}
