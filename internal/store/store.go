package store

import (
	"context"

	"storytasks/internal/models"
)

// MaxTasksPerStory bounds the number of tasks returned for one story.
const MaxTasksPerStory = 1000

// TaskFilter narrows a story's task listing.
type TaskFilter struct {
	Status *models.Status
}

// StoryRepository defines persistence operations for stories.
//
// Every method is a single statement except Delete, which removes the
// story's tasks and the story in one transaction.
type StoryRepository interface {
	Fetch(ctx context.Context, id string) (*models.Story, error)
	List(ctx context.Context, cursor int64, pageSize int) ([]models.Story, error)
	Create(ctx context.Context, name string) (*models.Story, error)
	Update(ctx context.Context, id string, name string) (*models.Story, error)
	Delete(ctx context.Context, id string) (int64, error)
	Exists(ctx context.Context, id string) bool
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Fetch(ctx context.Context, id string) (*models.Task, error)
	ListByStory(ctx context.Context, storyID string, filter TaskFilter) ([]models.Task, error)
	Create(ctx context.Context, storyID, name string, status models.Status) (*models.Task, error)
	Update(ctx context.Context, id, name string, status models.Status) (*models.Task, error)
	Delete(ctx context.Context, id string) (int64, error)
	Exists(ctx context.Context, id string) bool
}
