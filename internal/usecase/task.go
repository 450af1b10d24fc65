package usecase

import (
	"context"
	"strings"

	"storytasks/internal/errs"
	"storytasks/internal/models"
	"storytasks/internal/store"
)

// CreateTaskRequest is the input of CreateTask. A nil Status means Incomplete.
type CreateTaskRequest struct {
	StoryID string
	Name    string
	Status  *models.Status
}

// CreateTask adds a task to an existing story.
type CreateTask struct {
	Stories store.StoryRepository
	Tasks   store.TaskRepository
}

var _ UseCase[CreateTaskRequest, *models.Task] = (*CreateTask)(nil)

func (uc *CreateTask) Execute(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	draft := models.Task{
		StoryID: req.StoryID,
		Name:    strings.TrimSpace(req.Name),
		Status:  models.StatusIncomplete,
	}
	if req.Status != nil {
		draft.Status = *req.Status
	}
	if err := draft.Validate(); err != nil {
		return nil, errs.NewInvalidArgs(err.Error())
	}

	return Guarded(ctx,
		func(ctx context.Context) (*models.Story, error) {
			return uc.Stories.Fetch(ctx, req.StoryID)
		},
		func(ctx context.Context, story *models.Story) (*models.Task, error) {
			return uc.Tasks.Create(ctx, story.ID, draft.Name, draft.Status)
		},
	)
}

// GetTask fetches a task by id.
type GetTask struct {
	Tasks store.TaskRepository
}

var _ UseCase[string, *models.Task] = (*GetTask)(nil)

func (uc *GetTask) Execute(ctx context.Context, id string) (*models.Task, error) {
	return uc.Tasks.Fetch(ctx, id)
}

// ListTasksRequest is the input of GetTasks. A nil Status lists every task.
type ListTasksRequest struct {
	StoryID string
	Status  *models.Status
}

// GetTasks lists the tasks of an existing story in creation order.
type GetTasks struct {
	Stories store.StoryRepository
	Tasks   store.TaskRepository
}

var _ UseCase[ListTasksRequest, []models.Task] = (*GetTasks)(nil)

func (uc *GetTasks) Execute(ctx context.Context, req ListTasksRequest) ([]models.Task, error) {
	if err := checkStatus(req.Status); err != nil {
		return nil, err
	}

	return Guarded(ctx,
		func(ctx context.Context) (*models.Story, error) {
			return uc.Stories.Fetch(ctx, req.StoryID)
		},
		func(ctx context.Context, story *models.Story) ([]models.Task, error) {
			return uc.Tasks.ListByStory(ctx, story.ID, store.TaskFilter{Status: req.Status})
		},
	)
}

// UpdateTaskRequest is a partial task update. At least one of Name and
// Status must be set; the other keeps its stored value.
type UpdateTaskRequest struct {
	ID     string
	Name   *string
	Status *models.Status
}

// UpdateTask applies a partial update to an existing task.
type UpdateTask struct {
	Tasks store.TaskRepository
}

var _ UseCase[UpdateTaskRequest, *models.Task] = (*UpdateTask)(nil)

func (uc *UpdateTask) Execute(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.Name == nil && req.Status == nil {
		return nil, errs.NewInvalidArgs("no task updates provided")
	}
	if err := checkStatus(req.Status); err != nil {
		return nil, err
	}

	var name string
	if req.Name != nil {
		cleaned, err := cleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		name = cleaned
	}

	return Guarded(ctx,
		func(ctx context.Context) (*models.Task, error) {
			return uc.Tasks.Fetch(ctx, req.ID)
		},
		func(ctx context.Context, current *models.Task) (*models.Task, error) {
			merged := *current
			if req.Name != nil {
				merged.Name = name
			}
			if req.Status != nil {
				merged.Status = *req.Status
			}
			return uc.Tasks.Update(ctx, merged.ID, merged.Name, merged.Status)
		},
	)
}

// DeleteTask removes an existing task.
type DeleteTask struct {
	Tasks store.TaskRepository
}

var _ UseCase[string, int64] = (*DeleteTask)(nil)

func (uc *DeleteTask) Execute(ctx context.Context, id string) (int64, error) {
	return Guarded(ctx,
		func(ctx context.Context) (*models.Task, error) {
			return uc.Tasks.Fetch(ctx, id)
		},
		func(ctx context.Context, task *models.Task) (int64, error) {
			return uc.Tasks.Delete(ctx, task.ID)
		},
	)
}
