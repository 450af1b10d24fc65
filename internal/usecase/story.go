package usecase

import (
	"context"
	"math"
	"strings"

	"storytasks/internal/errs"
	"storytasks/internal/models"
	"storytasks/internal/pagination"
	"storytasks/internal/store"
)

// CreateStoryRequest is the input of CreateStory.
type CreateStoryRequest struct {
	Name string
}

// CreateStory validates a name and inserts a story.
type CreateStory struct {
	Stories store.StoryRepository
}

var _ UseCase[CreateStoryRequest, *models.Story] = (*CreateStory)(nil)

func (uc *CreateStory) Execute(ctx context.Context, req CreateStoryRequest) (*models.Story, error) {
	draft := models.Story{Name: strings.TrimSpace(req.Name)}
	if err := draft.Validate(); err != nil {
		return nil, errs.NewInvalidArgs(err.Error())
	}
	return uc.Stories.Create(ctx, draft.Name)
}

// GetStory fetches a story by id.
type GetStory struct {
	Stories store.StoryRepository
}

var _ UseCase[string, *models.Story] = (*GetStory)(nil)

func (uc *GetStory) Execute(ctx context.Context, id string) (*models.Story, error) {
	return uc.Stories.Fetch(ctx, id)
}

// ListStoriesRequest is the input of GetStories. An empty PageToken starts
// at the most recent story; PageSize is clamped to the configured limits.
type ListStoriesRequest struct {
	PageToken string
	PageSize  int
}

// GetStories lists stories newest first, one page at a time.
type GetStories struct {
	Stories  store.StoryRepository
	Tokens   pagination.Codec
	PageSize pagination.PageSizeConfig
}

var _ UseCase[ListStoriesRequest, pagination.Page[models.Story]] = (*GetStories)(nil)

func (uc *GetStories) Execute(ctx context.Context, req ListStoriesRequest) (pagination.Page[models.Story], error) {
	cursor, err := uc.Tokens.DecodeOr(req.PageToken, math.MaxInt64)
	if err != nil {
		return pagination.Page[models.Story]{}, err
	}
	pageSize := pagination.ClampPageSize(req.PageSize, uc.PageSize)

	stories, err := uc.Stories.List(ctx, cursor, pageSize)
	if err != nil {
		return pagination.Page[models.Story]{}, err
	}

	page := pagination.Page[models.Story]{Data: stories}
	// A short page is the last one. A full page resumes just below its
	// smallest seqno so the boundary row is not returned twice.
	if n := len(stories); n > 0 && n >= pageSize {
		page.NextPageToken, _ = uc.Tokens.Encode(stories[n-1].Seqno - 1)
	}
	return page, nil
}

// UpdateStoryRequest is the input of UpdateStory.
type UpdateStoryRequest struct {
	ID   string
	Name string
}

// UpdateStory renames an existing story.
type UpdateStory struct {
	Stories store.StoryRepository
}

var _ UseCase[UpdateStoryRequest, *models.Story] = (*UpdateStory)(nil)

func (uc *UpdateStory) Execute(ctx context.Context, req UpdateStoryRequest) (*models.Story, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}

	return Guarded(ctx,
		func(ctx context.Context) (*models.Story, error) {
			return uc.Stories.Fetch(ctx, req.ID)
		},
		func(ctx context.Context, story *models.Story) (*models.Story, error) {
			return uc.Stories.Update(ctx, story.ID, name)
		},
	)
}

// DeleteStory removes an existing story and all of its tasks.
type DeleteStory struct {
	Stories store.StoryRepository
}

var _ UseCase[string, int64] = (*DeleteStory)(nil)

func (uc *DeleteStory) Execute(ctx context.Context, id string) (int64, error) {
	return Guarded(ctx,
		func(ctx context.Context) (*models.Story, error) {
			return uc.Stories.Fetch(ctx, id)
		},
		func(ctx context.Context, story *models.Story) (int64, error) {
			return uc.Stories.Delete(ctx, story.ID)
		},
	)
}
