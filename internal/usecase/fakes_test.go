package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storytasks/internal/errs"
	"storytasks/internal/models"
	"storytasks/internal/store"
)

// fakeStories is an in-memory StoryRepository with per-method error injection.
type fakeStories struct {
	mu      sync.Mutex
	stories map[string]*models.Story
	seq     int64
	calls   map[string]int

	FetchErr  error
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// tasks, when set, receives the cascade on Delete.
	tasks *fakeTasks
}

func newFakeStories() *fakeStories {
	return &fakeStories{
		stories: make(map[string]*models.Story),
		calls:   make(map[string]int),
	}
}

func (f *fakeStories) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStories) add(name string) *models.Story {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	now := time.Now().UTC()
	story := &models.Story{
		ID:        fmt.Sprintf("story-%d", f.seq),
		Name:      name,
		Seqno:     f.seq,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.stories[story.ID] = story
	return story
}

func (f *fakeStories) Fetch(ctx context.Context, id string) (*models.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Fetch"]++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	story, ok := f.stories[id]
	if !ok {
		return nil, errs.NewNotFound("story not found: %s", id)
	}
	copied := *story
	return &copied, nil
}

func (f *fakeStories) List(ctx context.Context, cursor int64, pageSize int) ([]models.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["List"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	stories := []models.Story{}
	for seq := f.seq; seq > 0 && len(stories) < pageSize; seq-- {
		if seq > cursor {
			continue
		}
		for _, story := range f.stories {
			if story.Seqno == seq {
				stories = append(stories, *story)
			}
		}
	}
	return stories, nil
}

func (f *fakeStories) Create(ctx context.Context, name string) (*models.Story, error) {
	f.mu.Lock()
	f.calls["Create"]++
	err := f.CreateErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.add(name), nil
}

func (f *fakeStories) Update(ctx context.Context, id string, name string) (*models.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Update"]++
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	story, ok := f.stories[id]
	if !ok {
		return nil, errs.NewNotFound("story not found: %s", id)
	}
	story.Name = name
	story.UpdatedAt = time.Now().UTC()
	copied := *story
	return &copied, nil
}

func (f *fakeStories) Delete(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Delete"]++
	if f.DeleteErr != nil {
		return 0, f.DeleteErr
	}
	if _, ok := f.stories[id]; !ok {
		return 0, nil
	}
	delete(f.stories, id)
	if f.tasks != nil {
		f.tasks.deleteStory(id)
	}
	return 1, nil
}

func (f *fakeStories) Exists(ctx context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.stories[id]
	return ok
}

// fakeTasks is an in-memory TaskRepository with per-method error injection.
type fakeTasks struct {
	mu    sync.Mutex
	tasks []*models.Task
	seq   int
	calls map[string]int

	FetchErr  error
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{calls: make(map[string]int)}
}

func (f *fakeTasks) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeTasks) find(id string) (int, bool) {
	for i, task := range f.tasks {
		if task.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeTasks) deleteStory(storyID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tasks[:0]
	for _, task := range f.tasks {
		if task.StoryID != storyID {
			kept = append(kept, task)
		}
	}
	f.tasks = kept
}

func (f *fakeTasks) Fetch(ctx context.Context, id string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Fetch"]++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	i, ok := f.find(id)
	if !ok {
		return nil, errs.NewNotFound("task not found: %s", id)
	}
	copied := *f.tasks[i]
	return &copied, nil
}

func (f *fakeTasks) ListByStory(ctx context.Context, storyID string, filter store.TaskFilter) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListByStory"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	tasks := []models.Task{}
	for _, task := range f.tasks {
		if task.StoryID != storyID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (f *fakeTasks) Create(ctx context.Context, storyID, name string, status models.Status) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.seq++
	now := time.Now().UTC()
	task := &models.Task{
		ID:        fmt.Sprintf("task-%d", f.seq),
		StoryID:   storyID,
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.tasks = append(f.tasks, task)
	copied := *task
	return &copied, nil
}

func (f *fakeTasks) Update(ctx context.Context, id, name string, status models.Status) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Update"]++
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	i, ok := f.find(id)
	if !ok {
		return nil, errs.NewNotFound("task not found: %s", id)
	}
	f.tasks[i].Name = name
	f.tasks[i].Status = status
	f.tasks[i].UpdatedAt = time.Now().UTC()
	copied := *f.tasks[i]
	return &copied, nil
}

func (f *fakeTasks) Delete(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Delete"]++
	if f.DeleteErr != nil {
		return 0, f.DeleteErr
	}
	i, ok := f.find(id)
	if !ok {
		return 0, nil
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return 1, nil
}

func (f *fakeTasks) Exists(ctx context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.find(id)
	return ok
}

// newFakes wires a story and task fake so story deletes cascade.
func newFakes() (*fakeStories, *fakeTasks) {
	stories := newFakeStories()
	tasks := newFakeTasks()
	stories.tasks = tasks
	return stories, tasks
}

func ptr[T any](v T) *T {
	return &v
}
