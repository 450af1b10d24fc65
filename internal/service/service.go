// Package service groups the use cases of each entity behind one handle.
// Services hold no logic of their own.
package service

import (
	"context"

	"storytasks/internal/models"
	"storytasks/internal/pagination"
	"storytasks/internal/store"
	"storytasks/internal/usecase"
)

// Options configures list behavior.
type Options struct {
	PageSize pagination.PageSizeConfig
	Tokens   pagination.Codec
}

// DefaultOptions returns the page size limits and a non-expiring codec.
func DefaultOptions() Options {
	return Options{PageSize: pagination.DefaultPageSize, Tokens: pagination.DefaultCodec}
}

// StoryService exposes story operations.
type StoryService struct {
	create usecase.UseCase[usecase.CreateStoryRequest, *models.Story]
	get    usecase.UseCase[string, *models.Story]
	list   usecase.UseCase[usecase.ListStoriesRequest, pagination.Page[models.Story]]
	update usecase.UseCase[usecase.UpdateStoryRequest, *models.Story]
	remove usecase.UseCase[string, int64]
}

// NewStoryService wires the story use cases to stories.
func NewStoryService(stories store.StoryRepository, opts Options) *StoryService {
	return &StoryService{
		create: &usecase.CreateStory{Stories: stories},
		get:    &usecase.GetStory{Stories: stories},
		list:   &usecase.GetStories{Stories: stories, Tokens: opts.Tokens, PageSize: opts.PageSize},
		update: &usecase.UpdateStory{Stories: stories},
		remove: &usecase.DeleteStory{Stories: stories},
	}
}

func (s *StoryService) Create(ctx context.Context, name string) (*models.Story, error) {
	return s.create.Execute(ctx, usecase.CreateStoryRequest{Name: name})
}

func (s *StoryService) Get(ctx context.Context, id string) (*models.Story, error) {
	return s.get.Execute(ctx, id)
}

// List returns one page of stories, newest first.
func (s *StoryService) List(ctx context.Context, pageToken string, pageSize int) (pagination.Page[models.Story], error) {
	return s.list.Execute(ctx, usecase.ListStoriesRequest{PageToken: pageToken, PageSize: pageSize})
}

func (s *StoryService) Update(ctx context.Context, id, name string) (*models.Story, error) {
	return s.update.Execute(ctx, usecase.UpdateStoryRequest{ID: id, Name: name})
}

// Delete removes the story and every task it owns.
func (s *StoryService) Delete(ctx context.Context, id string) error {
	_, err := s.remove.Execute(ctx, id)
	return err
}

// TaskService exposes task operations.
type TaskService struct {
	create usecase.UseCase[usecase.CreateTaskRequest, *models.Task]
	get    usecase.UseCase[string, *models.Task]
	list   usecase.UseCase[usecase.ListTasksRequest, []models.Task]
	update usecase.UseCase[usecase.UpdateTaskRequest, *models.Task]
	remove usecase.UseCase[string, int64]
}

// NewTaskService wires the task use cases. stories is needed to check the
// owning story on create and list.
func NewTaskService(stories store.StoryRepository, tasks store.TaskRepository) *TaskService {
	return &TaskService{
		create: &usecase.CreateTask{Stories: stories, Tasks: tasks},
		get:    &usecase.GetTask{Tasks: tasks},
		list:   &usecase.GetTasks{Stories: stories, Tasks: tasks},
		update: &usecase.UpdateTask{Tasks: tasks},
		remove: &usecase.DeleteTask{Tasks: tasks},
	}
}

func (s *TaskService) Create(ctx context.Context, req usecase.CreateTaskRequest) (*models.Task, error) {
	return s.create.Execute(ctx, req)
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.get.Execute(ctx, id)
}

// List returns the tasks of a story, optionally only those with status.
func (s *TaskService) List(ctx context.Context, storyID string, status *models.Status) ([]models.Task, error) {
	return s.list.Execute(ctx, usecase.ListTasksRequest{StoryID: storyID, Status: status})
}

func (s *TaskService) Update(ctx context.Context, req usecase.UpdateTaskRequest) (*models.Task, error) {
	return s.update.Execute(ctx, req)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	_, err := s.remove.Execute(ctx, id)
	return err
}
