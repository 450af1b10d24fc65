package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storytasks/internal/errs"
	"storytasks/internal/models"
	"storytasks/internal/pagination"
	"storytasks/internal/usecase"
)

// StoryService is the story API the handlers depend on.
type StoryService interface {
	Create(ctx context.Context, name string) (*models.Story, error)
	Get(ctx context.Context, id string) (*models.Story, error)
	List(ctx context.Context, pageToken string, pageSize int) (pagination.Page[models.Story], error)
	Update(ctx context.Context, id, name string) (*models.Story, error)
	Delete(ctx context.Context, id string) error
}

// TaskService is the task API the handlers depend on.
type TaskService interface {
	Create(ctx context.Context, req usecase.CreateTaskRequest) (*models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, storyID string, status *models.Status) ([]models.Task, error)
	Update(ctx context.Context, req usecase.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	stories StoryService
	tasks   TaskService
	logger  *slog.Logger
}

// New creates a new Handlers instance.
func New(stories StoryService, tasks TaskService, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		stories: stories,
		tasks:   tasks,
		logger:  logger,
	}
}

// Routes mounts every endpoint on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/status", h.Status)

	r.Route("/stories", func(r chi.Router) {
		r.Get("/", h.ListStories)
		r.Post("/", h.CreateStory)
		r.Get("/{id}", h.GetStory)
		r.Patch("/{id}", h.UpdateStory)
		r.Delete("/{id}", h.DeleteStory)
		r.Get("/{id}/tasks", h.ListStoryTasks)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Patch("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})
}

// Status reports liveness.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Errors []string `json:"errors"`
}

// respondJSON writes v with code. The status line is already sent when
// encoding fails, so the failure is only logged.
func (h *Handlers) respondJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "encode response failed",
			"method", r.Method, "path", r.URL.Path, "status", code, "error", err)
	}
}

// respondError maps err to a status code. Internal details never reach the client.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch errs.KindOf(err) {
	case errs.NotFound:
		h.respondJSON(w, r, http.StatusNotFound, errorBody{Errors: errs.Messages(err)})
	case errs.InvalidArgs:
		h.respondJSON(w, r, http.StatusBadRequest, errorBody{Errors: errs.Messages(err)})
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		h.respondJSON(w, r, http.StatusInternalServerError, errorBody{Errors: []string{"internal server error"}})
	}
}

// decodeJSON reads a JSON body into v. Unknown status values and malformed
// bodies are InvalidArgs.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, models.ErrUnknownStatus) {
			return errs.WrapInvalidArgs("status must be 'Incomplete' or 'Complete'", err)
		}
		return errs.WrapInvalidArgs("invalid json body", err)
	}
	return nil
}

// parsePageSize reads the optional page_size query parameter; 0 means unset.
func parsePageSize(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page_size")
	if raw == "" {
		return 0, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.WrapInvalidArgs("page_size must be an integer", err)
	}
	return size, nil
}

// parseStatusParam reads the optional status query parameter.
func parseStatusParam(r *http.Request) (*models.Status, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		return nil, errs.WrapInvalidArgs("status must be 'Incomplete' or 'Complete'", err)
	}
	return &status, nil
}
