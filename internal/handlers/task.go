package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storytasks/internal/models"
	"storytasks/internal/usecase"
)

type createTaskPayload struct {
	StoryID string         `json:"story_id"`
	Name    string         `json:"name"`
	Status  *models.Status `json:"status"`
}

// updateTaskPayload leaves absent fields nil so they keep their stored value.
type updateTaskPayload struct {
	Name   *string        `json:"name"`
	Status *models.Status `json:"status"`
}

// CreateTask creates a task under an existing story.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var payload createTaskPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), usecase.CreateTaskRequest{
		StoryID: payload.StoryID,
		Name:    payload.Name,
		Status:  payload.Status,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, task)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, task)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var payload updateTaskPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), usecase.UpdateTaskRequest{
		ID:     chi.URLParam(r, "id"),
		Name:   payload.Name,
		Status: payload.Status,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, task)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
