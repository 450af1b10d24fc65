package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type storyPayload struct {
	Name string `json:"name"`
}

// ListStories returns one page of stories, newest first.
func (h *Handlers) ListStories(w http.ResponseWriter, r *http.Request) {
	pageSize, err := parsePageSize(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	page, err := h.stories.List(r.Context(), r.URL.Query().Get("page_token"), pageSize)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, page)
}

// CreateStory creates a new story.
func (h *Handlers) CreateStory(w http.ResponseWriter, r *http.Request) {
	var payload storyPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	story, err := h.stories.Create(r.Context(), payload.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, story)
}

// GetStory returns a single story.
func (h *Handlers) GetStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.stories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, story)
}

// UpdateStory renames a story.
func (h *Handlers) UpdateStory(w http.ResponseWriter, r *http.Request) {
	var payload storyPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	story, err := h.stories.Update(r.Context(), chi.URLParam(r, "id"), payload.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, story)
}

// DeleteStory deletes a story and its tasks.
func (h *Handlers) DeleteStory(w http.ResponseWriter, r *http.Request) {
	if err := h.stories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListStoryTasks lists a story's tasks, optionally filtered by ?status=.
func (h *Handlers) ListStoryTasks(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatusParam(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	tasks, err := h.tasks.List(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, tasks)
}
