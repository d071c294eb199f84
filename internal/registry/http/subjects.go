package http

import (
	"encoding/json"
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
)

// SubjectsHandler serves /subjects. Subjects are plain names: GET lists,
// POST inserts a batch, DELETE removes by name.
type SubjectsHandler struct {
	Records *service.RecordsService
}

func (h *SubjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjects, err := h.Records.ListSubjects(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(subjects) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no subjects")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, subjects)
}

func (h *SubjectsHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var subjects []domain.Subject
	if err := json.NewDecoder(r.Body).Decode(&subjects); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.AddSubjects(ctx, subjects); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, subjects)
}

func (h *SubjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	n, err := h.Records.RemoveSubjects(ctx, names)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
