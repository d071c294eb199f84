package http

import (
	"encoding/json"
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// TeachersHandler serves /teachers with the same verb semantics as
// /students.
type TeachersHandler struct {
	Records *service.RecordsService
}

func (h *TeachersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	// An id wins outright and yields a single object.
	if id := q.Get("id"); id != "" {
		t, err := h.Records.GetTeacher(ctx, id)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, t)
		return
	}

	f := domain.TeacherFilter{
		Name:     q.Get("name"),
		Surname:  q.Get("surname"),
		Category: q.Get("category"),
	}

	teachers, err := h.Records.FindTeachers(ctx, f)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(teachers) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no teachers match")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teachers)
}

func (h *TeachersHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var teachers []domain.Teacher
	if err := json.NewDecoder(r.Body).Decode(&teachers); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.Records.AddTeachers(ctx, teachers)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *TeachersHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var t domain.Teacher
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.UpdateTeacher(ctx, t); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TeachersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters []domain.TeacherFilter
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	n, err := h.Records.RemoveTeachers(ctx, filters)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	slogx.FromContext(ctx).Info("teachers deleted", "actor", IdentityFromContext(ctx).UserID, "count", n)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
