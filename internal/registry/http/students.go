package http

import (
	"encoding/json"
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// StudentsHandler serves /students: GET finds by filter fields, POST inserts
// a batch, PATCH updates one record by id, DELETE removes by a batch of
// filters.
type StudentsHandler struct {
	Records *service.RecordsService
}

func (h *StudentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	// An id wins outright: every other query field is ignored and the
	// single matching record comes back as an object, not an array.
	if id := q.Get("id"); id != "" {
		st, err := h.Records.GetStudent(ctx, id)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, st)
		return
	}

	f := domain.StudentFilter{
		Name:       q.Get("name"),
		Surname:    q.Get("surname"),
		Patronymic: q.Get("patronymic"),
		GroupCode:  q.Get("groupCode"),
	}

	students, err := h.Records.FindStudents(ctx, f)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(students) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no students match")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, students)
}

func (h *StudentsHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var students []domain.Student
	if err := json.NewDecoder(r.Body).Decode(&students); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.Records.AddStudents(ctx, students)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *StudentsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var s domain.Student
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.UpdateStudent(ctx, s); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *StudentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters []domain.StudentFilter
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	n, err := h.Records.RemoveStudents(ctx, filters)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	slogx.FromContext(ctx).Info("students deleted", "actor", IdentityFromContext(ctx).UserID, "count", n)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
