package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// ScheduleHandler serves /schedule.
type ScheduleHandler struct {
	Records *service.RecordsService
}

func (h *ScheduleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	// An id wins outright and yields a single object.
	if id := q.Get("id"); id != "" {
		l, err := h.Records.GetLesson(ctx, id)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, l)
		return
	}

	from, okFrom := parseDate(q.Get("from"))
	to, okTo := parseDate(q.Get("to"))
	if !okFrom || !okTo {
		httpx.WriteError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD or RFC3339")
		return
	}

	var cabinet int
	if raw := q.Get("cabinet"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid cabinet number")
			return
		}
		cabinet = n
	}

	f := domain.LessonFilter{
		Subject:   q.Get("subject"),
		TeacherID: q.Get("teacherId"),
		GroupCode: q.Get("groupCode"),
		Cabinet:   cabinet,
		From:      from,
		To:        to,
	}

	lessons, err := h.Records.FindLessons(ctx, f)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(lessons) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no lessons match")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lessons)
}

func (h *ScheduleHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var lessons []domain.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lessons); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.Records.AddLessons(ctx, lessons)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *ScheduleHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var l domain.Lesson
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.UpdateLesson(ctx, l); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, l)
}

func (h *ScheduleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	n, err := h.Records.RemoveLessons(ctx, ids)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	slogx.FromContext(ctx).Info("lessons deleted", "actor", IdentityFromContext(ctx).UserID, "count", n)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
