package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// GradeLogHandler serves /gradelog.
type GradeLogHandler struct {
	Records *service.RecordsService
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (h *GradeLogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	// An entry id wins outright and yields a single object.
	if id := q.Get("id"); id != "" {
		e, err := h.Records.GetGrade(ctx, id)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
		return
	}

	from, okFrom := parseDate(q.Get("from"))
	to, okTo := parseDate(q.Get("to"))
	if !okFrom || !okTo {
		httpx.WriteError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD or RFC3339")
		return
	}

	f := domain.GradeFilter{
		StudentID:         q.Get("studentId"),
		StudentName:       q.Get("studentName"),
		StudentSurname:    q.Get("studentSurname"),
		StudentPatronymic: q.Get("studentPatronymic"),
		GroupCode:         q.Get("group"),
		Subject:           q.Get("subject"),
		From:              from,
		To:                to,
	}

	entries, err := h.Records.FindGrades(ctx, f)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(entries) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no grade entries match")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

func (h *GradeLogHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var entries []domain.GradeEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.Records.AddGrades(ctx, entries)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *GradeLogHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var e domain.GradeEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.UpdateGrade(ctx, e); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *GradeLogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	n, err := h.Records.RemoveGrades(ctx, ids)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	slogx.FromContext(ctx).Info("grade entries deleted", "actor", IdentityFromContext(ctx).UserID, "count", n)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
