package http

import (
	"encoding/json"
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// GroupsHandler serves /groups. Groups are keyed by code rather than a
// generated id, so GET lists and DELETE takes codes.
type GroupsHandler struct {
	Records *service.RecordsService
}

func (h *GroupsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A code query narrows the listing to a single group.
	if code := r.URL.Query().Get("code"); code != "" {
		g, err := h.Records.GetGroup(ctx, code)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, g)
		return
	}

	groups, err := h.Records.ListGroups(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(groups) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no groups")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, groups)
}

func (h *GroupsHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var groups []domain.Group
	if err := json.NewDecoder(r.Body).Decode(&groups); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.AddGroups(ctx, groups); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, groups)
}

func (h *GroupsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var g domain.Group
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.Records.UpdateGroup(ctx, g); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, g)
}

func (h *GroupsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var codes []string
	if err := json.NewDecoder(r.Body).Decode(&codes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	n, err := h.Records.RemoveGroups(ctx, codes)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	slogx.FromContext(ctx).Info("groups deleted", "actor", IdentityFromContext(ctx).UserID, "count", n)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
