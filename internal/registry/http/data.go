package http

import (
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/httpx"
)

// DataHandler serves the read-only /data listings used by clients to
// populate pickers: role names and subject names.
type DataHandler struct {
	Store   store.Store
	Records *service.RecordsService
}

func (h *DataHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roles, err := h.Store.Roles().ListRoles(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	httpx.WriteJSON(w, http.StatusOK, names)
}

func (h *DataHandler) HandleSubjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjects, err := h.Records.ListSubjects(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	httpx.WriteJSON(w, http.StatusOK, names)
}
