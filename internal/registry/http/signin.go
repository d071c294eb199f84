package http

import (
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
)

// SignInHandler serves GET /signin.
//
// Two query forms are accepted: ?name=..&password=.. authenticates against
// stored credentials, and ?refresh=.. rotates a refresh token. Either way a
// fresh {access, refresh} pair comes back.
type SignInHandler struct {
	AuthService *service.AuthService
}

func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	name := q.Get("name")
	password := q.Get("password")
	refresh := q.Get("refresh")

	switch {
	case refresh != "":
		pair, err := h.AuthService.Rotate(ctx, refresh)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, pair)

	case name != "" && password != "":
		pair, err := h.AuthService.Authenticate(ctx, name, password)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, pair)

	default:
		httpx.WriteError(w, http.StatusBadRequest, "expected name+password or refresh")
	}
}
