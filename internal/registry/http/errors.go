package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// writeServiceError is the single place service failures become HTTP
// statuses. Unknown errors are logged and surface as an opaque 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoToken):
		httpx.WriteError(w, http.StatusUnauthorized, "no token")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrDuplicateName):
		httpx.WriteError(w, http.StatusBadRequest, "name already taken")
	case errors.Is(err, service.ErrUnknownRole):
		httpx.WriteError(w, http.StatusBadRequest, "unknown role")
	case errors.Is(err, service.ErrMalformedRequest):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
