package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/policy"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/internal/registry/store/drivers/sqlite"
	"github.com/chalkboard-sys/registry/pkg/jwtx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, table policy.Table) *Router {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, service.EnsureBaseRoles(t.Context(), st))

	codec, err := jwtx.NewCodec("registry-test",
		[]byte("access-signing-key-for-tests"),
		[]byte("refresh-signing-key-for-tests"))
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{Service: "registry-test", Level: "error"})

	r := NewRouter("test", st, table, logger)
	r.AuthService = &service.AuthService{
		Codec:      codec,
		Store:      st,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
	r.AuthorizeService = &service.AuthorizeService{Codec: codec, Store: st}
	r.RecordsService = &service.RecordsService{Store: st}
	r.ApplyRoutes()

	return r
}

func doJSON(t *testing.T, r *Router, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set(AccessHeader, token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, r *Router, name, password, role string) {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/signup", "", signUpRequest{
		Name: name, Password: password, Role: role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func signIn(t *testing.T, r *Router, name, password string) (access, refresh string) {
	t.Helper()

	rec := doJSON(t, r, http.MethodGet, "/signin?name="+name+"&password="+password, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	return pair.Access, pair.Refresh
}

func TestSignInFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	signUp(t, r, "boba", "aboba", "admin")

	access, refresh := signIn(t, r, "boba", "aboba")

	t.Run("wrong password is 401", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/signin?name=boba&password=wrong", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("neither query form is 400", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/signin?name=boba", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("refresh form rotates the pair", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/signin?refresh="+refresh, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var pair struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
		require.NotEqual(t, access, pair.Access)

		// The spent refresh token is one-shot.
		rec = doJSON(t, r, http.MethodGet, "/signin?refresh="+refresh, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		// The rotated-away access token is refused everywhere.
		rec = doJSON(t, r, http.MethodGet, "/students", access, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate signup is 400", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/signup", "", signUpRequest{
			Name: "boba", Password: "other",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedResources(t *testing.T) {
	table := policy.Table{
		"students": {"POST": []string{"admin"}, "DELETE": []string{"admin"}},
	}
	r := newTestRouter(t, table)

	signUp(t, r, "boba", "aboba", "admin")
	signUp(t, r, "che", "pw", "")

	adminToken, _ := signIn(t, r, "boba", "aboba")
	userToken, _ := signIn(t, r, "che", "pw")

	students := []map[string]string{
		{"name": "Ivan", "surname": "Petrov", "groupCode": "P-21"},
	}

	t.Run("missing Access header is 401", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/students", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/students", "garbage", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("default role cannot write students", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students", userToken, students)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin writes then anyone authenticated reads", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students", adminToken, students)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = doJSON(t, r, http.MethodGet, "/students?surname=Petrov", userToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("no match on GET is 404", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/students?surname=Nobody", userToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty delete filter is 400", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/students", adminToken, []map[string]string{{}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetByIDReturnsSingleObject(t *testing.T) {
	r := newTestRouter(t, nil)

	signUp(t, r, "boba", "aboba", "admin")
	token, _ := signIn(t, r, "boba", "aboba")

	rec := doJSON(t, r, http.MethodPost, "/students", token, []map[string]string{
		{"name": "Ivan", "surname": "Petrov", "groupCode": "P-21"},
		{"name": "Anna", "surname": "Sidorova", "groupCode": "P-21"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created []struct {
		ID      string `json:"id"`
		Surname string `json:"surname"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created, 2)

	t.Run("id query yields one object, other fields ignored", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/students?id="+created[0].ID+"&name=Anna", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got struct {
			ID      string `json:"id"`
			Surname string `json:"surname"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, created[0].ID, got.ID)
		require.Equal(t, "Petrov", got.Surname)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/students?id=missing", token, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProtectInstallsIdentity(t *testing.T) {
	r := newTestRouter(t, nil)

	signUp(t, r, "boba", "aboba", "admin")
	token, _ := signIn(t, r, "boba", "aboba")

	var seen string
	handler := Protect(r.AuthorizeService, nil, "students")(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen = IdentityFromContext(req.Context()).UserID
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set(AccessHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, seen)
}

func TestDataListings(t *testing.T) {
	r := newTestRouter(t, nil)

	signUp(t, r, "boba", "aboba", "admin")
	token, _ := signIn(t, r, "boba", "aboba")

	rec := doJSON(t, r, http.MethodPost, "/subjects", token, []map[string]string{
		{"name": "Math"}, {"name": "History"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("roles listing", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/data/roles", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var names []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
		require.ElementsMatch(t, []string{"user", "admin"}, names)
	})

	t.Run("subjects listing", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/data/subjects", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var names []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
		require.ElementsMatch(t, []string{"Math", "History"}, names)
	})

	t.Run("listings still require a token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/data/roles", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
