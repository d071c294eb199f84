package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/policy"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/httpx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store  store.Store
	policy policy.Table

	AuthService      *service.AuthService
	AuthorizeService *service.AuthorizeService
	RecordsService   *service.RecordsService
}

func NewRouter(buildVersion string, st store.Store, table policy.Table, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		policy:       table,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRecords()
	r.registerData()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	signIn := &SignInHandler{AuthService: r.AuthService}
	signUp := &SignUpHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict limit; sign-in is additionally
	// bucketed per account name to slow targeted guessing.
	r.Mux.Handle("GET /signin",
		httpx.Chain(signIn,
			httpx.RateLimitByIPAndQuery(httpx.StrictLimit, "name"),
		),
	)

	r.Mux.Handle("POST /signup",
		httpx.Chain(signUp,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

// protect wires the policy table entry for a resource in front of a handler.
func (r *Router) protect(resource string, h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		Protect(r.AuthorizeService, r.policy, resource),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
}

func (r *Router) registerRecords() {
	students := &StudentsHandler{Records: r.RecordsService}
	r.Mux.Handle("GET /students", r.protect("students", students.HandleGet))
	r.Mux.Handle("POST /students", r.protect("students", students.HandlePost))
	r.Mux.Handle("PATCH /students", r.protect("students", students.HandlePatch))
	r.Mux.Handle("DELETE /students", r.protect("students", students.HandleDelete))

	teachers := &TeachersHandler{Records: r.RecordsService}
	r.Mux.Handle("GET /teachers", r.protect("teachers", teachers.HandleGet))
	r.Mux.Handle("POST /teachers", r.protect("teachers", teachers.HandlePost))
	r.Mux.Handle("PATCH /teachers", r.protect("teachers", teachers.HandlePatch))
	r.Mux.Handle("DELETE /teachers", r.protect("teachers", teachers.HandleDelete))

	groups := &GroupsHandler{Records: r.RecordsService}
	r.Mux.Handle("GET /groups", r.protect("groups", groups.HandleGet))
	r.Mux.Handle("POST /groups", r.protect("groups", groups.HandlePost))
	r.Mux.Handle("PATCH /groups", r.protect("groups", groups.HandlePatch))
	r.Mux.Handle("DELETE /groups", r.protect("groups", groups.HandleDelete))

	subjects := &SubjectsHandler{Records: r.RecordsService}
	r.Mux.Handle("GET /subjects", r.protect("subjects", subjects.HandleGet))
	r.Mux.Handle("POST /subjects", r.protect("subjects", subjects.HandlePost))
	r.Mux.Handle("DELETE /subjects", r.protect("subjects", subjects.HandleDelete))

	gradeLog := &GradeLogHandler{Records: r.RecordsService}
	r.Mux.Handle("GET /gradelog", r.protect("gradelog", gradeLog.HandleGet))
	r.Mux.Handle("POST /gradelog", r.protect("gradelog", gradeLog.HandlePost))
	r.Mux.Handle("PATCH /gradelog", r.protect("gradelog", gradeLog.HandlePatch))
	r.Mux.Handle("DELETE /gradelog", r.protect("gradelog", gradeLog.HandleDelete))

	schedule := &ScheduleHandler{Records: r.RecordsService}
	r.Mux.Handle("GET /schedule", r.protect("schedule", schedule.HandleGet))
	r.Mux.Handle("POST /schedule", r.protect("schedule", schedule.HandlePost))
	r.Mux.Handle("PATCH /schedule", r.protect("schedule", schedule.HandlePatch))
	r.Mux.Handle("DELETE /schedule", r.protect("schedule", schedule.HandleDelete))
}

func (r *Router) registerData() {
	data := &DataHandler{Store: r.store, Records: r.RecordsService}
	r.Mux.Handle("GET /data/roles", r.protect("data", data.HandleRoles))
	r.Mux.Handle("GET /data/subjects", r.protect("data", data.HandleSubjects))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
