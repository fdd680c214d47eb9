package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"accessgate.dev/internal/auth"
	"accessgate.dev/internal/obs"
	"accessgate.dev/internal/rbac"
)

// ReadyProbe reports readiness, typically by pinging the database.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer: routing plus the guard chain in front of handlers.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	auth   *auth.Service
	tokens *auth.TokenService
	rbac   *rbac.Service
}

// New wires all routes. Mutating routes on users/roles/permissions require the
// admin role; reads require authentication only.
func New(rp ReadyProbe, version string, authSvc *auth.Service, rbacSvc *rbac.Service) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		auth:       authSvc,
		rbac:       rbacSvc,
	}
	if authSvc != nil {
		a.tokens = authSvc.Tokens()
	}

	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.HandleFunc("GET /readyz", a.ready)
	a.mux.HandleFunc("GET /v1/info", a.info)
	a.mux.Handle("GET /metrics", obs.Handler())

	a.mux.HandleFunc("POST /v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("POST /v1/auth/refresh", a.handleRefresh)
	a.mux.HandleFunc("GET /v1/auth/profile", a.handleProfile)

	admin := RequireRole(string(rbac.RoleAdmin))

	a.mux.Handle("POST /v1/users", admin(http.HandlerFunc(a.createUser)))
	a.mux.HandleFunc("GET /v1/users", a.listUsers)
	a.mux.HandleFunc("GET /v1/users/{id}", a.getUser)
	a.mux.Handle("PATCH /v1/users/{id}", admin(http.HandlerFunc(a.updateUser)))
	a.mux.Handle("DELETE /v1/users/{id}", admin(http.HandlerFunc(a.deleteUser)))

	a.mux.Handle("POST /v1/roles", admin(http.HandlerFunc(a.createRole)))
	a.mux.HandleFunc("GET /v1/roles", a.listRoles)
	a.mux.HandleFunc("GET /v1/roles/{id}", a.getRole)
	a.mux.Handle("PATCH /v1/roles/{id}", admin(http.HandlerFunc(a.updateRole)))
	a.mux.Handle("DELETE /v1/roles/{id}", admin(http.HandlerFunc(a.deleteRole)))

	a.mux.Handle("POST /v1/permissions", admin(http.HandlerFunc(a.createPermission)))
	a.mux.HandleFunc("GET /v1/permissions", a.listPermissions)
	a.mux.HandleFunc("GET /v1/permissions/{id}", a.getPermission)
	a.mux.Handle("PATCH /v1/permissions/{id}", admin(http.HandlerFunc(a.updatePermission)))
	a.mux.Handle("DELETE /v1/permissions/{id}", admin(http.HandlerFunc(a.deletePermission)))

	return a
}

// Handler returns the full middleware stack around the mux. Identity
// extraction runs before any handler; role checks run per route after it.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, 1<<20)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "accessgate-api",
		"version": a.version,
	})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (a *API) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "accessgate-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
