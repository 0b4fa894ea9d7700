// Package server assembles the shrdlite HTTP server: a chi router wiring
// server/middle's auth/panic-recovery middleware around server/api's
// handlers, structurally grounded on the teacher's server/endpoints.go
// (API/EndpointFunc shape) and server/config.go (DBType/Database
// connection selection, ported into this repo's config package).
package server

import (
	"net/http"
	"time"

	"github.com/dekarrin/shrdlite/server/api"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/middle"
	"github.com/dekarrin/shrdlite/server/service"
	"github.com/go-chi/chi/v5"
)

// Server is a running shrdlite HTTP server.
type Server struct {
	router http.Handler
	db     dao.Store
}

// New assembles a Server using secret to sign bearer tokens, db as the
// persistence layer, and unauthDelay as the anti-flood pause applied
// before 401/403/500 responses.
func New(secret []byte, db dao.Store, unauthDelay time.Duration) Server {
	backend := service.Service{DB: db}

	a := api.API{
		Backend:     backend,
		UnauthDelay: unauthDelay,
		Secret:      secret,
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Get("/info", a.HTTPGetInfo())

		r.Post("/login", a.HTTPCreateLogin())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(db.Users(), secret, unauthDelay))

			r.Delete("/login/{id}", a.HTTPDeleteLogin())
			r.Post("/tokens", a.HTTPCreateToken())

			r.Post("/worlds", a.HTTPCreateWorld())
			r.Get("/worlds", a.HTTPGetAllWorlds())
			r.Get("/worlds/{id}", a.HTTPGetWorld())
			r.Delete("/worlds/{id}", a.HTTPDeleteWorld())
			r.Post("/worlds/{id}/interpret", a.HTTPInterpretSentence())
			r.Post("/worlds/{id}/plan", a.HTTPPlanSentence())
			r.Get("/worlds/{id}/plans", a.HTTPGetPlanRunsForWorld())
			r.Get("/plans/{id}", a.HTTPGetPlanRun())
		})
	})

	return Server{router: r, db: db}
}

// ServeForever listens on addr and blocks until the server exits or
// panics; any listen error is returned to the caller instead.
func (s Server) ServeForever(addr string) error {
	if addr == "" {
		addr = "localhost:8080"
	}
	return http.ListenAndServe(addr, s.router)
}

// Close shuts down the persistence layer backing the server.
func (s Server) Close() error {
	return s.db.Close()
}

// ServeHTTP lets Server be used directly as an http.Handler, e.g. with
// httptest.NewServer in tests.
func (s Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}
