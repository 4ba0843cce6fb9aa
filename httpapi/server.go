package httpapi

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	newsdeck "github.com/MrEthical07/newsdeck"
	"github.com/MrEthical07/newsdeck/metrics/export/prometheus"
	"github.com/MrEthical07/newsdeck/middleware"
)

// Config carries the router-level knobs. Everything engine-level lives in
// [newsdeck.Config].
type Config struct {
	// AllowedOrigins is handed to the CORS layer. Empty allows none.
	AllowedOrigins []string
	// EnableDevRoutes mounts the seed routes and the unscoped collection
	// listing. Never set in production.
	EnableDevRoutes bool
}

// Server binds an engine to the HTTP surface.
type Server struct {
	engine *newsdeck.Engine
	log    *logrus.Logger
	cfg    Config
}

// NewServer wires a server. A nil logger falls back to the logrus standard
// logger.
func NewServer(engine *newsdeck.Engine, log *logrus.Logger, cfg Config) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{engine: engine, log: log, cfg: cfg}
}

// Router builds the chi router with the full route table mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.clientIP)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	requireUser := middleware.RequireUser(s.engine)
	requireAdmin := middleware.RequireAdmin(s.engine)

	r.Route("/auth", func(r chi.Router) {
		r.Put("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(requireUser).Post("/refresh", s.handleRefresh)
		r.With(requireAdmin).Get("/allUser", s.handleAllUsers)
		r.With(requireAdmin).Patch("/update/{id}", s.handleUpdateAccount)
		if s.cfg.EnableDevRoutes {
			r.Get("/seed", s.handleSeedAccounts)
		}
	})

	r.Route("/api", func(r chi.Router) {
		if s.cfg.EnableDevRoutes {
			r.Get("/", s.handleAllCollections)
			r.Get("/seed", s.handleSeedCollections)
		}
		r.With(requireUser).Put("/{id}", s.handleAddCollection)
		r.With(requireUser).Patch("/{id}", s.handlePatchCollection)
		r.With(requireUser).Delete("/{id}", s.handleDeleteCollection)
		r.With(requireUser).Get("/{id}", s.handleOwnerCollections)
	})

	r.Route("/roles", func(r chi.Router) {
		r.Get("/", s.handleRoleNames)
		if s.cfg.EnableDevRoutes {
			r.Get("/seed", s.handleSeedRoles)
		}
	})

	r.Method(http.MethodGet, "/metrics", prometheus.NewPrometheusExporter(s.engine).Handler())

	return r
}

// clientIP threads the caller's address into the request context so the
// engine's throttles and audit events see it.
func (s *Server) clientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		next.ServeHTTP(w, r.WithContext(newsdeck.WithClientIP(r.Context(), host)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
			"remote":   r.RemoteAddr,
		}).Info("request")
	})
}
