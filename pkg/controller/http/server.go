package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ccimar11/riskmap/pkg/usecase"
	"github.com/ccimar11/riskmap/pkg/utils/errutil"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

// New builds the JSON API router. Every handler goes through the use
// cases, which serialize access to the stores.
func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/criteria", func(r chi.Router) {
			r.Get("/", s.listCatalog)
			r.Get("/{category}", s.listCriteria)
			r.Post("/{category}", s.addCriterion)
			r.Put("/{category}/{index}", s.updateCriterion)
			r.Delete("/{category}/{index}", s.removeCriterion)
		})

		r.Get("/weights", s.getWeights)
		r.Put("/weights", s.putWeights)

		r.Get("/tiers", s.getTiers)
		r.Put("/tiers", s.putTiers)
		r.Post("/tiers/preset/{name}", s.applyPreset)

		r.Route("/objects", func(r chi.Router) {
			r.Get("/", s.listObjects)
			r.Post("/", s.addObject)
			r.Get("/{id}", s.getObject)
			r.Put("/{id}/selections", s.putSelection)
		})

		r.Post("/recompute", s.recompute)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTPStatus(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		errutil.HandleHTTPStatus(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return false
	}
	return true
}
