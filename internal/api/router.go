package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"kanboard/internal/application/usecase"
	"kanboard/internal/infrastructure/metrics"
)

// Router exposes board operations over HTTP for drag-and-drop web clients
type Router struct {
	service        usecase.BoardService
	metrics        *metrics.Collector
	logger         *zap.Logger
	allowedOrigins []string
}

// NewRouter creates a new router instance
func NewRouter(service usecase.BoardService, collector *metrics.Collector, logger *zap.Logger, allowedOrigins []string) *Router {
	return &Router{
		service:        service,
		metrics:        collector,
		logger:         logger.Named("http"),
		allowedOrigins: allowedOrigins,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(rt.instrument)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", rt.healthCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	h := &handlers{service: rt.service, logger: rt.logger}
	router.Route("/api", func(r chi.Router) {
		r.Get("/board", h.getBoard)
		r.Get("/board/export", h.exportBoard)
		r.Post("/cards", h.addCard)
		r.Delete("/cards/{cardID}", h.deleteCard)
		r.Post("/drops", h.applyDrop)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	board, err := rt.service.GetBoard(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	status := "healthy"
	if board.Dirty {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": status, "cards": board.Total})
}

// instrument logs each request and records it on the collector
func (rt *Router) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		rt.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())))

		if rt.metrics != nil {
			rt.metrics.RecordHTTP(r.Method, route, strconv.Itoa(status), elapsed)
		}
	})
}

// NewHTTPServer wraps a handler in a server with conservative timeouts
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
