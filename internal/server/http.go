package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Routes registers a group of API endpoints on the mux.
type Routes interface {
	Register(mux *http.ServeMux)
}

type redisPinger struct{ client *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// NewHTTPServer wires base routes (health, metrics) and the API route groups.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, routes ...Routes) *http.Server {
	var deps []Pinger
	if pool != nil {
		deps = append(deps, pool)
	}
	if redisClient != nil {
		deps = append(deps, redisPinger{client: redisClient})
	}
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg.CORS, logger, deps, routes...),
	}
}

// NewHandler builds the routed, middleware-wrapped API handler.
func NewHandler(cors config.CORS, logger zerolog.Logger, deps []Pinger, routes ...Routes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			reqLogger := logging.Ctx(r.Context(), logger)
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondStatus(w, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	for _, group := range routes {
		if group != nil {
			group.Register(mux)
		}
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if pathHasOtherMethod(mux, r) {
			httperrors.RespondMethodNotAllowed(w)
			return
		}
		httperrors.RespondNotFound(w)
	})

	var handler http.Handler = mux
	handler = instrument(handler)
	handler = recoverer(logger)(handler)
	handler = requestLogger(logger)(handler)
	handler = corsMiddleware(cors)(handler)
	return handler
}

var routedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// pathHasOtherMethod reports whether a route other than the catch-all matches
// the request path under a different method.
func pathHasOtherMethod(mux *http.ServeMux, r *http.Request) bool {
	for _, method := range routedMethods {
		if method == r.Method {
			continue
		}
		alt := r.Clone(r.Context())
		alt.Method = method
		if _, pattern := mux.Handler(alt); pattern != "" && pattern != "/" {
			return true
		}
	}
	return false
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
