package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/metrics"
)

// Gateway is the edge tier. It owns request-shape validation and rate
// limiting; every request that passes both is forwarded to the server
// tier untouched.
type Gateway struct {
	client  *Client
	limiter *Limiter
	server  *http.Server
	log     zerolog.Logger
}

func NewGateway(cfg config.GatewayConfig, rdb *redis.Client, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		client:  NewClient(cfg.ServerURL, logger),
		limiter: NewLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds, logger),
		log:     logger.With().Str("component", "gateway").Logger(),
	}

	mux := http.NewServeMux()
	g.routes(mux)

	g.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.WithRequestID(api.WithLogging(g.log, mux)),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return g
}

func (g *Gateway) routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", g.route(false, validateUserCreate))
	mux.HandleFunc("GET /users", g.route(false))
	mux.HandleFunc("GET /users/{id}", g.route(false, pathIDCheck))
	mux.HandleFunc("PATCH /users/{id}", g.route(false, pathIDCheck, validateUserPatch))
	mux.HandleFunc("DELETE /users/{id}", g.route(false, pathIDCheck))

	mux.HandleFunc("POST /items", g.route(true, validateItemCreate))
	mux.HandleFunc("GET /items", g.route(true, checkPagination))
	mux.HandleFunc("GET /items/search", g.route(false, checkPagination))
	mux.HandleFunc("GET /items/{id}", g.route(true, pathIDCheck))
	mux.HandleFunc("PATCH /items/{id}", g.route(true, pathIDCheck, validateItemPatch))
	mux.HandleFunc("POST /items/{id}/comment", g.route(true, pathIDCheck, validateCommentCreate))

	mux.HandleFunc("POST /bookings", g.route(true, validateBookingCreate))
	mux.HandleFunc("GET /bookings", g.route(true, checkState, checkPagination))
	mux.HandleFunc("GET /bookings/owner", g.route(true, checkState, checkPagination))
	mux.HandleFunc("GET /bookings/export", g.route(true))
	mux.HandleFunc("GET /bookings/{id}", g.route(true, pathIDCheck))
	mux.HandleFunc("PATCH /bookings/{id}", g.route(true, pathIDCheck, validateApprovedParam))

	mux.HandleFunc("POST /requests", g.route(true, validateRequestCreate))
	mux.HandleFunc("GET /requests", g.route(true))
	mux.HandleFunc("GET /requests/all", g.route(true, checkPagination))
	mux.HandleFunc("GET /requests/{id}", g.route(true, pathIDCheck))
}

func pathIDCheck(r *http.Request) error {
	return requirePathID(r, "id")
}

// route builds a handler that rate-limits the caller, runs the shape
// checks, and forwards on success.
func (g *Gateway) route(userScoped bool, checks ...func(*http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if userScoped {
			id, err := requireUserID(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			key = "user:" + id
		}

		if !g.limiter.Allow(r.Context(), key) {
			metrics.IncRateLimited()
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		for _, check := range checks {
			if err := check(r); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		g.client.Forward(w, r)
	}
}

// callerKey falls back to the remote host for routes that do not
// require the user header.
func callerKey(r *http.Request) string {
	if id := r.Header.Get(userIDHeader); id != "" {
		return "user:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

// Handler exposes the configured handler chain for tests.
func (g *Gateway) Handler() http.Handler {
	return g.server.Handler
}

func (g *Gateway) Start() error {
	g.log.Info().Str("addr", g.server.Addr).Msg("gateway listening")
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
