package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/wordbench/internal/logger"
	"github.com/bastiangx/wordbench/pkg/config"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultHTTPAddr is the address served when none is configured.
const DefaultHTTPAddr = ":7000"

const shutdownTimeout = 5 * time.Second

// HTTPServer serves the autocomplete endpoint used by browser frontends.
type HTTPServer struct {
	indices *suggest.Set
	config  *config.Config
	addr    string
	log     *log.Logger
}

// NewHTTPServer creates an HTTP server on addr, falling back to the
// configured address and then to DefaultHTTPAddr.
func NewHTTPServer(indices *suggest.Set, cfg *config.Config, addr string) *HTTPServer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if addr == "" {
		addr = cfg.Server.HTTPAddr
	}
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	return &HTTPServer{
		indices: indices,
		config:  cfg,
		addr:    addr,
		log:     logger.New("http"),
	}
}

// Addr returns the address the server listens on.
func (h *HTTPServer) Addr() string {
	return h.addr
}

// Handler returns the routes wrapped with request ids and CORS headers.
func (h *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /autocomplete", h.handleAutocomplete)
	mux.HandleFunc("GET /stats", h.handleStats)
	mux.HandleFunc("GET /health", h.handleHealth)
	return h.withRequestID(allowCORS(mux))
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (h *HTTPServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", h.addr, err)
	}
	return h.ServeListener(ctx, ln)
}

// ServeListener serves on an existing listener until ctx is cancelled.
func (h *HTTPServer) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Infof("Listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	h.log.Debug("Server stopped")
	return nil
}

func (h *HTTPServer) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	idx, reqErr := resolveIndex(h.indices, query.Get("index"))
	if reqErr != nil {
		h.writeError(w, r, reqErr)
		return
	}

	limit := h.config.CLI.DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, badRequest("invalid limit %q", raw))
			return
		}
		if n == 0 {
			h.writeJSON(w, http.StatusOK, []string{})
			return
		}
		limit = n
	}
	limit = clampLimit(limit, h.config.CLI.DefaultLimit, h.config.Server.MaxLimit)

	raw := query.Get("query")
	if raw == "" {
		h.writeJSON(w, http.StatusOK, []string{})
		return
	}
	prefix, reqErr := checkPrefix(raw, h.config.Server)
	if reqErr != nil {
		h.writeError(w, r, reqErr)
		return
	}
	if filtered(prefix, h.config.Server) {
		h.writeJSON(w, http.StatusOK, []string{})
		return
	}

	h.writeJSON(w, http.StatusOK, idx.Suggest(prefix, limit))
}

func (h *HTTPServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.indices.Stats())
}

func (h *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, e *requestError) {
	h.log.Debug("Request failed", "path", r.URL.Path, "code", e.code, "error", e.msg)
	h.writeJSON(w, e.code, CompletionError{ID: w.Header().Get(requestIDHeader), Error: e.msg, Code: e.code})
}

func (h *HTTPServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Writing response: %v", err)
	}
}

const requestIDHeader = "X-Request-Id"

func (h *HTTPServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug("Handled", "id", id, "method", r.Method, "url", r.URL.String(), "took", time.Since(start))
	})
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
