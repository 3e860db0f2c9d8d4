package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bastiangx/wordbench/internal/utils"
	"github.com/bastiangx/wordbench/pkg/config"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for word completions.
type Server struct {
	indices      *suggest.Set
	config       *config.Config
	reader       io.Reader
	writer       io.Writer
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a completion server using stdin/stdout for IPC.
func NewServer(indices *suggest.Set, cfg *config.Config) *Server {
	return NewServerWithIO(indices, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a completion server reading requests from r and
// writing responses to w.
func NewServerWithIO(indices *suggest.Set, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		indices: indices,
		config:  cfg,
		reader:  r,
		writer:  w,
		encoder: msgpack.NewEncoder(w),
	}
}

// Start announces readiness and serves requests until the input ends.
// It returns nil on a clean end of input.
func (s *Server) Start() error {
	log.Debug("Starting IPC server", "indices", s.indices.Kinds())
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	decoder := msgpack.NewDecoder(bufio.NewReader(s.reader))
	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("IPC input closed after %d requests", s.requestCount)
				return nil
			}
			s.sendError("", "invalid msgpack request", http.StatusBadRequest)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "":
		s.handleCompletion(req)
	case actionStats:
		s.sendResponse(StatsResponse{ID: req.ID, Status: "ok", Indices: s.indices.Stats()})
	case actionHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), http.StatusBadRequest)
	}
}

func (s *Server) handleCompletion(req Request) {
	prefix, reqErr := checkPrefix(req.Prefix, s.config.Server)
	if reqErr != nil {
		log.Debugf("Rejected request %s: %s", req.ID, reqErr.msg)
		s.sendError(req.ID, reqErr.msg, reqErr.code)
		return
	}

	idx, reqErr := resolveIndex(s.indices, req.Index)
	if reqErr != nil {
		s.sendError(req.ID, reqErr.msg, reqErr.code)
		return
	}

	if filtered(prefix, s.config.Server) {
		log.Debugf("Prefix '%s' filtered out", prefix)
		s.sendResponse(CompletionResponse{ID: req.ID, Suggestions: []CompletionSuggestion{}})
		return
	}

	limit := clampLimit(req.Limit, defaultLimit, s.config.Server.MaxLimit)

	start := time.Now()
	results := idx.Complete(prefix, limit)
	elapsed := time.Since(start)

	ranks := utils.RankList(len(results))
	suggestions := make([]CompletionSuggestion, len(results))
	for i, r := range results {
		suggestions[i] = CompletionSuggestion{Word: r.Word, Frequency: r.Frequency, Rank: ranks[i]}
	}

	log.Debugf("Took [ %v ] for prefix '%s' on %s", elapsed, prefix, req.Index)
	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) sendResponse(response any) {
	if err := s.send(response); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}
