package server

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/bastiangx/wordbench/internal/utils"
	"github.com/bastiangx/wordbench/pkg/config"
	"github.com/bastiangx/wordbench/pkg/dictionary"
	"github.com/bastiangx/wordbench/pkg/suggest"
)

// requestError is a failure that maps onto an HTTP status code.
type requestError struct {
	msg  string
	code int
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) *requestError {
	return &requestError{msg: fmt.Sprintf(format, args...), code: http.StatusBadRequest}
}

// resolveIndex returns the index named kind, or the first loaded one when
// kind is empty.
func resolveIndex(indices *suggest.Set, kind string) (suggest.PrefixIndex, *requestError) {
	if kind == "" {
		kinds := indices.Kinds()
		if len(kinds) == 0 {
			return nil, &requestError{msg: "no index loaded", code: http.StatusInternalServerError}
		}
		kind = string(kinds[0])
	}
	idx, ok := indices.Get(suggest.Kind(kind))
	if !ok {
		return nil, &requestError{msg: fmt.Sprintf("unknown index %q", kind), code: http.StatusNotFound}
	}
	return idx, nil
}

// clampLimit applies the default and the configured maximum.
func clampLimit(limit, fallback, maxLimit int) int {
	if limit < 1 {
		limit = fallback
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// checkPrefix normalizes prefix and validates its length in runes.
func checkPrefix(prefix string, cfg config.ServerConfig) (string, *requestError) {
	prefix = dictionary.Normalize(prefix)
	n := utf8.RuneCountInString(prefix)
	if n == 0 {
		return "", badRequest("missing 'p' parameter")
	}
	if n < cfg.MinPrefix {
		return "", badRequest("prefix must be at least %d characters", cfg.MinPrefix)
	}
	if cfg.MaxPrefix > 0 && n > cfg.MaxPrefix {
		return "", badRequest("prefix exceeds maximum length of %d characters", cfg.MaxPrefix)
	}
	return prefix, nil
}

// filtered reports whether prefix is rejected by the input filter.
func filtered(prefix string, cfg config.ServerConfig) bool {
	return cfg.EnableFilter && !utils.IsValidInput(prefix)
}
