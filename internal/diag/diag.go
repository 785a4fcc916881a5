// Package diag is the sink for non-fatal inconsistencies: stale fetch
// responses, reorder keys that no longer resolve, unsupported moves.
// The TUI runs on the alternate screen, so nothing here ever writes to
// stdout; events go to a log file when one is configured and are
// discarded otherwise.
package diag

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Reporter struct {
	log zerolog.Logger
}

// New builds a reporter writing to path. An empty path (and an unset
// OFFERSHEET_LOG) discards all events.
func New(path string) *Reporter {
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv("OFFERSHEET_LOG"))
	}
	var w io.Writer = io.Discard
	if path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			w = f
		}
	}
	return NewWithWriter(w)
}

// NewWithWriter is the test seam.
func NewWithWriter(w io.Writer) *Reporter {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log := zerolog.New(w).With().Timestamp().Str("service", "offersheet").Logger()
	return &Reporter{log: log}
}

// Nop discards everything. Useful as a default so callers never need
// nil checks.
func Nop() *Reporter {
	return NewWithWriter(io.Discard)
}

func (r *Reporter) StaleResponse(query string, generation, current uint64) {
	r.log.Debug().
		Str("event", "stale_response").
		Str("query", query).
		Uint64("generation", generation).
		Uint64("current", current).
		Msg("discarded superseded page response")
}

func (r *Reporter) FetchFailure(query string, page int, err error) {
	r.log.Warn().
		Str("event", "fetch_failure").
		Str("query", query).
		Int("page", page).
		Err(err).
		Msg("page fetch failed")
}

func (r *Reporter) KeyResolutionFailure(domain, key string) {
	r.log.Warn().
		Str("event", "key_resolution_failure").
		Str("domain", domain).
		Str("key", key).
		Msg("reorder abandoned: key no longer resolves")
}

func (r *Reporter) UnsupportedMove(activeDomain, activeKey, overDomain, overKey string) {
	r.log.Info().
		Str("event", "unsupported_move").
		Str("active_domain", activeDomain).
		Str("active_key", activeKey).
		Str("over_domain", overDomain).
		Str("over_key", overKey).
		Msg("rejected move")
}

func (r *Reporter) Event(name string) *zerolog.Event {
	return r.log.Debug().Str("event", name)
}
