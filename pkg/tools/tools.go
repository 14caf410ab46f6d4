// Package tools implements the hoops MCP tools. Each tool has a protocol.Tool
// definition, a typed method on Toolbox (shared with the HTTP API) and a
// Handle method taking the raw tools/call arguments.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/richard-senior/hoops/internal/config"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/protocol"
	"github.com/richard-senior/hoops/pkg/store"
	"github.com/richard-senior/hoops/pkg/transport"
)

// ErrInvalidArguments marks errors caused by the caller's input
var ErrInvalidArguments = errors.New("invalid arguments")

// ErrNoStore is returned by tools that need imported teams when no store is configured
var ErrNoStore = errors.New("no team store configured")

// ProfileStore is the part of store.Store the tools use
type ProfileStore interface {
	SaveProfiles(ctx context.Context, source string, profiles []hoops.TeamProfile) (*store.Import, error)
	FindProfile(ctx context.Context, name string) (*store.StoredProfile, error)
	ListProfiles(ctx context.Context) ([]store.StoredProfile, error)
	ListImports(ctx context.Context) ([]store.Import, error)
}

// PageFetcher downloads statistics pages
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*transport.Page, error)
}

// HandlerFunc handles the arguments of one tools/call
type HandlerFunc func(ctx context.Context, params any) (any, error)

// Definition pairs a tool with its handler
type Definition struct {
	Tool    protocol.Tool
	Handler HandlerFunc
}

// Toolbox holds what the tools need. Store and fetcher may be nil, tools
// needing them then fail with a clear error.
type Toolbox struct {
	store   ProfileStore
	fetcher PageFetcher
	cfg     *config.Config
}

func NewToolbox(cfg *config.Config, st ProfileStore, f PageFetcher) *Toolbox {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Toolbox{store: st, fetcher: f, cfg: cfg}
}

// Definitions lists every tool in the order they are advertised
func (tb *Toolbox) Definitions() []Definition {
	return []Definition{
		{PredictTool(), tb.HandlePredict},
		{PredictBatchTool(), tb.HandlePredictBatch},
		{ImportStatsTool(), tb.HandleImportStats},
		{ListTeamsTool(), tb.HandleListTeams},
		{StatsMarkdownTool(), tb.HandleStatsMarkdown},
	}
}

// IsInvalidInput reports whether err was caused by the request rather than by
// the server or a remote source
func IsInvalidInput(err error) bool {
	var ve *hoops.ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidArguments) || errors.Is(err, store.ErrNotFound)
}

func invalidArgs(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArguments, fmt.Sprintf(format, args...))
}

// decodeArgs converts the generic tools/call arguments into a typed request
func decodeArgs(params any, out any) error {
	if params == nil {
		params = map[string]any{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return invalidArgs("%v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return invalidArgs("%v", err)
	}
	return nil
}
