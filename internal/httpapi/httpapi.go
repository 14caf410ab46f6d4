// Package httpapi exposes the prediction tools and the MCP JSON-RPC endpoint over HTTP
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/richard-senior/hoops/internal/config"
	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/protocol"
	"github.com/richard-senior/hoops/pkg/server"
	"github.com/richard-senior/hoops/pkg/store"
	"github.com/richard-senior/hoops/pkg/tools"
	"github.com/richard-senior/hoops/pkg/transport"
)

// maxBodyBytes bounds request bodies, pasted HTML tables can be large
const maxBodyBytes = 8 << 20

// Handler contains dependencies for HTTP handlers
type Handler struct {
	tools *tools.Toolbox
	rpc   *server.Server
}

// requestLog sends chi's access log lines through the application logger
type requestLog struct{}

func (requestLog) Print(v ...any) {
	logger.Info(fmt.Sprint(v...))
}

// NewRouter builds the HTTP routes
func NewRouter(cfg *config.Config, tb *tools.Toolbox, rpc *server.Server) http.Handler {
	h := &Handler{tools: tb, rpc: rpc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: requestLog{}, NoColor: true}))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", h.Predict)
		r.Post("/predict/batch", h.PredictBatch)
		r.Get("/teams", h.ListTeams)
		r.Post("/import", h.ImportStats)
	})
	r.Post("/rpc", h.RPC)
	return r
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"service":      server.Name,
		"modelVersion": hoops.ModelVersion,
	})
}

// Predict runs one matchup
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req tools.PredictRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.tools.Predict(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// PredictBatch runs several matchups, failures are reported per matchup
func (h *Handler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var req tools.BatchRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.tools.PredictBatch(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListTeams returns the imported teams
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tools.ListTeams(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ImportStats imports a statistics page or pasted table
func (h *Handler) ImportStats(w http.ResponseWriter, r *http.Request) {
	var req tools.ImportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.tools.ImportStats(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// RPC handles one MCP JSON-RPC request. Protocol errors travel in the body with
// status 200, notifications get 204.
func (h *Handler) RPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	req, err := protocol.ParseJsonRpcRequest(body)
	if err != nil {
		respondJSON(w, http.StatusOK, protocol.NewJsonRpcErrorResponse(protocol.ErrParse, err.Error(), nil, nil))
		return
	}
	resp := h.rpc.HandleRequest(r.Context(), req)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return false
	}
	return true
}

// statusFor maps tool errors to HTTP status codes
func statusFor(err error) int {
	var se *transport.StatusError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case tools.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, transport.ErrCircuitOpen), errors.Is(err, tools.ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.As(err, &se):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		logger.Error("Request failed", err.Error())
	}
	var ve *hoops.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, status, map[string]any{"error": err.Error(), "validation": ve})
		return
	}
	respondError(w, status, err.Error())
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to write response", err.Error())
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
