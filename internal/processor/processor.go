package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/tools"
)

// Error codes written to the output document
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidInput   = "invalid_input"
	CodeFailed         = "prediction_failed"
	CodeInternal       = "internal_error"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Code       string                 `json:"code"`
		Message    string                 `json:"message"`
		Validation *hoops.ValidationError `json:"validation,omitempty"`
	} `json:"error"`
}

// RequestError is returned alongside the error document so callers can set an exit status
type RequestError struct {
	Code string
	Err  error
}

func (e *RequestError) Error() string {
	return e.Code + ": " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// createErrorResponse creates an error response document and the matching error
func createErrorResponse(code string, cause error) ([]byte, error) {
	var response ErrorResponse
	response.Error.Code = code
	response.Error.Message = cause.Error()
	var ve *hoops.ValidationError
	if errors.As(cause, &ve) {
		response.Error.Validation = ve
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return nil, err
	}
	return out, &RequestError{Code: code, Err: cause}
}

// ProcessRequest runs one prediction request document. A document with a
// "matchups" array is a batch, anything else is a single matchup.
// On failure the returned bytes hold an error document and err is a *RequestError.
func ProcessRequest(ctx context.Context, tb *tools.Toolbox, input []byte) ([]byte, error) {
	input = bytes.TrimSpace(input)
	if len(input) == 0 {
		return createErrorResponse(CodeInvalidRequest, errors.New("empty input"))
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(input, &probe); err != nil {
		logger.Error("Failed to parse input JSON", err)
		return createErrorResponse(CodeInvalidRequest, fmt.Errorf("invalid JSON: %w", err))
	}

	var result any
	var err error
	if _, ok := probe["matchups"]; ok {
		var req tools.BatchRequest
		if err := json.Unmarshal(input, &req); err != nil {
			return createErrorResponse(CodeInvalidRequest, fmt.Errorf("invalid batch request: %w", err))
		}
		logger.Info("Processing batch of", len(req.Matchups), "matchups")
		result, err = tb.PredictBatch(ctx, req)
	} else {
		var req tools.PredictRequest
		if err := json.Unmarshal(input, &req); err != nil {
			return createErrorResponse(CodeInvalidRequest, fmt.Errorf("invalid predict request: %w", err))
		}
		logger.Info("Processing single matchup")
		result, err = tb.Predict(ctx, req)
	}
	if err != nil {
		logger.Error("Prediction failed", err)
		if tools.IsInvalidInput(err) {
			return createErrorResponse(CodeInvalidInput, err)
		}
		return createErrorResponse(CodeFailed, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal response to JSON", err)
		return createErrorResponse(CodeInternal, errors.New("failed to create response"))
	}
	return append(out, '\n'), nil
}
