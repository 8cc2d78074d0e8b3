package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/metrics"
	"github.com/agbru/fibdrv/internal/service"
	"github.com/agbru/fibdrv/internal/sysmon"
)

// handleHealth responds with a liveness payload and a runtime snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Runtime:   metrics.ReadRuntime(),
		System:    sysmon.Sample(r.Context()),
	})
}

// handleAlgorithms returns the registered engine names as a JSON array.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"algorithms": s.service.Algorithms(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.ServeHTTP(w, r)
}

// handleFib computes F(n) for the 'n' and 'algo' query parameters.
//
// Request errors (bad or out-of-range n, unknown engine) produce an
// ErrorResponse. Engine failures produce a Response whose Error field is set:
// 422 for a capacity overflow, 503 for a timeout, 500 otherwise.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, algo, err := parseFibParams(r)
	if err != nil {
		var parseErr ParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	result, err := s.service.Calculate(ctx, algo, n)
	switch {
	case errors.Is(err, service.ErrMaxValueExceeded),
		errors.Is(err, service.ErrUnknownAlgorithm),
		errors.Is(err, apperrors.ErrInvalidArgument):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSONResponse(w, statusFor(err), buildFibResponse(n, algo, result, err))
}

// statusFor maps an engine error to an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case apperrors.IsCapacityOverflow(err):
		return http.StatusUnprocessableEntity
	case apperrors.IsContextError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseFibParams extracts n and algo from the query string. algo defaults to
// the fast engine.
func parseFibParams(r *http.Request) (n int64, algo string, err error) {
	q := r.URL.Query()
	nStr := q.Get("n")
	if nStr == "" {
		return 0, "", ParseError{
			Message:    "Missing 'n' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	n, parseErr := strconv.ParseInt(nStr, 10, 64)
	if parseErr != nil || n < 0 {
		return 0, "", ParseError{
			Message:    "Invalid 'n' parameter: must be a non-negative integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	algo = q.Get("algo")
	if algo == "" {
		algo = fibonacci.AlgoFast
	}

	return n, algo, nil
}

func buildFibResponse(n int64, algo string, result fibonacci.Result, err error) Response {
	resp := Response{
		N:         n,
		ElapsedNS: result.Elapsed.Nanoseconds(),
		Algorithm: algo,
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Result = result.Value.String()
	resp.Digits = result.Value.Len()
	return resp
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.logger.Debug("request rejected",
		logging.Int("status", statusCode),
		logging.String("message", message))
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
