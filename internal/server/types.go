package server

import (
	"github.com/agbru/fibdrv/internal/metrics"
	"github.com/agbru/fibdrv/internal/sysmon"
)

// Response is the JSON body returned by /fib.
type Response struct {
	// N is the requested index.
	N int64 `json:"n"`
	// Result is F(n) in decimal. It is omitted if the computation failed.
	Result string `json:"result,omitempty"`
	// Digits is the length of Result.
	Digits int `json:"digits,omitempty"`
	// ElapsedNS is the engine time in nanoseconds.
	ElapsedNS int64 `json:"elapsed_ns"`
	// Algorithm is the engine that served the request.
	Algorithm string `json:"algorithm"`
	// Error contains the error message if the computation failed.
	Error string `json:"error,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// HealthResponse is the JSON body returned by /health.
type HealthResponse struct {
	Status    string                  `json:"status"`
	Timestamp int64                   `json:"timestamp"`
	Runtime   metrics.RuntimeSnapshot `json:"runtime"`
	System    sysmon.Stats            `json:"system"`
}

// ParseError represents a query parameter error with its HTTP status.
type ParseError struct {
	Message    string
	StatusCode int
}

func (e ParseError) Error() string {
	return e.Message
}
