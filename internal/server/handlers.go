package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/kriskwiatkowski/mlkem-prime-roots/internal/errors"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/nttconst"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/orchestration"
)

// ConstantsResponse is the JSON payload returned by /constants.
type ConstantsResponse struct {
	Q        uint64   `json:"q"`
	N        uint64   `json:"n"`
	Zeta     uint64   `json:"zeta"`
	Forward  []uint64 `json:"forward,omitempty"`
	Inverse  []uint64 `json:"inverse,omitempty"`
	Twiddles []uint64 `json:"twiddles,omitempty"`
	Duration string   `json:"duration"`
	Error    string   `json:"error,omitempty"`
}

// RootsResponse is the JSON payload returned by /roots.
type RootsResponse struct {
	P        uint64   `json:"p"`
	Count    int      `json:"count"`
	Roots    []uint64 `json:"roots"`
	Duration string   `json:"duration"`
}

// ErrorResponse is the standardized JSON error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RequestParseError carries the HTTP status a parameter-parsing failure
// should map to.
type RequestParseError struct {
	Message    string
	StatusCode int
}

// Error returns the parse error message.
func (e RequestParseError) Error() string { return e.Message }

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleConstants processes requests to derive the full NTT constant set for
// a field. It parses the query parameters 'q', 'n' and 'zeta' (falling back
// to the configured defaults), derives the power tables and twiddle schedule,
// and returns everything in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleConstants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params, err := s.parseConstantsParams(r)
	if err != nil {
		s.metrics.RecordDerivation("constants", "error")
		s.writeParseError(w, err)
		return
	}

	zeta, err := orchestration.ResolveZeta(params)
	if err != nil {
		s.metrics.RecordDerivation("constants", "error")
		if errors.Is(err, apperrors.ErrNoRoot) {
			s.writeErrorResponse(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("no primitive %dth root of unity exists modulo %d", params.N, params.Q))
			return
		}
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	n := int(params.N)
	forward, inverse, err := nttconst.BuildTablesContext(ctx, zeta, params.Q, n, s.progressObs, 0, 1)
	var twiddles []uint64
	if err == nil {
		twiddles, err = nttconst.TwiddleScheduleContext(ctx, zeta, params.Q, n, s.progressObs, 2)
	}
	duration := time.Since(start)

	resp := ConstantsResponse{
		Q:        params.Q,
		N:        params.N,
		Zeta:     zeta,
		Duration: duration.String(),
	}
	if err != nil {
		s.metrics.RecordDerivation("constants", "error")
		resp.Error = err.Error()
	} else {
		s.metrics.RecordDerivation("constants", "ok")
		resp.Forward = forward
		resp.Inverse = inverse
		resp.Twiddles = twiddles
	}

	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleRoots processes requests to discover primitive roots of a prime
// field. It parses the query parameters 'p' (the prime, required) and
// 'count' (defaults to the configured root count).
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleRoots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	p, count, err := s.parseRootsParams(r)
	if err != nil {
		s.metrics.RecordDerivation("roots", "error")
		s.writeParseError(w, err)
		return
	}

	start := time.Now()
	roots := nttconst.FindPrimitiveRoots(p, count)
	duration := time.Since(start)

	s.metrics.RecordDerivation("roots", "ok")
	s.writeJSONResponse(w, http.StatusOK, RootsResponse{
		P:        p,
		Count:    count,
		Roots:    roots,
		Duration: duration.String(),
	})
}

// parseConstantsParams extracts and validates the field parameters from a
// /constants request. Absent parameters fall back to the configured
// defaults; an absent 'zeta' requests derivation.
//
// Returns:
//   - nttconst.Params: The validated parameters.
//   - error: A RequestParseError if parsing or validation fails.
func (s *Server) parseConstantsParams(r *http.Request) (nttconst.Params, error) {
	query := r.URL.Query()

	q, err := parseUintParam(query.Get("q"), s.cfg.Q)
	if err != nil {
		return nttconst.Params{}, RequestParseError{Message: "Invalid 'q' parameter: must be a positive integer", StatusCode: http.StatusBadRequest}
	}
	n, err := parseUintParam(query.Get("n"), s.cfg.N)
	if err != nil {
		return nttconst.Params{}, RequestParseError{Message: "Invalid 'n' parameter: must be a positive integer", StatusCode: http.StatusBadRequest}
	}
	zeta, err := parseUintParam(query.Get("zeta"), 0)
	if err != nil {
		return nttconst.Params{}, RequestParseError{Message: "Invalid 'zeta' parameter: must be a non-negative integer", StatusCode: http.StatusBadRequest}
	}

	if q > s.securityConfig.MaxQ {
		return nttconst.Params{}, RequestParseError{
			Message:    fmt.Sprintf("Value of 'q' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxQ),
			StatusCode: http.StatusBadRequest,
		}
	}
	if n > s.securityConfig.MaxN {
		return nttconst.Params{}, RequestParseError{
			Message:    fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxN),
			StatusCode: http.StatusBadRequest,
		}
	}

	params := nttconst.Params{Q: q, N: n, Zeta: zeta}
	if err := params.Validate(); err != nil {
		return nttconst.Params{}, RequestParseError{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	return params, nil
}

// parseRootsParams extracts and validates the parameters from a /roots
// request.
//
// Returns:
//   - p: The prime modulus.
//   - count: The number of roots to discover.
//   - err: A RequestParseError if parsing or validation fails.
func (s *Server) parseRootsParams(r *http.Request) (p uint64, count int, err error) {
	query := r.URL.Query()

	pStr := query.Get("p")
	if pStr == "" {
		return 0, 0, RequestParseError{Message: "Missing 'p' parameter", StatusCode: http.StatusBadRequest}
	}
	p, parseErr := strconv.ParseUint(pStr, 10, 64)
	if parseErr != nil {
		return 0, 0, RequestParseError{Message: "Invalid 'p' parameter: must be a positive integer", StatusCode: http.StatusBadRequest}
	}
	if p > s.securityConfig.MaxQ {
		return 0, 0, RequestParseError{
			Message:    fmt.Sprintf("Value of 'p' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxQ),
			StatusCode: http.StatusBadRequest,
		}
	}
	if !modmath.IsPrime(p) {
		return 0, 0, RequestParseError{Message: fmt.Sprintf("'p' must be prime, got %d", p), StatusCode: http.StatusBadRequest}
	}

	count = s.cfg.RootCount
	if countStr := query.Get("count"); countStr != "" {
		parsed, parseErr := strconv.Atoi(countStr)
		if parseErr != nil || parsed <= 0 {
			return 0, 0, RequestParseError{Message: "Invalid 'count' parameter: must be a positive integer", StatusCode: http.StatusBadRequest}
		}
		count = parsed
	}
	if count > s.securityConfig.MaxRootCount {
		return 0, 0, RequestParseError{
			Message:    fmt.Sprintf("Value of 'count' exceeds maximum allowed (%d)", s.securityConfig.MaxRootCount),
			StatusCode: http.StatusBadRequest,
		}
	}

	return p, count, nil
}

// parseUintParam parses an optional unsigned query parameter, returning the
// fallback when absent.
func parseUintParam(value string, fallback uint64) (uint64, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseUint(value, 10, 64)
}

// writeParseError maps a parameter error to its HTTP response.
func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	var parseErr RequestParseError
	if errors.As(err, &parseErr) {
		s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
