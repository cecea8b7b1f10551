// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	} `json:"error"`
}

// WriteJSON writes raw JSON bytes to the response with cache and ETag headers.
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept-Encoding")
	setCacheHeaders(w, ttl, cacheHit)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// WriteNotModified sends a 304 with the matching ETag.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends a structured JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorDetail(w, status, code, message, "")
}

// WriteErrorDetail sends a structured error with additional detail.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Detail = detail
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// StatusFor maps a scoring error kind to an HTTP status.
func StatusFor(err error) int {
	switch scoring.Kind(err) {
	case "not_allowed", "not_coach":
		return http.StatusForbidden
	case "not_found":
		return http.StatusNotFound
	case "validation":
		return http.StatusBadRequest
	case "invalid_state", "no_data":
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WriteServiceError sends err as a structured error. Internal errors never
// expose their message; storage detail is logged by the service instead.
func WriteServiceError(w http.ResponseWriter, err error) {
	kind := scoring.Kind(err)
	status := StatusFor(err)
	code := strings.ToUpper(kind)
	if status == http.StatusInternalServerError {
		WriteError(w, status, code, "Internal server error")
		return
	}
	WriteErrorDetail(w, status, code, messages[kind], err.Error())
}

var messages = map[string]string{
	"not_allowed":   "Only the match's assigned scorer may do this",
	"not_coach":     "This action requires the coach role",
	"not_found":     "Resource not found",
	"validation":    "Invalid request",
	"invalid_state": "Match is not in a state that allows this",
	"no_data":       "Nothing to approve",
}

// WriteJSONObject marshals a Go value to JSON and writes it.
// Used for responses that are not served from the cache.
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func setCacheHeaders(w http.ResponseWriter, ttl time.Duration, cacheHit bool) {
	maxAge := int(ttl.Seconds())
	swr := maxAge / 2
	if cacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, swr))
}
