package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{scoring.ErrNotAllowed, http.StatusForbidden},
		{scoring.ErrNotCoach, http.StatusForbidden},
		{fmt.Errorf("%w: match 3", scoring.ErrNotFound), http.StatusNotFound},
		{scoring.ErrValidation, http.StatusBadRequest},
		{scoring.ErrInvalidState, http.StatusConflict},
		{scoring.ErrNoData, http.StatusConflict},
		{scoring.ErrInternal, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, fmt.Errorf("%w: match 9 is completed", scoring.ErrInvalidState))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "INVALID_STATE" {
		t.Errorf("code = %q, want INVALID_STATE", body.Error.Code)
	}
	if body.Error.Detail != "invalid_state: match 9 is completed" {
		t.Errorf("detail = %q", body.Error.Detail)
	}
}

func TestWriteServiceErrorHidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, errors.New("pq: relation does not exist"))

	var body ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Error.Code != "INTERNAL" || body.Error.Detail != "" {
		t.Errorf("error = %+v, want INTERNAL without detail", body.Error)
	}
}
