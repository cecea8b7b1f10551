package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func TestUnknownPlayer(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "manual_scores_player_id_fkey"}
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"foreign key", fk, scoring.ErrValidation},
		{"wrapped foreign key", fmt.Errorf("batch: %w", fk), scoring.ErrValidation},
	}
	for _, tt := range tests {
		got := unknownPlayer(tt.err, "manual score")
		if tt.want == nil {
			if got != nil {
				t.Errorf("%s: unknownPlayer() = %v, want nil", tt.name, got)
			}
			continue
		}
		if !errors.Is(got, tt.want) {
			t.Errorf("%s: unknownPlayer() = %v, want %v", tt.name, got, tt.want)
		}
	}

	unique := &pgconn.PgError{Code: "23505"}
	if got := unknownPlayer(unique, "squad"); got != unique {
		t.Errorf("unique violation = %v, want it unchanged", got)
	}
	if errors.Is(unknownPlayer(unique, "squad"), scoring.ErrValidation) {
		t.Error("unique violation reported as validation")
	}
}
