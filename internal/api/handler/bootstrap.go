package handler

import (
	"net/http"
	"time"
)

const (
	batchesKey = "batches"
	batchesTTL = time.Hour
)

// GetBatches returns the club's age groups for profile forms.
// @Summary List batches
// @Tags roster
// @Produce json
// @Success 200 {array} roster.Batch
// @Success 304
// @Router /batches [get]
func (h *Handler) GetBatches(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, batchesKey, "batches", func() (any, time.Duration, error) {
		batches, err := h.roster.Batches(r.Context())
		return batches, batchesTTL, err
	})
}
