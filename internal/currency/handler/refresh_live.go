package handler

import (
	"net/http"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	Status        string     `json:"status" example:"refreshed"`
	UpdatedCodes  []string   `json:"updated_codes,omitempty" example:"EUR,USD"`
	SkipReason    string     `json:"skip_reason,omitempty" example:"cooldown"`
	NextAllowedAt *time.Time `json:"next_allowed_at,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// RefreshLive godoc
// @Summary Trigger a live-rate refresh
// @Description Attempts a provider fetch now; reports a skip reason and the next allowed time when quota or cooldown declines it
// @Tags Currencies
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 500 {object} errorResponse
// @Router /admin/currencies/refresh-live [post]
func (h *Handler) RefreshLive(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.RefreshLive(r.Context())
	if err != nil {
		msg := "couldn't run the live refresh"
		logrus.WithError(err).WithField("handler", "RefreshLive").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := RefreshResponse{Status: string(outcome.State)}
	switch outcome.State {
	case domain.RefreshDone:
		res.UpdatedCodes = outcome.UpdatedCodes
	case domain.RefreshSkipped:
		res.SkipReason = string(outcome.SkipReason)
		next := outcome.NextAllowedAt
		res.NextAllowedAt = &next
	case domain.RefreshFailed:
		res.Error = outcome.Err.Error()
	}
	writeJSON(w, http.StatusOK, res)
}
