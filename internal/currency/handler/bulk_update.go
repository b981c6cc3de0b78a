package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BulkUpdateRequest struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

type BulkUpdateResponse struct {
	UpdatedCodes    []string `json:"updated_codes" example:"EUR,USD"`
	EntitiesUpdated int      `json:"entities_updated" example:"184"`
}

// BulkUpdate godoc
// @Summary Bulk manual-rate save
// @Description Pins every listed currency to the given manual rate and recalculates all affected prices in one pass
// @Tags Currencies
// @Accept json
// @Produce json
// @Param request body BulkUpdateRequest true "Manual rates by currency code"
// @Success 200 {object} BulkUpdateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/currencies/bulk-rates [post]
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req BulkUpdateRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Rates) == 0 {
		writeError(w, http.StatusBadRequest, "rates must not be empty")
		return
	}

	rates := make(map[string]decimal.Decimal, len(req.Rates))
	for code, rate := range req.Rates {
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}

	report, err := h.service.BulkUpdateRates(r.Context(), rates)
	if err != nil {
		if writeServiceError(w, err) {
			return
		}
		msg := "couldn't apply the bulk rate save"
		logrus.WithError(err).WithField("handler", "BulkUpdate").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, BulkUpdateResponse{
		UpdatedCodes:    report.TriggerCodes,
		EntitiesUpdated: report.Updated,
	})
}
