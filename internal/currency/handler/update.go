package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/currency"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UpdateRequest struct {
	Name           *string `json:"name"`
	Symbol         *string `json:"symbol"`
	DecimalPlaces  *int    `json:"decimal_places"`
	SymbolPosition *string `json:"symbol_position"`
	// exchange_rate is the legacy alias the dashboard still sends;
	// manual_rate wins when both are present.
	ExchangeRate    *decimal.Decimal `json:"exchange_rate"`
	ManualRate      *decimal.Decimal `json:"manual_rate"`
	ManualExpiresAt *time.Time       `json:"manual_expires_at"`
	ClearExpiry     bool             `json:"clear_manual_expires_at"`
	LiveRate        *decimal.Decimal `json:"live_rate"`
	RateMode        *string          `json:"rate_mode"`
	IsActive        *bool            `json:"is_active"`
	IsDefault       *bool            `json:"is_default"`
	IsAdminDisplay  *bool            `json:"is_admin_display"`
}

// Update godoc
// @Summary Update a currency
// @Description Partial update of a currency record; a change of the effective rate recalculates every derived price
// @Tags Currencies
// @Accept json
// @Produce json
// @Param code path string true "Currency code"
// @Param request body UpdateRequest true "Fields to update"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/currencies/{code} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req UpdateRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := currency.UpdateParams{
		Name:              req.Name,
		Symbol:            req.Symbol,
		DecimalPlaces:     req.DecimalPlaces,
		ManualRate:        req.ManualRate,
		ManualExpiresAt:   req.ManualExpiresAt,
		ClearManualExpiry: req.ClearExpiry,
		LiveRate:          req.LiveRate,
		IsActive:          req.IsActive,
		IsDefault:         req.IsDefault,
		IsAdminDisplay:    req.IsAdminDisplay,
	}
	if params.ManualRate == nil {
		params.ManualRate = req.ExchangeRate
	}
	if req.SymbolPosition != nil {
		pos := domain.SymbolPosition(*req.SymbolPosition)
		params.SymbolPosition = &pos
	}
	if req.RateMode != nil {
		mode := domain.RateMode(*req.RateMode)
		params.RateMode = &mode
	}

	view, err := h.service.Update(r.Context(), code, params)
	if err != nil {
		if writeServiceError(w, err) {
			return
		}
		msg := "couldn't update the currency"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Update", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toCurrencyResponse(view))
}
