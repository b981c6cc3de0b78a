package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/botanoz/turistpassfinal-sub000/internal/currency"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateRequest struct {
	Code           string          `json:"code" example:"USD"`
	Name           string          `json:"name" example:"US Dollar"`
	Symbol         string          `json:"symbol" example:"$"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate" example:"35.20"`
	DecimalPlaces  int             `json:"decimal_places" example:"2"`
	SymbolPosition string          `json:"symbol_position" example:"before"`
}

// Create godoc
// @Summary Onboard a currency
// @Description Creates a currency record seeded in manual mode with the given rate
// @Tags Currencies
// @Accept json
// @Produce json
// @Param request body CreateRequest true "New currency"
// @Success 201 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/currencies [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreateRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := currency.CreateParams{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:           strings.TrimSpace(req.Name),
		Symbol:         strings.TrimSpace(req.Symbol),
		ExchangeRate:   req.ExchangeRate,
		DecimalPlaces:  req.DecimalPlaces,
		SymbolPosition: domain.SymbolPosition(req.SymbolPosition),
	}

	rec, err := h.service.Create(r.Context(), params)
	if err != nil {
		if writeServiceError(w, err) {
			return
		}
		msg := "couldn't create the currency"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Create", "code": params.Code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	view := currency.CurrencyView{CurrencyRate: rec, EffectiveRate: rec.ManualRate.Decimal}
	writeJSON(w, http.StatusCreated, toCurrencyResponse(view))
}
