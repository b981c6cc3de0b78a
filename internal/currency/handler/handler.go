package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/botanoz/turistpassfinal-sub000/internal/currency"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// CurrencyService is the slice of *currency.Service the handlers call.
type CurrencyService interface {
	List(ctx context.Context, includeInactive bool) (currency.Overview, error)
	Get(ctx context.Context, code string) (currency.CurrencyView, error)
	Create(ctx context.Context, p currency.CreateParams) (domain.CurrencyRate, error)
	Update(ctx context.Context, code string, p currency.UpdateParams) (currency.CurrencyView, error)
	BulkUpdateRates(ctx context.Context, rates map[string]decimal.Decimal) (domain.CascadeReport, error)
	RefreshLive(ctx context.Context) (domain.RefreshOutcome, error)
}

type Handler struct {
	service CurrencyService
}

func NewCurrencyHandler(service CurrencyService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorMsg})
}

// writeServiceError maps domain and validation errors to status codes;
// per-field messages go back verbatim so the console can render them inline.
func writeServiceError(w http.ResponseWriter, err error) bool {
	var vErr *currency.ValidationError
	switch {
	case errors.As(err, &vErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "validation failed", Fields: vErr.Fields})
		return true
	case errors.Is(err, domain.ErrCurrencyNotFound):
		writeError(w, http.StatusNotFound, "currency not found")
		return true
	case errors.Is(err, domain.ErrCurrencyExists):
		writeError(w, http.StatusConflict, "currency already exists")
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
