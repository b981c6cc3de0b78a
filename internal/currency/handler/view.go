package handler

import (
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/currency"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type CurrencyResponse struct {
	Code            string              `json:"code" example:"USD"`
	Name            string              `json:"name" example:"US Dollar"`
	Symbol          string              `json:"symbol" example:"$"`
	DecimalPlaces   int                 `json:"decimal_places" example:"2"`
	SymbolPosition  string              `json:"symbol_position" example:"before"`
	LiveRate        decimal.NullDecimal `json:"live_rate"`
	LiveRateAt      *time.Time          `json:"live_rate_at"`
	ManualRate      decimal.NullDecimal `json:"manual_rate"`
	ManualRateAt    *time.Time          `json:"manual_rate_at"`
	ManualExpiresAt *time.Time          `json:"manual_expires_at"`
	ManualExpired   bool                `json:"manual_expired"`
	RateMode        string              `json:"rate_mode" example:"live"`
	EffectiveRate   decimal.Decimal     `json:"effective_rate" example:"35.20"`
	IsActive        bool                `json:"is_active"`
	IsDefault       bool                `json:"is_default"`
	IsAdminDisplay  bool                `json:"is_admin_display"`
	LastFetchStatus string              `json:"last_fetch_status" example:"ok"`
	LastFetchError  string              `json:"last_fetch_error,omitempty"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func toCurrencyResponse(v currency.CurrencyView) CurrencyResponse {
	return CurrencyResponse{
		Code:            v.Code,
		Name:            v.Name,
		Symbol:          v.Symbol,
		DecimalPlaces:   v.DecimalPlaces,
		SymbolPosition:  string(v.SymbolPosition),
		LiveRate:        v.LiveRate,
		LiveRateAt:      v.LiveRateAt,
		ManualRate:      v.ManualRate,
		ManualRateAt:    v.ManualRateAt,
		ManualExpiresAt: v.ManualExpiresAt,
		ManualExpired:   v.ManualExpired,
		RateMode:        string(v.RateMode),
		EffectiveRate:   v.EffectiveRate,
		IsActive:        v.IsActive,
		IsDefault:       v.IsDefault,
		IsAdminDisplay:  v.IsAdminDisplay,
		LastFetchStatus: string(v.LastFetchStatus),
		LastFetchError:  v.LastFetchError,
		UpdatedAt:       v.UpdatedAt,
	}
}

type QuotaResponse struct {
	MonthKey      string     `json:"month_key" example:"2026-08"`
	MonthRequests int        `json:"month_requests" example:"42"`
	MonthLimit    int        `json:"month_limit" example:"250"`
	Remaining     int        `json:"remaining" example:"208"`
	LastSuccess   *time.Time `json:"last_success"`
	LastError     string     `json:"last_error,omitempty"`
}

type ScheduleResponse struct {
	IntervalMinutes int       `json:"interval_minutes" example:"180"`
	NextAllowedAt   time.Time `json:"next_allowed_at"`
	MonthlyLimit    int       `json:"monthly_limit" example:"250"`
}

func toQuotaResponse(w domain.QuotaWindow, st domain.FetchState) QuotaResponse {
	return QuotaResponse{
		MonthKey:      w.MonthKey,
		MonthRequests: w.RequestsMade,
		MonthLimit:    w.MonthlyLimit,
		Remaining:     w.Remaining(),
		LastSuccess:   st.LastSuccessAt,
		LastError:     st.LastError,
	}
}
