package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/currency"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) List(ctx context.Context, includeInactive bool) (currency.Overview, error) {
	args := m.Called(ctx, includeInactive)
	ov, _ := args.Get(0).(currency.Overview)
	return ov, args.Error(1)
}

func (m *MockService) Get(ctx context.Context, code string) (currency.CurrencyView, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).(currency.CurrencyView)
	return v, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, p currency.CreateParams) (domain.CurrencyRate, error) {
	args := m.Called(ctx, p)
	rec, _ := args.Get(0).(domain.CurrencyRate)
	return rec, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, code string, p currency.UpdateParams) (currency.CurrencyView, error) {
	args := m.Called(ctx, code, p)
	v, _ := args.Get(0).(currency.CurrencyView)
	return v, args.Error(1)
}

func (m *MockService) BulkUpdateRates(ctx context.Context, rates map[string]decimal.Decimal) (domain.CascadeReport, error) {
	args := m.Called(ctx, rates)
	report, _ := args.Get(0).(domain.CascadeReport)
	return report, args.Error(1)
}

func (m *MockService) RefreshLive(ctx context.Context) (domain.RefreshOutcome, error) {
	args := m.Called(ctx)
	outcome, _ := args.Get(0).(domain.RefreshOutcome)
	return outcome, args.Error(1)
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func usdView() currency.CurrencyView {
	return currency.CurrencyView{
		CurrencyRate: domain.CurrencyRate{
			Code:           "USD",
			Name:           "US Dollar",
			Symbol:         "$",
			DecimalPlaces:  2,
			SymbolPosition: domain.SymbolBefore,
			RateMode:       domain.ModeLive,
			IsActive:       true,
		},
		EffectiveRate: mustDec("35.20"),
	}
}

func withCodeParam(req *http.Request, code string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", code)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// --- List ---

func TestHandler_List_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	ov := currency.Overview{
		Currencies: []currency.CurrencyView{usdView()},
		Quota:      domain.QuotaWindow{MonthKey: "2026-08", RequestsMade: 42, MonthlyLimit: 250},
		Schedule:   domain.RefreshSchedule{IntervalMinutes: 180, NextAllowedAt: time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC)},
	}
	mockService.On("List", mock.Anything, false).Return(ov, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/currencies", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Currencies, 1)
	require.Equal(t, "USD", res.Currencies[0].Code)
	require.Equal(t, "35.2", res.Currencies[0].EffectiveRate.String())
	require.Equal(t, 208, res.Quota.Remaining)
	require.Equal(t, 180, res.Meta.IntervalMinutes)
	require.Equal(t, 250, res.Meta.MonthlyLimit)
	mockService.AssertExpectations(t)
}

func TestHandler_List_IncludeInactive(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("List", mock.Anything, true).Return(currency.Overview{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/currencies?include_inactive=true", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_List_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("List", mock.Anything, false).Return(currency.Overview{}, errors.New("db down")).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/currencies", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "couldn't load the currency overview", ej.Error)
}

// --- Get ---

func TestHandler_Get_NormalizesCode(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Get", mock.Anything, "USD").Return(usdView(), nil).Once()

	req := withCodeParam(httptest.NewRequest(http.MethodGet, "/admin/currencies/usd", nil), " usd ")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res CurrencyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "USD", res.Code)
	require.Equal(t, "live", res.RateMode)
	mockService.AssertExpectations(t)
}

func TestHandler_Get_NotFound(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Get", mock.Anything, "XXX").Return(currency.CurrencyView{}, domain.ErrCurrencyNotFound).Once()

	req := withCodeParam(httptest.NewRequest(http.MethodGet, "/admin/currencies/XXX", nil), "XXX")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "currency not found", ej.Error)
}

// --- Create ---

func TestHandler_Create_InvalidJSON(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/admin/currencies", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_Create_UnknownField(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	body := `{"code":"GBP","name":"British Pound","symbol":"£","exchange_rate":"44.10","extra":1}`
	req := httptest.NewRequest(http.MethodPost, "/admin/currencies", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_Create_ValidationError(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	vErr := &currency.ValidationError{Fields: map[string]string{"exchange_rate": "must be strictly positive"}}
	mockService.On("Create", mock.Anything, mock.Anything).Return(domain.CurrencyRate{}, vErr).Once()

	body := `{"code":"GBP","name":"British Pound","symbol":"£","exchange_rate":"0","decimal_places":2,"symbol_position":"before"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/currencies", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var ej errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "validation failed", ej.Error)
	require.Equal(t, "must be strictly positive", ej.Fields["exchange_rate"])
}

func TestHandler_Create_Conflict(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Create", mock.Anything, mock.Anything).Return(domain.CurrencyRate{}, domain.ErrCurrencyExists).Once()

	body := `{"code":"USD","name":"US Dollar","symbol":"$","exchange_rate":"35.20","decimal_places":2,"symbol_position":"before"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/currencies", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandler_Create_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	want := currency.CreateParams{
		Code:           "GBP",
		Name:           "British Pound",
		Symbol:         "£",
		ExchangeRate:   mustDec("44.10"),
		DecimalPlaces:  2,
		SymbolPosition: domain.SymbolBefore,
	}
	rec := domain.CurrencyRate{
		Code:           "GBP",
		Name:           "British Pound",
		Symbol:         "£",
		DecimalPlaces:  2,
		SymbolPosition: domain.SymbolBefore,
		ManualRate:     decimal.NewNullDecimal(mustDec("44.10")),
		RateMode:       domain.ModeManual,
		IsActive:       true,
	}
	mockService.On("Create", mock.Anything, want).Return(rec, nil).Once()

	body := `{"code":" gbp ","name":" British Pound ","symbol":"£","exchange_rate":"44.10","decimal_places":2,"symbol_position":"before"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/currencies", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var res CurrencyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "GBP", res.Code)
	require.Equal(t, "manual", res.RateMode)
	require.Equal(t, "44.1", res.EffectiveRate.String())
	mockService.AssertExpectations(t)
}

// --- Update ---

func TestHandler_Update_LegacyExchangeRateAlias(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Update", mock.Anything, "USD", mock.Anything).Return(usdView(), nil).Run(func(args mock.Arguments) {
		p, ok := args.Get(2).(currency.UpdateParams)
		require.True(t, ok)
		require.NotNil(t, p.ManualRate)
		require.Equal(t, "36.00", p.ManualRate.StringFixed(2))
	}).Once()

	body := `{"exchange_rate":"36.00"}`
	req := withCodeParam(httptest.NewRequest(http.MethodPut, "/admin/currencies/USD", bytes.NewBufferString(body)), "USD")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_Update_ManualRateWinsOverAlias(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Update", mock.Anything, "USD", mock.Anything).Return(usdView(), nil).Run(func(args mock.Arguments) {
		p, _ := args.Get(2).(currency.UpdateParams)
		require.NotNil(t, p.ManualRate)
		require.Equal(t, "37.00", p.ManualRate.StringFixed(2))
	}).Once()

	body := `{"exchange_rate":"36.00","manual_rate":"37.00"}`
	req := withCodeParam(httptest.NewRequest(http.MethodPut, "/admin/currencies/USD", bytes.NewBufferString(body)), "USD")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_Update_ModeAndPositionConverted(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Update", mock.Anything, "USD", mock.Anything).Return(usdView(), nil).Run(func(args mock.Arguments) {
		p, _ := args.Get(2).(currency.UpdateParams)
		require.NotNil(t, p.RateMode)
		require.Equal(t, domain.ModeManual, *p.RateMode)
		require.NotNil(t, p.SymbolPosition)
		require.Equal(t, domain.SymbolAfter, *p.SymbolPosition)
	}).Once()

	body := `{"rate_mode":"manual","symbol_position":"after"}`
	req := withCodeParam(httptest.NewRequest(http.MethodPut, "/admin/currencies/USD", bytes.NewBufferString(body)), "USD")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_Update_NotFound(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("Update", mock.Anything, "XXX", mock.Anything).Return(currency.CurrencyView{}, domain.ErrCurrencyNotFound).Once()

	req := withCodeParam(httptest.NewRequest(http.MethodPut, "/admin/currencies/XXX", bytes.NewBufferString(`{}`)), "XXX")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

// --- BulkUpdate ---

func TestHandler_BulkUpdate_EmptyRates(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/bulk-rates", bytes.NewBufferString(`{"rates":{}}`))
	rr := httptest.NewRecorder()

	h.BulkUpdate(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "rates must not be empty", ej.Error)
	mockService.AssertNotCalled(t, "BulkUpdateRates", mock.Anything, mock.Anything)
}

func TestHandler_BulkUpdate_NormalizesCodes(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	report := domain.CascadeReport{TriggerCodes: []string{"EUR", "USD"}, Updated: 184}
	mockService.On("BulkUpdateRates", mock.Anything, mock.Anything).Return(report, nil).Run(func(args mock.Arguments) {
		rates, ok := args.Get(1).(map[string]decimal.Decimal)
		require.True(t, ok)
		require.Contains(t, rates, "USD")
		require.Contains(t, rates, "EUR")
		require.NotContains(t, rates, " usd ")
	}).Once()

	body := `{"rates":{" usd ":"35.20","EUR":"38.75"}}`
	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/bulk-rates", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.BulkUpdate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res BulkUpdateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR", "USD"}, res.UpdatedCodes)
	require.Equal(t, 184, res.EntitiesUpdated)
	mockService.AssertExpectations(t)
}

func TestHandler_BulkUpdate_ValidationError(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	vErr := &currency.ValidationError{Fields: map[string]string{"TRY": "base currency rate cannot be overridden"}}
	mockService.On("BulkUpdateRates", mock.Anything, mock.Anything).Return(domain.CascadeReport{}, vErr).Once()

	body := `{"rates":{"TRY":"2"}}`
	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/bulk-rates", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.BulkUpdate(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var ej errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Contains(t, ej.Fields, "TRY")
}

// --- RefreshLive ---

func TestHandler_RefreshLive_Refreshed(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	outcome := domain.RefreshOutcome{State: domain.RefreshDone, UpdatedCodes: []string{"EUR", "USD"}}
	mockService.On("RefreshLive", mock.Anything).Return(outcome, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/refresh-live", nil)
	rr := httptest.NewRecorder()

	h.RefreshLive(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res RefreshResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "refreshed", res.Status)
	require.Equal(t, []string{"EUR", "USD"}, res.UpdatedCodes)
	require.Empty(t, res.SkipReason)
}

func TestHandler_RefreshLive_Skipped(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	next := time.Date(2026, 8, 14, 13, 0, 0, 0, time.UTC)
	outcome := domain.RefreshOutcome{State: domain.RefreshSkipped, SkipReason: domain.SkipCooldown, NextAllowedAt: next}
	mockService.On("RefreshLive", mock.Anything).Return(outcome, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/refresh-live", nil)
	rr := httptest.NewRecorder()

	h.RefreshLive(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res RefreshResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "skipped", res.Status)
	require.Equal(t, "cooldown", res.SkipReason)
	require.NotNil(t, res.NextAllowedAt)
	require.True(t, res.NextAllowedAt.Equal(next))
}

func TestHandler_RefreshLive_ProviderFailure(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	outcome := domain.RefreshOutcome{State: domain.RefreshFailed, Err: errors.New("provider timeout")}
	mockService.On("RefreshLive", mock.Anything).Return(outcome, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/refresh-live", nil)
	rr := httptest.NewRecorder()

	h.RefreshLive(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res RefreshResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "failed", res.Status)
	require.Equal(t, "provider timeout", res.Error)
}

func TestHandler_RefreshLive_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewCurrencyHandler(mockService)

	mockService.On("RefreshLive", mock.Anything).Return(domain.RefreshOutcome{}, errors.New("boom")).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/currencies/refresh-live", nil)
	rr := httptest.NewRecorder()

	h.RefreshLive(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- AdminContext ---

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) GetProfile(ctx context.Context, adminID uuid.UUID) (domain.AdminProfile, error) {
	args := m.Called(ctx, adminID)
	p, _ := args.Get(0).(domain.AdminProfile)
	return p, args.Error(1)
}

type MockProfileCache struct{ mock.Mock }

func (m *MockProfileCache) Get(adminID uuid.UUID) (domain.AdminProfile, bool) {
	args := m.Called(adminID)
	p, _ := args.Get(0).(domain.AdminProfile)
	return p, args.Bool(1)
}

func (m *MockProfileCache) Set(profile domain.AdminProfile) {
	m.Called(profile)
}

func (m *MockProfileCache) Invalidate(adminID uuid.UUID) {
	m.Called(adminID)
}

func adminEcho(t *testing.T, captured *domain.AdminProfile) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := AdminFromContext(r.Context())
		require.True(t, ok)
		*captured = p
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdminContext_MissingHeader(t *testing.T) {
	cache := new(MockProfileCache)
	repo := new(MockProfileRepository)
	mw := AdminContext(cache, repo)

	req := httptest.NewRequest(http.MethodGet, "/admin/currencies", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	repo.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestAdminContext_CacheHitSkipsStore(t *testing.T) {
	cache := new(MockProfileCache)
	repo := new(MockProfileRepository)
	mw := AdminContext(cache, repo)

	adminID := uuid.New()
	profile := domain.AdminProfile{AdminID: adminID, Email: "ops@turistpass.dev", Role: "admin"}
	cache.On("Get", adminID).Return(profile, true).Once()

	var got domain.AdminProfile
	req := httptest.NewRequest(http.MethodGet, "/admin/currencies", nil)
	req.Header.Set("X-Admin-ID", adminID.String())
	rr := httptest.NewRecorder()

	mw(adminEcho(t, &got)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, adminID, got.AdminID)
	repo.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestAdminContext_CacheMissLoadsAndCaches(t *testing.T) {
	cache := new(MockProfileCache)
	repo := new(MockProfileRepository)
	mw := AdminContext(cache, repo)

	adminID := uuid.New()
	profile := domain.AdminProfile{AdminID: adminID, Email: "ops@turistpass.dev", Role: "admin"}
	cache.On("Get", adminID).Return(domain.AdminProfile{}, false).Once()
	repo.On("GetProfile", mock.Anything, adminID).Return(profile, nil).Once()
	cache.On("Set", mock.Anything).Return().Run(func(args mock.Arguments) {
		p, ok := args.Get(0).(domain.AdminProfile)
		require.True(t, ok)
		require.Equal(t, adminID, p.AdminID)
		require.False(t, p.LoadedAt.IsZero())
	}).Once()

	var got domain.AdminProfile
	req := httptest.NewRequest(http.MethodGet, "/admin/currencies", nil)
	req.Header.Set("X-Admin-ID", adminID.String())
	rr := httptest.NewRecorder()

	mw(adminEcho(t, &got)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, adminID, got.AdminID)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAdminContext_UnknownAdmin(t *testing.T) {
	cache := new(MockProfileCache)
	repo := new(MockProfileRepository)
	mw := AdminContext(cache, repo)

	adminID := uuid.New()
	cache.On("Get", adminID).Return(domain.AdminProfile{}, false).Once()
	repo.On("GetProfile", mock.Anything, adminID).Return(domain.AdminProfile{}, domain.ErrProfileNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/currencies", nil)
	req.Header.Set("X-Admin-ID", adminID.String())
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	cache.AssertNotCalled(t, "Set", mock.Anything)
}
