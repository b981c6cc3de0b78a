package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type ListResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
	Quota      QuotaResponse      `json:"quota"`
	Meta       ScheduleResponse   `json:"meta"`
}

// List godoc
// @Summary Currency console overview
// @Description All currency records with effective rates, provider quota usage and the refresh window
// @Tags Currencies
// @Produce json
// @Param include_inactive query bool false "Include deactivated currencies"
// @Success 200 {object} ListResponse
// @Failure 500 {object} errorResponse
// @Router /admin/currencies [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	ov, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		msg := "couldn't load the currency overview"
		logrus.WithError(err).WithField("handler", "List").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := ListResponse{
		Currencies: make([]CurrencyResponse, 0, len(ov.Currencies)),
		Quota:      toQuotaResponse(ov.Quota, ov.FetchState),
		Meta: ScheduleResponse{
			IntervalMinutes: ov.Schedule.IntervalMinutes,
			NextAllowedAt:   ov.Schedule.NextAllowedAt,
			MonthlyLimit:    ov.Quota.MonthlyLimit,
		},
	}
	for _, v := range ov.Currencies {
		res.Currencies = append(res.Currencies, toCurrencyResponse(v))
	}
	writeJSON(w, http.StatusOK, res)
}
