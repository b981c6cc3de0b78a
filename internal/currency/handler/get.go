package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Get godoc
// @Summary Get one currency
// @Tags Currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} CurrencyResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/currencies/{code} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	view, err := h.service.Get(r.Context(), code)
	if err != nil {
		if writeServiceError(w, err) {
			return
		}
		msg := "couldn't load the currency"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Get", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toCurrencyResponse(view))
}
