package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/adapters"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type profileCtxKey struct{}

// AdminFromContext returns the profile attached by AdminContext.
func AdminFromContext(ctx context.Context) (domain.AdminProfile, bool) {
	p, ok := ctx.Value(profileCtxKey{}).(domain.AdminProfile)
	return p, ok
}

// AdminContext resolves the acting administrator from the X-Admin-ID header,
// going through the TTL cache before the profile store, and attaches the
// profile to the request context.
func AdminContext(cache adapters.ProfileCache, profiles adapters.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID, err := uuid.Parse(r.Header.Get("X-Admin-ID"))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "missing or invalid X-Admin-ID header")
				return
			}

			profile, ok := cache.Get(adminID)
			if !ok {
				profile, err = profiles.GetProfile(r.Context(), adminID)
				if errors.Is(err, domain.ErrProfileNotFound) {
					writeError(w, http.StatusUnauthorized, "unknown administrator")
					return
				}
				if err != nil {
					logrus.WithError(err).WithField("admin_id", adminID).Error("Failed to load admin profile")
					writeError(w, http.StatusInternalServerError, "couldn't resolve the administrator")
					return
				}
				profile.LoadedAt = time.Now()
				cache.Set(profile)
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), profileCtxKey{}, profile)))
		})
	}
}
