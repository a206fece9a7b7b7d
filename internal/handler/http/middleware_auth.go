package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/internal/utils"
)

// auth is an HTTP middleware that enforces session-cookie authentication.
//
// It reads the session cookie, validates the session record via
// [service.AuthService.ValidateSession], and — on success — stores the
// caller's identity (user id, session id, per-session CSRF token) in the
// request context under [utils.IdentityCtxKey] before delegating to the next
// handler.
//
// Requests without a valid session are redirected to the landing page, with
// any stale session cookie cleared. The session record alone decides
// validity; an expired record is deleted by the service during validation,
// so a remember-me cookie keeps working across server restarts while a
// deleted or expired session does not.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		session, err := h.services.AuthService.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, store.ErrNoSessionWasFound) {
				log.Err(err).Msg("session validation ended with error")
			}
			clearSessionCookie(w)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		identity := utils.Identity{
			UserID:    session.UserID,
			SessionID: session.ID,
			CSRFToken: session.CSRFToken,
		}
		ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
