// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/fitgrit/internal/utils"
)

// isAjaxRequest reports whether the request carries the header the frontend
// sets on every fetch call. API endpoints refuse plain form posts and
// cross-site navigations that cannot set custom headers.
func isAjaxRequest(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// ensureCSRFCookie returns the caller's pre-auth CSRF token, issuing the
// cookie when the request does not carry one yet. The token is mirrored into
// the login/register forms; the API handlers then require the submitted copy
// to match the cookie (double-submit check).
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := utils.RandomHex(64)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return token
}

// verifyCSRFCookie runs the double-submit check for pre-auth API calls:
// the token posted in the body must equal the one in the CSRF cookie.
func verifyCSRFCookie(r *http.Request, submitted string) bool {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" || submitted == "" {
		return false
	}

	return tokensEqual(cookie.Value, submitted)
}

// verifySessionCSRF checks a state-changing form submission from an
// authenticated page against the per-session token.
func verifySessionCSRF(identity utils.Identity, submitted string) bool {
	if identity.CSRFToken == "" || submitted == "" {
		return false
	}

	return tokensEqual(identity.CSRFToken, submitted)
}

func tokensEqual(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string, rememberMe bool) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if rememberMe {
		// only remember-me cookies survive the browser session
		cookie.MaxAge = int(h.auth.RememberMeDuration.Seconds())
	}

	http.SetCookie(w, cookie)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
