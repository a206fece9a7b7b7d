package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/service"
	"github.com/MKhiriev/fitgrit/internal/utils"
	"github.com/MKhiriev/fitgrit/models"
)

type registerRequest struct {
	service.RegisterInput
	CSRFToken string `json:"csrf_token"`
}

type loginRequest struct {
	service.LoginInput
	CSRFToken string `json:"csrf_token"`
}

// apiRegister handles POST /api/register. The security checks (AJAX header,
// CSRF double-submit) run before any business logic.
func (h *Handler) apiRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if !isAjaxRequest(r) {
		utils.WriteJSON(w, models.NewAPIResponse(false, "AJAX requests only", nil), http.StatusForbidden)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.NewAPIResponse(false, "Invalid request body", nil), http.StatusBadRequest)
		return
	}

	if !verifyCSRFCookie(r, req.CSRFToken) {
		log.Warn().Msg("registration with bad csrf token")
		utils.WriteJSON(w, models.NewAPIResponse(false, "Security token mismatch", nil), http.StatusForbidden)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req.RegisterInput)
	if err != nil {
		message, status := h.registrationMessage(err)
		utils.WriteJSON(w, models.NewAPIResponse(false, message, nil), status)
		return
	}

	utils.WriteJSON(w, models.NewAPIResponse(true, "Registration successful", map[string]any{
		"user_id": user.ID,
		"message": "Registration successful! You can now log in with your credentials.",
	}), http.StatusCreated)
}

// apiLogin handles POST /api/login. On success the session cookie is set;
// with remember-me it persists for the extended session lifetime.
func (h *Handler) apiLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if !isAjaxRequest(r) {
		utils.WriteJSON(w, models.NewAPIResponse(false, "AJAX requests only", nil), http.StatusForbidden)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.NewAPIResponse(false, "Invalid request body", nil), http.StatusBadRequest)
		return
	}

	if !verifyCSRFCookie(r, req.CSRFToken) {
		log.Warn().Msg("login with bad csrf token")
		utils.WriteJSON(w, models.NewAPIResponse(false, "Security token mismatch", nil), http.StatusForbidden)
		return
	}

	input := req.LoginInput
	input.IPAddress = clientIP(r)
	input.UserAgent = r.UserAgent()

	result, err := h.services.AuthService.Login(r.Context(), input)
	if err != nil {
		message, status := loginMessage(err)
		utils.WriteJSON(w, models.NewAPIResponse(false, message, nil), status)
		return
	}

	h.setSessionCookie(w, result.Session.ID, input.RememberMe)

	utils.WriteJSON(w, models.NewAPIResponse(true, "Login successful", map[string]any{
		"user_id":    result.User.ID,
		"session_id": result.Session.ID,
		"user_name":  result.User.FullName(),
	}), http.StatusOK)
}

// logout destroys the session and clears the cookie. Idempotent.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
		if err := h.services.AuthService.Logout(r.Context(), identity.SessionID); err != nil {
			log.Err(err).Msg("logout ended with error")
		}
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// clientIP resolves the client address recorded on the session. Only the
// first hop of X-Forwarded-For is trusted; the rest of the chain is
// client-controlled.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hop, _, _ := strings.Cut(forwarded, ",")
		if hop = strings.TrimSpace(hop); hop != "" {
			return hop
		}
	}
	return r.RemoteAddr
}
