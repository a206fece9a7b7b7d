package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/fitgrit/internal/service"
)

// genericErrorMessage hides internal detail from the caller. Storage and
// other unexpected failures are logged server-side and reported with this.
const genericErrorMessage = "An unexpected error occurred. Please try again."

// registrationMessage maps a registration failure to the user-facing message
// and HTTP status. Validation failures name the exact rule that was broken.
func (h *Handler) registrationMessage(err error) (string, int) {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "All fields are required", http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidEmail):
		return "Invalid email format", http.StatusBadRequest
	case errors.Is(err, service.ErrPasswordsMismatch):
		return "Passwords do not match", http.StatusBadRequest
	case errors.Is(err, service.ErrPasswordTooShort):
		return fmt.Sprintf("Password must be at least %d characters long", h.auth.PasswordMinLength), http.StatusBadRequest
	case errors.Is(err, service.ErrPasswordNoUpper):
		return "Password must contain at least one uppercase letter", http.StatusBadRequest
	case errors.Is(err, service.ErrPasswordNoLower):
		return "Password must contain at least one lowercase letter", http.StatusBadRequest
	case errors.Is(err, service.ErrPasswordNoDigit):
		return "Password must contain at least one number", http.StatusBadRequest
	case errors.Is(err, service.ErrNameTooShort):
		return "First and last names must be at least 2 characters", http.StatusBadRequest
	case errors.Is(err, service.ErrNameInvalidChars):
		return "Names can only contain letters, spaces, hyphens, apostrophes, and periods", http.StatusBadRequest
	case errors.Is(err, service.ErrEmailAlreadyTaken):
		return "Email address already registered", http.StatusConflict
	default:
		return genericErrorMessage, http.StatusInternalServerError
	}
}

// loginMessage maps a login failure to the user-facing message and HTTP
// status. Unknown email and wrong password share one message on purpose;
// a locked account reports the unlock time.
func loginMessage(err error) (string, int) {
	if locked, ok := service.AsAccountLocked(err); ok {
		return fmt.Sprintf("Account locked due to multiple failed login attempts. Try again after %s.",
			locked.Until.Format("3:04 PM")), http.StatusForbidden
	}

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Email and password are required", http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidEmail):
		return "Invalid email address", http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password", http.StatusUnauthorized
	case errors.Is(err, service.ErrAccountInactive):
		return "Account is deactivated. Please contact support.", http.StatusForbidden
	default:
		return genericErrorMessage, http.StatusInternalServerError
	}
}

// passwordChangeMessage maps a password-change failure to the inline message
// shown on the profile page.
func (h *Handler) passwordChangeMessage(err error) string {
	if errors.Is(err, service.ErrWrongPassword) {
		return "Current password is incorrect"
	}

	message, status := h.registrationMessage(err)
	if status == http.StatusInternalServerError {
		return genericErrorMessage
	}
	return message
}
