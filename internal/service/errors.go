package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")

	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordNoUpper    = errors.New("password has no uppercase letter")
	ErrPasswordNoLower    = errors.New("password has no lowercase letter")
	ErrPasswordNoDigit    = errors.New("password has no number")
	ErrPasswordsMismatch  = errors.New("passwords do not match")
	ErrWrongPassword      = errors.New("wrong password")
	ErrNameTooShort       = errors.New("name is too short")
	ErrNameInvalidChars   = errors.New("name contains invalid characters")
	ErrEmailAlreadyTaken  = errors.New("email address already registered")
	ErrUnknownLogCategory = errors.New("unknown log category")
)

// AccountLockedError is returned by Login while the lockout window from too
// many failed attempts is still open. Until is when the account unlocks.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.Until.Format(time.RFC3339))
}

// AsAccountLocked unwraps err into an *AccountLockedError when possible.
func AsAccountLocked(err error) (*AccountLockedError, bool) {
	var locked *AccountLockedError
	ok := errors.As(err, &locked)
	return locked, ok
}
