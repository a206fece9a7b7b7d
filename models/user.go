package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, credential-related data and the per-account
// login-attempt lockout state. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// ID is the unique identifier of the user. It doubles as the storage key
	// of the user document.
	ID string `json:"id"`

	// Email is the unique user login identifier. Stored lower-cased and
	// trimmed; uniqueness is enforced case-insensitively at registration.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived value, never plaintext.
	PasswordHash string `json:"password"`

	// FirstName and LastName are display names. Non-sensitive.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is stamped by the user repository on every save.
	UpdatedAt time.Time `json:"updated_at"`

	// LastLogin holds the time of the last successful login, nil before the
	// first one.
	LastLogin *time.Time `json:"last_login"`

	// IsActive marks the account as usable. Deactivated accounts are refused
	// at login. Accounts are never hard-deleted.
	IsActive bool `json:"is_active"`

	// LoginAttempts counts consecutive failed logins. Reset to zero on
	// success.
	LoginAttempts int `json:"login_attempts"`

	// LockedUntil is set when LoginAttempts reaches the configured maximum;
	// login is refused until this time has passed. Nil when not locked.
	LockedUntil *time.Time `json:"locked_until"`

	Preferences Preferences `json:"preferences"`
	Profile     Profile     `json:"profile"`

	// Version is the document version observed when the user was loaded.
	// Carried back on save so the store can reject lost updates. Never
	// serialized into the document itself.
	Version int64 `json:"-"`
}

// Preferences holds per-user display and localization settings, populated
// with application defaults at registration.
type Preferences struct {
	WeightUnit    string `json:"weight_unit"`
	HeightUnit    string `json:"height_unit"`
	Timezone      string `json:"timezone"`
	Notifications bool   `json:"notifications"`
}

// Profile holds optional body metrics and goal settings edited on the
// profile page.
type Profile struct {
	// Height in the user's preferred height unit; zero means unset.
	Height float64 `json:"height"`

	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`

	// ActivityLevel is one of sedentary/light/moderate/active.
	ActivityLevel string `json:"activity_level"`

	// Goal is one of lose/maintain/gain.
	Goal string `json:"goal"`

	// GoalWeight and GoalDate describe the target the dashboard tracks
	// progress against. Zero values mean no goal is set.
	GoalWeight float64 `json:"goal_weight"`
	GoalDate   string  `json:"goal_date"`
}

// FullName returns the display name shown in the navigation bar.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsLocked reports whether the account lockout window is still open at the
// given time.
func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
