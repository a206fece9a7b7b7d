// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/internal/utils"
	"github.com/MKhiriev/fitgrit/models"
)

// authService is the concrete implementation of AuthService. It handles
// registration, credential verification with login-attempt lockout, and the
// session lifecycle, using repositories for persistence and bcrypt for
// password hashing.
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository

	// auth is the lockout and session-lifetime policy.
	auth config.Auth

	// defaults are the preference values stamped onto new accounts.
	defaults config.Defaults

	idGenerator *utils.UUIDGenerator

	// now is the clock; overridable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with the lockout/session policy from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, sessions store.SessionRepository, auth config.Auth, defaults config.Defaults, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		auth:              auth,
		defaults:          defaults,
		idGenerator:       utils.NewUUIDGenerator(),
		now:               time.Now,
		logger:            logger,
	}
}

// Register creates a new user account.
//
// It validates the form fields (email format, password strength, name shape,
// matching confirmation), rejects duplicate emails case-insensitively, hashes
// the password and persists the user document with default preferences.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if a required field is empty.
//   - ErrInvalidEmail / ErrPasswordsMismatch / a password-rule error /
//     a name-rule error for the specific validation that failed.
//   - ErrEmailAlreadyTaken if the email is already registered.
func (a *authService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	log := logger.FromContext(ctx)

	input = input.sanitized()
	if err := validateRegisterInput(input, a.auth.PasswordMinLength); err != nil {
		log.Warn().Err(err).Str("email", input.Email).Msg("registration rejected")
		return models.User{}, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("registration ended with error: %w", err)
	}

	user := models.User{
		ID:           a.idGenerator.UserID(),
		Email:        store.NormalizeEmail(input.Email),
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
		Preferences: models.Preferences{
			WeightUnit:    a.defaults.WeightUnit,
			HeightUnit:    a.defaults.HeightUnit,
			Timezone:      a.defaults.Timezone,
			Notifications: true,
		},
		Profile: models.Profile{
			ActivityLevel: "moderate",
			Goal:          "maintain",
		},
	}

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Warn().Str("email", user.Email).Msg("registration with already registered email")
			return models.User{}, ErrEmailAlreadyTaken
		}
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", registered.ID).Str("email", registered.Email).Msg("new user registered")
	return registered, nil
}

// Login authenticates the user and creates a session record.
//
// Failure semantics, in check order:
//   - ErrInvalidDataProvided — empty email or password.
//   - ErrInvalidEmail — email fails format validation.
//   - ErrInvalidCredentials — unknown email or wrong password. A wrong
//     password also increments the attempt counter and, at the configured
//     maximum, opens the lockout window.
//   - *AccountLockedError — the lockout window is still open; carries the
//     unlock time. Returned before the password is even checked.
//   - ErrAccountInactive — the account is deactivated.
//
// On success the attempt counter and lock are cleared, LastLogin is stamped,
// and a session is created with the short lifetime, or the remember-me
// lifetime when requested.
func (a *authService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	log := logger.FromContext(ctx)

	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidDataProvided
	}
	if !validEmail(input.Email) {
		return LoginResult{}, ErrInvalidEmail
	}

	user, err := a.userRepository.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", input.Email).Msg("login attempt with non-existent email")
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user lookup ended with error")
		return LoginResult{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	now := a.now()
	if user.IsLocked(now) {
		log.Warn().Str("user_id", user.ID).Time("locked_until", *user.LockedUntil).Msg("login attempt on locked account")
		return LoginResult{}, &AccountLockedError{Until: *user.LockedUntil}
	}

	if !user.IsActive {
		log.Warn().Str("user_id", user.ID).Msg("login attempt on deactivated account")
		return LoginResult{}, ErrAccountInactive
	}

	if !utils.VerifyPassword(input.Password, user.PasswordHash) {
		a.handleFailedLogin(ctx, user, now)
		log.Warn().Str("user_id", user.ID).Int("attempts", user.LoginAttempts+1).Msg("failed login attempt")
		return LoginResult{}, ErrInvalidCredentials
	}

	user.LoginAttempts = 0
	user.LockedUntil = nil
	user.LastLogin = &now
	if err := a.userRepository.SaveUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error saving user after successful login")
		return LoginResult{}, fmt.Errorf("error saving user after login: %w", err)
	}

	session, err := a.createSession(ctx, user.ID, input, now)
	if err != nil {
		return LoginResult{}, err
	}

	log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Bool("remember_me", input.RememberMe).Msg("successful login")
	return LoginResult{User: user, Session: session}, nil
}

// handleFailedLogin increments the attempt counter and opens the lockout
// window once the configured maximum is reached. Persistence errors are
// logged but not surfaced; the caller's credential error takes precedence.
func (a *authService) handleFailedLogin(ctx context.Context, user models.User, now time.Time) {
	log := logger.FromContext(ctx)

	user.LoginAttempts++
	if user.LoginAttempts >= a.auth.MaxLoginAttempts {
		lockedUntil := now.Add(a.auth.LockoutDuration)
		user.LockedUntil = &lockedUntil
		log.Warn().Str("user_id", user.ID).Time("locked_until", lockedUntil).Msg("account locked due to failed login attempts")
	}

	if err := a.userRepository.SaveUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error recording failed login attempt")
	}
}

func (a *authService) createSession(ctx context.Context, userID string, input LoginInput, now time.Time) (models.Session, error) {
	lifetime := a.auth.SessionTimeout
	if input.RememberMe {
		lifetime = a.auth.RememberMeDuration
	}

	session := models.Session{
		ID:        a.idGenerator.SessionID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		IsActive:  true,
		CSRFToken: utils.RandomHex(64),
	}

	if err := a.sessionRepository.CreateSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error creating session")
		return models.Session{}, fmt.Errorf("error creating session: %w", err)
	}

	return session, nil
}

// ValidateSession loads and checks the session record for the given id.
// Inactive records fail; expired records are deleted on sight. Both cases
// (and an absent record) are reported as store.ErrNoSessionWasFound so
// callers need only one "not authenticated" branch.
func (a *authService) ValidateSession(ctx context.Context, sessionID string) (models.Session, error) {
	if sessionID == "" {
		return models.Session{}, store.ErrNoSessionWasFound
	}

	session, err := a.sessionRepository.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}

	if !session.IsActive {
		return models.Session{}, store.ErrNoSessionWasFound
	}

	if session.IsExpired(a.now()) {
		if err := a.sessionRepository.DeleteSession(ctx, sessionID); err != nil {
			logger.FromContext(ctx).Err(err).Str("session_id", sessionID).Msg("error deleting expired session")
		}
		return models.Session{}, store.ErrNoSessionWasFound
	}

	return session, nil
}

// Logout destroys the session record. Idempotent: logging out an absent or
// already-destroyed session succeeds.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := a.sessionRepository.DeleteSession(ctx, sessionID); err != nil {
		logger.FromContext(ctx).Err(err).Str("session_id", sessionID).Msg("error destroying session")
		return fmt.Errorf("error destroying session: %w", err)
	}

	logger.FromContext(ctx).Info().Str("session_id", sessionID).Msg("user logged out")
	return nil
}

func (a *authService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return a.userRepository.GetUser(ctx, userID)
}

// ChangePassword verifies the current password, validates the new one
// against the strength rules, and rewrites the stored hash.
func (a *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.VerifyPassword(currentPassword, user.PasswordHash) {
		log.Warn().Str("user_id", userID).Msg("password change with wrong current password")
		return ErrWrongPassword
	}

	if err := validatePassword(newPassword, a.auth.PasswordMinLength); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user.PasswordHash = hash
	if err := a.userRepository.SaveUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", userID).Msg("error saving new password")
		return fmt.Errorf("error saving new password: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("password updated")
	return nil
}

// UpdateProfile replaces the user's profile and preference sub-records and
// returns the saved user.
func (a *authService) UpdateProfile(ctx context.Context, userID string, profile models.Profile, preferences models.Preferences) (models.User, error) {
	user, err := a.userRepository.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	user.Profile = profile
	user.Preferences = preferences
	if err := a.userRepository.SaveUser(ctx, user); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error saving profile")
		return models.User{}, fmt.Errorf("error saving profile: %w", err)
	}

	return user, nil
}
