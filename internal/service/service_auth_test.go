// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/internal/utils"
)

func newTestAuthService(t *testing.T) (*authService, *memUserRepository, *memSessionRepository) {
	t.Helper()

	users := newMemUserRepository()
	sessions := newMemSessionRepository()

	auth := config.Auth{
		SessionTimeout:     time.Hour,
		RememberMeDuration: 30 * 24 * time.Hour,
		PasswordMinLength:  8,
		MaxLoginAttempts:   5,
		LockoutDuration:    15 * time.Minute,
	}
	defaults := config.Defaults{WeightUnit: "lbs", HeightUnit: "in", Timezone: "America/New_York"}

	service := NewAuthService(users, sessions, auth, defaults, logger.Nop()).(*authService)
	return service, users, sessions
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:           "john.doe@example.com",
		Password:        "Str0ngPass",
		ConfirmPassword: "Str0ngPass",
		FirstName:       "John",
		LastName:        "Doe",
	}
}

func TestAuthService_Register(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "john.doe@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.Equal(t, "lbs", user.Preferences.WeightUnit)
	assert.Equal(t, "moderate", user.Profile.ActivityLevel)
	assert.Equal(t, "maintain", user.Profile.Goal)
	assert.True(t, user.Preferences.Notifications)
	assert.True(t, utils.VerifyPassword("Str0ngPass", user.PasswordHash))
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(input *RegisterInput)
		wantErr error
	}{
		{
			name:    "empty email",
			mutate:  func(input *RegisterInput) { input.Email = "" },
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "malformed email",
			mutate:  func(input *RegisterInput) { input.Email = "not an email" },
			wantErr: ErrInvalidEmail,
		},
		{
			name: "mismatched confirmation",
			mutate: func(input *RegisterInput) {
				input.ConfirmPassword = "Different1"
			},
			wantErr: ErrPasswordsMismatch,
		},
		{
			name: "password too short",
			mutate: func(input *RegisterInput) {
				input.Password = "Sh0rt"
				input.ConfirmPassword = "Sh0rt"
			},
			wantErr: ErrPasswordTooShort,
		},
		{
			name: "password without uppercase",
			mutate: func(input *RegisterInput) {
				input.Password = "weakpass1"
				input.ConfirmPassword = "weakpass1"
			},
			wantErr: ErrPasswordNoUpper,
		},
		{
			name: "password without lowercase",
			mutate: func(input *RegisterInput) {
				input.Password = "WEAKPASS1"
				input.ConfirmPassword = "WEAKPASS1"
			},
			wantErr: ErrPasswordNoLower,
		},
		{
			name: "password without digit",
			mutate: func(input *RegisterInput) {
				input.Password = "WeakPassword"
				input.ConfirmPassword = "WeakPassword"
			},
			wantErr: ErrPasswordNoDigit,
		},
		{
			name:    "name too short",
			mutate:  func(input *RegisterInput) { input.FirstName = "J" },
			wantErr: ErrNameTooShort,
		},
		{
			name:    "name with digits",
			mutate:  func(input *RegisterInput) { input.LastName = "D0e" },
			wantErr: ErrNameInvalidChars,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, _, _ := newTestAuthService(t)

			input := validRegisterInput()
			test.mutate(&input)

			_, err := service.Register(context.Background(), input)
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestAuthService_Register_HyphenatedName(t *testing.T) {
	service, _, _ := newTestAuthService(t)

	input := validRegisterInput()
	input.FirstName = "Mary-Jane"
	input.LastName = "O'Brien Jr."

	_, err := service.Register(context.Background(), input)
	assert.NoError(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	// same address in a different case is still a duplicate
	input := validRegisterInput()
	input.Email = "John.Doe@Example.COM"
	_, err = service.Register(ctx, input)
	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
}

func TestAuthService_Login(t *testing.T) {
	service, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	result, err := service.Login(ctx, LoginInput{
		Email:    "JOHN.DOE@example.com", // lookup is case-insensitive
		Password: "Str0ngPass",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.ID, result.User.ID)
	require.NotNil(t, result.User.LastLogin)
	assert.NotEmpty(t, result.Session.ID)
	assert.NotEmpty(t, result.Session.CSRFToken)

	stored, err := sessions.GetSession(ctx, result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, stored.UserID)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "WrongPass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "Str0ngPass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	registered.IsActive = false
	require.NoError(t, users.SaveUser(ctx, registered))

	_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_Login_LockoutAfterMaxAttempts(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()

	start := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return start }

	registered, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	wrong := LoginInput{Email: "john.doe@example.com", Password: "WrongPass1"}
	for i := 0; i < 5; i++ {
		_, err = service.Login(ctx, wrong)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	locked, err := users.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, locked.LoginAttempts)
	require.NotNil(t, locked.LockedUntil)
	assert.Equal(t, start.Add(15*time.Minute), *locked.LockedUntil)

	// the correct password does not open a locked account
	_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	lockedErr, ok := AsAccountLocked(err)
	require.True(t, ok)
	assert.Equal(t, start.Add(15*time.Minute), lockedErr.Until)

	// once the window passes the login succeeds and the counter resets
	service.now = func() time.Time { return start.Add(16 * time.Minute) }
	result, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.User.LoginAttempts)
	assert.Nil(t, result.User.LockedUntil)
}

func TestAuthService_Login_SuccessResetsAttempts(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "WrongPass1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)

	saved, err := users.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Zero(t, saved.LoginAttempts)
}

func TestAuthService_Login_SessionLifetime(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	_, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	short, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), short.Session.ExpiresAt)

	long, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass", RememberMe: true})
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), long.Session.ExpiresAt)
}

func TestAuthService_ValidateSession(t *testing.T) {
	service, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	result, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)

	session, err := service.ValidateSession(ctx, result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, session.ID)

	_, err = service.ValidateSession(ctx, "")
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)

	_, err = service.ValidateSession(ctx, "sess_unknown")
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)

	// advance past the expiry: validation fails and the record is removed
	service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = service.ValidateSession(ctx, result.Session.ID)
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)

	_, err = sessions.GetSession(ctx, result.Session.ID)
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)
}

func TestAuthService_ValidateSession_RememberMeOutlivesShortSession(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	_, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	short, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)
	long, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass", RememberMe: true})
	require.NoError(t, err)

	// two hours in, the plain session has timed out but the remember-me
	// session is still accepted
	service.now = func() time.Time { return now.Add(2 * time.Hour) }

	_, err = service.ValidateSession(ctx, short.Session.ID)
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)

	session, err := service.ValidateSession(ctx, long.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, long.Session.ID, session.ID)

	// and it expires once its own extended lifetime passes
	service.now = func() time.Time { return now.Add(31 * 24 * time.Hour) }
	_, err = service.ValidateSession(ctx, long.Session.ID)
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)
}

func TestAuthService_Logout(t *testing.T) {
	service, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	result, err := service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, result.Session.ID))
	_, err = sessions.GetSession(ctx, result.Session.ID)
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound)

	// logging out twice is not an error
	assert.NoError(t, service.Logout(ctx, result.Session.ID))
	assert.NoError(t, service.Logout(ctx, ""))
}

func TestAuthService_ChangePassword(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	err = service.ChangePassword(ctx, registered.ID, "WrongPass1", "NewStr0ngPass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = service.ChangePassword(ctx, registered.ID, "Str0ngPass", "weak")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, service.ChangePassword(ctx, registered.ID, "Str0ngPass", "NewStr0ngPass"))

	_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "Str0ngPass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, LoginInput{Email: "john.doe@example.com", Password: "NewStr0ngPass"})
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	profile := registered.Profile
	profile.Height = 70
	profile.Goal = "lose"
	preferences := registered.Preferences
	preferences.WeightUnit = "kg"

	updated, err := service.UpdateProfile(ctx, registered.ID, profile, preferences)
	require.NoError(t, err)
	assert.Equal(t, float64(70), updated.Profile.Height)
	assert.Equal(t, "lose", updated.Profile.Goal)
	assert.Equal(t, "kg", updated.Preferences.WeightUnit)
}
