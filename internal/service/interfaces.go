package service

import (
	"context"

	"github.com/MKhiriev/fitgrit/models"
)

// RegisterInput carries the raw registration form values. Validation happens
// inside the service so every transport (JSON API, form POST) shares it.
type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginInput carries the raw login form values plus the client metadata
// recorded on the session.
type LoginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
}

// LoginResult is the outcome of a successful login: the authenticated user
// and the freshly created session record.
type LoginResult struct {
	User    models.User
	Session models.Session
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (models.User, error)
	Login(ctx context.Context, input LoginInput) (LoginResult, error)

	// ValidateSession loads the session record for the given id. Expired
	// records are deleted on sight and reported as not found.
	ValidateSession(ctx context.Context, sessionID string) (models.Session, error)

	// Logout destroys the session record. Logging out an absent session is
	// a no-op success.
	Logout(ctx context.Context, sessionID string) error

	GetUser(ctx context.Context, userID string) (models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, profile models.Profile, preferences models.Preferences) (models.User, error)
}

type LogService interface {
	ListEntries(ctx context.Context, userID, category, date string, limit int) ([]models.LogEntry, error)
	AddEntry(ctx context.Context, userID, category string, entry models.LogEntry) (models.LogEntry, error)
	DeleteEntry(ctx context.Context, userID, category, entryID string) error

	// WeightChartSeries returns the user's weight entries from the last
	// `days` calendar days as chart points in ascending date order.
	WeightChartSeries(ctx context.Context, userID string, days int) ([]models.ChartPoint, error)
}

type RecipeService interface {
	ListRecipes(ctx context.Context, userID string, includePublic bool) ([]models.Recipe, error)
	AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID string) error
}

type StatsService interface {
	// Dashboard aggregates the user's recent activity into the figures shown
	// on the dashboard page.
	Dashboard(ctx context.Context, user models.User) (DashboardStats, error)
}
