// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/service"
	"github.com/MKhiriev/fitgrit/internal/utils"
	"github.com/MKhiriev/fitgrit/models"
)

// basePage carries the fields every page template expects.
type basePage struct {
	AppName   string
	Title     string
	UserName  string
	CSRFToken string

	// Flash is an inline error or status message carried over from a form
	// submission via the `msg` query parameter.
	Flash string
}

func (h *Handler) basePage(r *http.Request, title string, user models.User) basePage {
	identity, _ := utils.GetIdentityFromContext(r.Context())
	return basePage{
		AppName:   h.app.Name,
		Title:     title,
		UserName:  user.FullName(),
		CSRFToken: identity.CSRFToken,
		Flash:     r.URL.Query().Get("msg"),
	}
}

// landingPage renders the login/register page. Authenticated visitors are
// sent to the dashboard instead.
func (h *Handler) landingPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.services.AuthService.ValidateSession(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		clearSessionCookie(w)
	}

	h.render(w, r, "landing", struct {
		basePage
	}{
		basePage: basePage{
			AppName:   h.app.Name,
			Title:     "Welcome",
			CSRFToken: ensureCSRFCookie(w, r),
		},
	})
}

type dashboardPageData struct {
	basePage
	Stats service.DashboardStats
	User  models.User
}

func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.services.StatsService.Dashboard(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error computing dashboard stats")
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.render(w, r, "dashboard", dashboardPageData{
		basePage: h.basePage(r, "Dashboard", user),
		Stats:    stats,
		User:     user,
	})
}

type logPageData struct {
	basePage
	Category string
	Entries  []models.LogEntry
	Chart    []models.ChartPoint
	User     models.User
}

func (h *Handler) weightPage(w http.ResponseWriter, r *http.Request) {
	h.logPage(w, r, models.CategoryWeight, "Weight Tracking")
}

func (h *Handler) exercisePage(w http.ResponseWriter, r *http.Request) {
	h.logPage(w, r, models.CategoryExercise, "Exercise Log")
}

func (h *Handler) foodPage(w http.ResponseWriter, r *http.Request) {
	h.logPage(w, r, models.CategoryFood, "Food Log")
}

func (h *Handler) logPage(w http.ResponseWriter, r *http.Request, category, title string) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	entries, err := h.services.LogService.ListEntries(r.Context(), user.ID, category, "", 50)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("category", category).Msg("error loading log entries")
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	data := logPageData{
		basePage: h.basePage(r, title, user),
		Category: category,
		Entries:  entries,
		User:     user,
	}

	if category == models.CategoryWeight {
		chart, err := h.services.LogService.WeightChartSeries(r.Context(), user.ID, 30)
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("error building weight chart series")
			http.Error(w, genericErrorMessage, http.StatusInternalServerError)
			return
		}
		data.Chart = chart
	}

	h.render(w, r, category, data)
}

type recipesPageData struct {
	basePage
	Recipes []models.Recipe
	UserID  string
}

func (h *Handler) recipesPage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	recipes, err := h.services.RecipeService.ListRecipes(r.Context(), user.ID, true)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error loading recipes")
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.render(w, r, "recipes", recipesPageData{
		basePage: h.basePage(r, "Recipes", user),
		Recipes:  recipes,
		UserID:   user.ID,
	})
}

type profilePageData struct {
	basePage
	User models.User
}

func (h *Handler) profilePage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	h.render(w, r, "profile", profilePageData{
		basePage: h.basePage(r, "Profile", user),
		User:     user,
	})
}

// currentUser loads the authenticated user's document. The auth middleware
// guarantees an identity is present; a missing user document means the
// account was removed underneath an open session.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return models.User{}, false
	}

	user, err := h.services.AuthService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("user_id", identity.UserID).Msg("error loading current user")
		clearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusFound)
		return models.User{}, false
	}

	return user, true
}
