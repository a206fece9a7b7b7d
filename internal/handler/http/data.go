package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/utils"
	"github.com/MKhiriev/fitgrit/models"
)

// addLogEntry handles the add-entry form of the weight, exercise and food
// pages. The category is the first path segment, so one handler serves all
// three routes.
func (h *Handler) addLogEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, category, ok := h.formRequest(w, r)
	if !ok {
		return
	}

	entry := entryFromForm(category, r)
	if _, err := h.services.LogService.AddEntry(r.Context(), identity.UserID, category, entry); err != nil {
		log.Err(err).Str("category", category).Msg("error adding log entry")
		h.redirectBack(w, r, category, "Could not save the entry. Please check the form and try again.")
		return
	}

	h.redirectBack(w, r, category, "")
}

func (h *Handler) deleteLogEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, category, ok := h.formRequest(w, r)
	if !ok {
		return
	}

	entryID := r.PostFormValue("entry_id")
	if err := h.services.LogService.DeleteEntry(r.Context(), identity.UserID, category, entryID); err != nil {
		log.Err(err).Str("category", category).Str("entry_id", entryID).Msg("error deleting log entry")
		h.redirectBack(w, r, category, "Could not delete the entry.")
		return
	}

	h.redirectBack(w, r, category, "")
}

func (h *Handler) addRecipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, _, ok := h.formRequest(w, r)
	if !ok {
		return
	}

	recipe := models.Recipe{
		Name:         r.PostFormValue("name"),
		Ingredients:  splitLines(r.PostFormValue("ingredients")),
		Instructions: splitLines(r.PostFormValue("instructions")),
		CreatedBy:    identity.UserID,
		IsPublic:     r.PostFormValue("is_public") == "on",
	}

	if _, err := h.services.RecipeService.AddRecipe(r.Context(), recipe); err != nil {
		log.Err(err).Msg("error adding recipe")
		h.redirectBack(w, r, "recipes", "Could not save the recipe. A name and at least one ingredient are required.")
		return
	}

	h.redirectBack(w, r, "recipes", "")
}

func (h *Handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, _, ok := h.formRequest(w, r)
	if !ok {
		return
	}

	recipeID := r.PostFormValue("recipe_id")
	if err := h.services.RecipeService.DeleteRecipe(r.Context(), identity.UserID, recipeID); err != nil {
		log.Err(err).Str("recipe_id", recipeID).Msg("error deleting recipe")
		h.redirectBack(w, r, "recipes", "Could not delete the recipe.")
		return
	}

	h.redirectBack(w, r, "recipes", "")
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, _, ok := h.formRequest(w, r)
	if !ok {
		return
	}

	profile := models.Profile{
		Height:        formFloat(r, "height"),
		Gender:        r.PostFormValue("gender"),
		BirthDate:     r.PostFormValue("birth_date"),
		ActivityLevel: r.PostFormValue("activity_level"),
		Goal:          r.PostFormValue("goal"),
		GoalWeight:    formFloat(r, "goal_weight"),
		GoalDate:      r.PostFormValue("goal_date"),
	}
	preferences := models.Preferences{
		WeightUnit:    r.PostFormValue("weight_unit"),
		HeightUnit:    r.PostFormValue("height_unit"),
		Timezone:      r.PostFormValue("timezone"),
		Notifications: r.PostFormValue("notifications") == "on",
	}

	if _, err := h.services.AuthService.UpdateProfile(r.Context(), identity.UserID, profile, preferences); err != nil {
		log.Err(err).Msg("error updating profile")
		h.redirectBack(w, r, "profile", "Could not save the profile.")
		return
	}

	h.redirectBack(w, r, "profile", "Profile updated")
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, _, ok := h.formRequest(w, r)
	if !ok {
		return
	}

	err := h.services.AuthService.ChangePassword(r.Context(),
		identity.UserID, r.PostFormValue("current_password"), r.PostFormValue("new_password"))
	if err != nil {
		log.Warn().Err(err).Msg("password change rejected")
		h.redirectBack(w, r, "profile", h.passwordChangeMessage(err))
		return
	}

	h.redirectBack(w, r, "profile", "Password updated successfully")
}

// formRequest runs the shared preamble of every authenticated form POST:
// form parsing, identity lookup and the per-session CSRF check. The second
// return value is the first path segment ("weight", "recipes", ...).
func (h *Handler) formRequest(w http.ResponseWriter, r *http.Request) (utils.Identity, string, bool) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return utils.Identity{}, "", false
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("error parsing form")
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return utils.Identity{}, "", false
	}

	if !verifySessionCSRF(identity, r.PostFormValue("csrf_token")) {
		log.Warn().Str("user_id", identity.UserID).Msg("form post with bad csrf token")
		http.Error(w, "Security token mismatch", http.StatusForbidden)
		return utils.Identity{}, "", false
	}

	segment := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)[0]
	return identity, segment, true
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, page, message string) {
	target := "/" + page
	if message != "" {
		target += "?msg=" + url.QueryEscape(message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func entryFromForm(category string, r *http.Request) models.LogEntry {
	entry := models.LogEntry{
		Date:  r.PostFormValue("date"),
		Notes: r.PostFormValue("notes"),
	}

	switch category {
	case models.CategoryWeight:
		entry.Weight = formFloat(r, "weight")
		entry.Unit = r.PostFormValue("unit")
	case models.CategoryExercise:
		entry.Exercise = r.PostFormValue("exercise")
		entry.Duration = formInt(r, "duration")
		entry.Calories = formInt(r, "calories")
	case models.CategoryFood:
		entry.Food = r.PostFormValue("food")
		entry.Calories = formInt(r, "calories")
		entry.Meal = r.PostFormValue("meal")
	}

	return entry
}

func formFloat(r *http.Request, field string) float64 {
	v, _ := strconv.ParseFloat(r.PostFormValue(field), 64)
	return v
}

func formInt(r *http.Request, field string) int {
	v, _ := strconv.Atoi(r.PostFormValue(field))
	return v
}

// splitLines turns a textarea value into one trimmed string per non-empty
// line.
func splitLines(value string) []string {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
