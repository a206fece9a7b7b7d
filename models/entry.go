package models

import "time"

// Log categories. Each category is persisted as its own per-user document
// holding an array of entries.
const (
	CategoryWeight   = "weight"
	CategoryExercise = "exercise"
	CategoryFood     = "food"
)

// LogEntry is a single record in one of the per-user log documents. The value
// fields are category-specific: a weight entry carries Weight+Unit, an
// exercise entry Exercise+Duration+Calories, a food entry Food+Calories+Meal.
// Unused fields are omitted from the persisted JSON.
type LogEntry struct {
	// ID is a short random identifier unique within the owning document.
	ID string `json:"id"`

	// Weight entry fields.
	Weight float64 `json:"weight,omitempty"`
	Unit   string  `json:"unit,omitempty"`

	// Exercise entry fields. Duration is in minutes.
	Exercise string `json:"exercise,omitempty"`
	Duration int    `json:"duration,omitempty"`

	// Food entry fields. Calories is shared with exercise entries (burned
	// vs consumed, depending on the category).
	Food     string `json:"food,omitempty"`
	Calories int    `json:"calories,omitempty"`

	// Meal is one of breakfast/lunch/dinner/snack.
	Meal string `json:"meal,omitempty"`

	// Nutrition holds optional macro values for food entries (protein,
	// carbs, fat, ... in grams).
	Nutrition map[string]float64 `json:"nutrition,omitempty"`

	// Date is the calendar day the entry belongs to, formatted YYYY-MM-DD.
	// Distinct from Timestamp: a user may backfill past days.
	Date string `json:"date"`

	Notes string `json:"notes"`

	// Timestamp is the creation time of the entry.
	Timestamp time.Time `json:"timestamp"`
}

// LogDocument is the persisted shape of a per-user, per-category log file:
// a single array of entries appended on create and rewritten on delete.
type LogDocument struct {
	Entries []LogEntry `json:"entries"`
}

// ChartPoint is one point of a chart series embedded into a page.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
