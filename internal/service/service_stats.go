// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/models"
)

// WeightStats summarizes the user's latest weight movement.
type WeightStats struct {
	// Current is the most recent logged weight; zero when nothing is logged.
	Current float64 `json:"current"`

	// Change is current minus previous entry; zero with fewer than two
	// entries.
	Change float64 `json:"change"`

	// Trend is "up", "down" or "stable".
	Trend string `json:"trend"`
}

// ExerciseStats summarizes today's and this week's exercise.
type ExerciseStats struct {
	TodayMinutes  int `json:"today_minutes"`
	WeeklyMinutes int `json:"weekly_minutes"`
	TodayCalories int `json:"today_calories"`
	Streak        int `json:"streak"`
}

// FoodStats summarizes today's food log.
type FoodStats struct {
	Calories int `json:"calories"`
	Meals    int `json:"meals"`
}

// Streaks holds the consecutive-day logging streaks shown on the dashboard.
type Streaks struct {
	Exercise  int `json:"exercise"`
	WeightLog int `json:"weight_log"`
}

// DashboardStats aggregates everything the dashboard page renders, including
// the chart series embedded as inline script data.
type DashboardStats struct {
	Weight   WeightStats   `json:"weight"`
	Exercise ExerciseStats `json:"exercise"`
	Food     FoodStats     `json:"food"`
	Streaks  Streaks       `json:"streaks"`

	// BMI is derived from the latest weight and the profile height; zero
	// when either is missing. BMICategory is empty in that case.
	BMI         float64 `json:"bmi,omitempty"`
	BMICategory string  `json:"bmi_category,omitempty"`

	WeightChart   []models.ChartPoint `json:"weight_chart"`
	ExerciseChart []models.ChartPoint `json:"exercise_chart"`
}

// statsService derives the dashboard figures from the log documents. It owns
// no state of its own; everything is recomputed per request.
type statsService struct {
	logRepository store.LogRepository
	now           func() time.Time
	logger        *logger.Logger
}

func NewStatsService(logs store.LogRepository, logger *logger.Logger) StatsService {
	return &statsService{
		logRepository: logs,
		now:           time.Now,
		logger:        logger,
	}
}

// Dashboard loads the user's recent weight, exercise and food entries and
// derives the dashboard statistics from them.
func (s *statsService) Dashboard(ctx context.Context, user models.User) (DashboardStats, error) {
	now := s.now()
	today := now.Format(time.DateOnly)
	weekAgo := now.AddDate(0, 0, -7).Format(time.DateOnly)

	weightEntries, err := s.logRepository.ListEntries(ctx, user.ID, models.CategoryWeight, "", 30)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("error loading weight log: %w", err)
	}
	exerciseEntries, err := s.logRepository.ListEntries(ctx, user.ID, models.CategoryExercise, "", 0)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("error loading exercise log: %w", err)
	}
	todayFood, err := s.logRepository.ListEntries(ctx, user.ID, models.CategoryFood, today, 0)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("error loading food log: %w", err)
	}

	stats := DashboardStats{
		Weight:   weightStats(weightEntries),
		Exercise: exerciseStats(exerciseEntries, today, weekAgo),
		Food: FoodStats{
			Calories: sumCalories(todayFood),
			Meals:    len(todayFood),
		},
		Streaks: Streaks{
			Exercise:  logStreak(exerciseEntries, now),
			WeightLog: logStreak(weightEntries, now),
		},
		WeightChart:   chartSeries(weightEntries, func(e models.LogEntry) float64 { return e.Weight }),
		ExerciseChart: exerciseChartSeries(exerciseEntries, now),
	}
	stats.Exercise.Streak = stats.Streaks.Exercise

	if user.Profile.Height > 0 && stats.Weight.Current > 0 {
		stats.BMI = CalculateBMI(stats.Weight.Current, user.Profile.Height)
		stats.BMICategory = BMICategory(stats.BMI)
	}

	return stats, nil
}

func weightStats(entries []models.LogEntry) WeightStats {
	stats := WeightStats{Trend: "stable"}
	if len(entries) == 0 {
		return stats
	}

	stats.Current = entries[0].Weight
	if len(entries) > 1 {
		stats.Change = entries[0].Weight - entries[1].Weight
	}

	switch {
	case stats.Change > 0:
		stats.Trend = "up"
	case stats.Change < 0:
		stats.Trend = "down"
	}

	return stats
}

func exerciseStats(entries []models.LogEntry, today, weekAgo string) ExerciseStats {
	var stats ExerciseStats
	for _, entry := range entries {
		if entry.Date == today {
			stats.TodayMinutes += entry.Duration
			stats.TodayCalories += entry.Calories
		}
		if entry.Date >= weekAgo {
			stats.WeeklyMinutes += entry.Duration
		}
	}

	return stats
}

func sumCalories(entries []models.LogEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.Calories
	}
	return total
}

// logStreak counts consecutive calendar days with at least one entry,
// scanning backward from today. The scan stops at the first gap and is
// capped at 31 days.
func logStreak(entries []models.LogEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	logged := make(map[string]bool, len(entries))
	for _, entry := range entries {
		logged[entry.Date] = true
	}

	streak := 0
	day := now
	for i := 0; i < 31; i++ {
		if !logged[day.Format(time.DateOnly)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// chartSeries reverses newest-first entries into an oldest-first series.
func chartSeries(entries []models.LogEntry, value func(models.LogEntry) float64) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		points = append(points, models.ChartPoint{Date: entries[i].Date, Value: value(entries[i])})
	}
	return points
}

// exerciseChartSeries builds a zero-filled series covering the last seven
// calendar days, oldest first, with durations summed per day. Entries outside
// the window are ignored.
func exerciseChartSeries(entries []models.LogEntry, now time.Time) []models.ChartPoint {
	minutes := make(map[string]float64, 7)
	points := make([]models.ChartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(time.DateOnly)
		minutes[date] = 0
		points = append(points, models.ChartPoint{Date: date})
	}

	for _, entry := range entries {
		if _, ok := minutes[entry.Date]; ok {
			minutes[entry.Date] += float64(entry.Duration)
		}
	}

	for i := range points {
		points[i].Value = minutes[points[i].Date]
	}
	return points
}

// CalculateBMI computes body mass index from weight in pounds and height in
// inches, rounded to one decimal. Returns 0 for a non-positive height.
func CalculateBMI(weight, height float64) float64 {
	if height <= 0 {
		return 0
	}
	return roundTenth(weight / (height * height) * 703)
}

// BMICategory maps a BMI value to its display category.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// ConvertWeight converts between "lbs" and "kg", rounded to one decimal.
// Unknown unit pairs return the value unchanged.
func ConvertWeight(weight float64, from, to string) float64 {
	switch {
	case from == to:
		return weight
	case from == "lbs" && to == "kg":
		return roundTenth(weight * 0.453592)
	case from == "kg" && to == "lbs":
		return roundTenth(weight * 2.20462)
	default:
		return weight
	}
}

// ConvertHeight converts between "inches" and "cm", rounded to one decimal.
// Unknown unit pairs return the value unchanged.
func ConvertHeight(height float64, from, to string) float64 {
	switch {
	case from == to:
		return height
	case from == "inches" && to == "cm":
		return roundTenth(height * 2.54)
	case from == "cm" && to == "inches":
		return roundTenth(height * 0.393701)
	default:
		return height
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
