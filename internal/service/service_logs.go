package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/models"
)

// logService is the concrete implementation of LogService. It validates
// entries per category and delegates persistence to the LogRepository.
type logService struct {
	logRepository store.LogRepository
	now           func() time.Time
	logger        *logger.Logger
}

func NewLogService(logs store.LogRepository, logger *logger.Logger) LogService {
	return &logService{
		logRepository: logs,
		now:           time.Now,
		logger:        logger,
	}
}

func (s *logService) ListEntries(ctx context.Context, userID, category, date string, limit int) ([]models.LogEntry, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	return s.logRepository.ListEntries(ctx, userID, category, date, limit)
}

// AddEntry validates the entry for its category and appends it to the user's
// log document.
//
// Returns ErrUnknownLogCategory for an unrecognized category and
// ErrInvalidDataProvided when the category's value fields are missing or out
// of range.
func (s *logService) AddEntry(ctx context.Context, userID, category string, entry models.LogEntry) (models.LogEntry, error) {
	log := logger.FromContext(ctx)

	if err := validateEntry(category, entry); err != nil {
		log.Warn().Err(err).Str("category", category).Msg("log entry rejected")
		return models.LogEntry{}, err
	}

	added, err := s.logRepository.AddEntry(ctx, userID, category, entry)
	if err != nil {
		log.Err(err).Str("category", category).Msg("error adding log entry")
		return models.LogEntry{}, fmt.Errorf("error adding log entry: %w", err)
	}

	log.Info().Str("user_id", userID).Str("category", category).Str("entry_id", added.ID).Msg("log entry added")
	return added, nil
}

func (s *logService) DeleteEntry(ctx context.Context, userID, category, entryID string) error {
	if err := checkCategory(category); err != nil {
		return err
	}
	if entryID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.logRepository.DeleteEntry(ctx, userID, category, entryID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Str("category", category).Str("entry_id", entryID).Msg("log entry deleted")
	return nil
}

// WeightChartSeries shapes the user's recent weight entries into a chart
// series: one point per entry within the last `days` calendar days, sorted
// by date ascending so the chart draws oldest-first.
func (s *logService) WeightChartSeries(ctx context.Context, userID string, days int) ([]models.ChartPoint, error) {
	entries, err := s.logRepository.ListEntries(ctx, userID, models.CategoryWeight, "", 0)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().AddDate(0, 0, -days).Format(time.DateOnly)

	points := make([]models.ChartPoint, 0, len(entries))
	for _, entry := range entries {
		if entry.Date < cutoff {
			continue
		}
		points = append(points, models.ChartPoint{Date: entry.Date, Value: entry.Weight})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return points, nil
}

func checkCategory(category string) error {
	switch category {
	case models.CategoryWeight, models.CategoryExercise, models.CategoryFood:
		return nil
	default:
		return ErrUnknownLogCategory
	}
}

func validateEntry(category string, entry models.LogEntry) error {
	if err := checkCategory(category); err != nil {
		return err
	}

	if entry.Date != "" {
		if _, err := time.Parse(time.DateOnly, entry.Date); err != nil {
			return ErrInvalidDataProvided
		}
	}

	switch category {
	case models.CategoryWeight:
		if entry.Weight <= 0 {
			return ErrInvalidDataProvided
		}
	case models.CategoryExercise:
		if entry.Exercise == "" || entry.Duration <= 0 {
			return ErrInvalidDataProvided
		}
	case models.CategoryFood:
		if entry.Food == "" || entry.Calories < 0 {
			return ErrInvalidDataProvided
		}
	}

	return nil
}
