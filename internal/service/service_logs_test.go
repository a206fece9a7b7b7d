package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/models"
)

func newTestLogService(t *testing.T) (*logService, *memLogRepository) {
	t.Helper()

	logs := newMemLogRepository()
	service := NewLogService(logs, logger.Nop()).(*logService)
	return service, logs
}

func TestLogService_AddEntry_UnknownCategory(t *testing.T) {
	service, _ := newTestLogService(t)

	_, err := service.AddEntry(context.Background(), "user_1", "sleep", models.LogEntry{})
	assert.ErrorIs(t, err, ErrUnknownLogCategory)
}

func TestLogService_AddEntry_Validation(t *testing.T) {
	tests := []struct {
		name     string
		category string
		entry    models.LogEntry
		wantErr  error
	}{
		{
			name:     "weight entry needs a positive weight",
			category: models.CategoryWeight,
			entry:    models.LogEntry{Weight: 0},
			wantErr:  ErrInvalidDataProvided,
		},
		{
			name:     "exercise entry needs a name",
			category: models.CategoryExercise,
			entry:    models.LogEntry{Duration: 30},
			wantErr:  ErrInvalidDataProvided,
		},
		{
			name:     "exercise entry needs a positive duration",
			category: models.CategoryExercise,
			entry:    models.LogEntry{Exercise: "Running"},
			wantErr:  ErrInvalidDataProvided,
		},
		{
			name:     "food entry needs a name",
			category: models.CategoryFood,
			entry:    models.LogEntry{Calories: 500},
			wantErr:  ErrInvalidDataProvided,
		},
		{
			name:     "food entry rejects negative calories",
			category: models.CategoryFood,
			entry:    models.LogEntry{Food: "Oatmeal", Calories: -1},
			wantErr:  ErrInvalidDataProvided,
		},
		{
			name:     "malformed date",
			category: models.CategoryWeight,
			entry:    models.LogEntry{Weight: 180, Date: "03/01/2026"},
			wantErr:  ErrInvalidDataProvided,
		},
		{
			name:     "zero-calorie food entry is fine",
			category: models.CategoryFood,
			entry:    models.LogEntry{Food: "Water", Calories: 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, _ := newTestLogService(t)

			_, err := service.AddEntry(context.Background(), "user_1", test.category, test.entry)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogService_AddAndListEntries(t *testing.T) {
	service, _ := newTestLogService(t)
	ctx := context.Background()

	added, err := service.AddEntry(ctx, "user_1", models.CategoryExercise, models.LogEntry{
		Exercise: "Running",
		Duration: 30,
		Calories: 300,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, time.Now().Format(time.DateOnly), added.Date)

	entries, err := service.ListEntries(ctx, "user_1", models.CategoryExercise, "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Running", entries[0].Exercise)
}

func TestLogService_DeleteEntry(t *testing.T) {
	service, _ := newTestLogService(t)
	ctx := context.Background()

	added, err := service.AddEntry(ctx, "user_1", models.CategoryWeight, models.LogEntry{Weight: 180})
	require.NoError(t, err)

	err = service.DeleteEntry(ctx, "user_1", models.CategoryWeight, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = service.DeleteEntry(ctx, "user_1", models.CategoryWeight, "missing")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)

	require.NoError(t, service.DeleteEntry(ctx, "user_1", models.CategoryWeight, added.ID))

	entries, err := service.ListEntries(ctx, "user_1", models.CategoryWeight, "", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogService_WeightChartSeries(t *testing.T) {
	service, _ := newTestLogService(t)
	ctx := context.Background()

	today := time.Now().Format(time.DateOnly)
	yesterday := time.Now().AddDate(0, 0, -1).Format(time.DateOnly)
	lastMonth := time.Now().AddDate(0, 0, -40).Format(time.DateOnly)

	for _, entry := range []models.LogEntry{
		{Weight: 180, Date: today},
		{Weight: 178, Date: yesterday},
		{Weight: 190, Date: lastMonth},
	} {
		_, err := service.AddEntry(ctx, "user_1", models.CategoryWeight, entry)
		require.NoError(t, err)
	}

	points, err := service.WeightChartSeries(ctx, "user_1", 7)
	require.NoError(t, err)

	// only the points inside the window, oldest first
	require.Len(t, points, 2)
	assert.Equal(t, yesterday, points[0].Date)
	assert.Equal(t, float64(178), points[0].Value)
	assert.Equal(t, today, points[1].Date)
	assert.Equal(t, float64(180), points[1].Value)
}
