package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityflow/simulator/config"
	"cityflow/simulator/models"
)

func TestOverlayVolumes(t *testing.T) {
	static := []models.Route{
		{ID: 1, PathNodes: []int{1, 2}, Count: 10},
		{ID: 2, PathNodes: []int{2, 3}, Count: 20},
		{ID: 3, PathNodes: []int{3, 4}, Count: 30},
	}
	got := OverlayVolumes(static, map[int]int{1: 55, 3: -4, 99: 7})

	require.Len(t, got, 3)
	assert.Equal(t, 55, got[0].Count)
	assert.Equal(t, 20, got[1].Count, "routes without a row keep their static count")
	assert.Equal(t, 0, got[2].Count)
	assert.Equal(t, 10, static[0].Count)
}

func TestHistoryStoreRejectsUnknownPeriods(t *testing.T) {
	store := &HistoryStore{
		periods: map[string]config.PeriodConfig{
			"april-2025": {Start: "2025-04-20T00:00:00", End: "2025-04-27T00:00:00"},
			"broken":     {Start: "2025-04-27T00:00:00", End: "2025-04-20T00:00:00"},
		},
		loc: time.UTC,
	}

	for _, period := range []string{"", "missing", "broken"} {
		_, err := store.ScenarioVolumes(context.Background(), models.Scenario{ID: "x", Period: period})
		assert.Error(t, err, "period %q", period)
	}

	start, end, err := store.periodBounds("april-2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC), end)
}
