package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateGenerator_DayCountAndSlots(t *testing.T) {
	emb, err := NewKeywordExtractor().Extract(context.Background(), "hiking and wildlife")
	require.NoError(t, err)

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	it, err := NewTemplateGenerator().Generate(context.Background(), ItineraryRequest{
		Preferences: emb,
		Days:        5,
		Destination: "Banff",
		Budget:      "High",
		StartDate:   start,
	})
	require.NoError(t, err)
	require.Len(t, it.Days, 5)

	for i, d := range it.Days {
		assert.Equal(t, i+1, d.Day)
		require.NotNil(t, d.Date)
		assert.Equal(t, start.AddDate(0, 0, i), *d.Date)
		require.Len(t, d.Activities, 3)
		assert.Equal(t, "09:00", d.Activities[0].Time)
		assert.Equal(t, "12:00", d.Activities[1].Time)
		assert.Equal(t, "16:00", d.Activities[2].Time)
		assert.Equal(t, int64(60), d.Activities[0].Cost.Amount)
		assert.Equal(t, int64(70), d.Activities[1].Cost.Amount)
		assert.Equal(t, int64(65), d.Activities[2].Cost.Amount)
		assert.Equal(t, "EUR", d.Activities[0].Cost.Currency)
		assert.Contains(t, d.Activities[0].Description, "in Banff")
	}
	assert.Contains(t, []string{"adventure", "nature"}, it.Days[0].Activities[0].Category)
}

func TestTemplateGenerator_NoCategories(t *testing.T) {
	it, err := NewTemplateGenerator().Generate(context.Background(), ItineraryRequest{Days: 1})
	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	assert.Nil(t, it.Days[0].Date)
	assert.Equal(t, "Morning Sightseeing", it.Days[0].Activities[0].Name)
	assert.Equal(t, int64(40), it.Days[0].Activities[0].Cost.Amount)
}

func TestTemplateGenerator_InvalidDays(t *testing.T) {
	_, err := NewTemplateGenerator().Generate(context.Background(), ItineraryRequest{Days: 0})
	assert.ErrorIs(t, err, ErrPermanent)
}

func TestNormalizeBudget(t *testing.T) {
	assert.Equal(t, "low", NormalizeBudget(" Low "))
	assert.Equal(t, "high", NormalizeBudget("HIGH"))
	assert.Equal(t, "medium", NormalizeBudget("whatever"))
	assert.Equal(t, "medium", NormalizeBudget(""))
}

func TestItineraryClone(t *testing.T) {
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := &Itinerary{Days: []DayPlan{{Day: 1, Date: &date, Activities: []Activity{{Name: "a"}}}}}
	cp := orig.Clone()
	cp.Days[0].Activities[0].Name = "b"
	*cp.Days[0].Date = date.AddDate(1, 0, 0)

	assert.Equal(t, "a", orig.Days[0].Activities[0].Name)
	assert.Equal(t, date, *orig.Days[0].Date)
	assert.Nil(t, (*Itinerary)(nil).Clone())
}
