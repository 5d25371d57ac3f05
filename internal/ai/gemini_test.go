package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoDayResponse = "```json\n" + `{"days":[
 {"day":1,"theme":"Peaks","activities":[{"time":"09:00","name":"Ridge hike","description":"d","category":"Adventure","duration":"2 hours","cost":39.6}]},
 {"day":7,"activities":[{"time":"16:00","name":"Lake walk"}]}
]}` + "\n```"

func TestParseItinerary(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	it, err := parseItinerary(twoDayResponse, ItineraryRequest{Days: 2, StartDate: start})
	require.NoError(t, err)
	require.Len(t, it.Days, 2)

	assert.Equal(t, 2, it.Days[1].Day)
	assert.Equal(t, start.AddDate(0, 0, 1), *it.Days[1].Date)
	a := it.Days[0].Activities[0]
	assert.Equal(t, "adventure", a.Category)
	assert.Equal(t, int64(40), a.Cost.Amount)
	assert.Equal(t, "EUR", a.Cost.Currency)
}

func TestParseItinerary_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		days int
	}{
		{"not json", "sure, here is your trip", 1},
		{"missing days", `{"plan":[]}`, 1},
		{"bad time", `{"days":[{"day":1,"activities":[{"time":"9am","name":"x"}]}]}`, 1},
		{"wrong day count", `{"days":[{"day":1,"activities":[{"time":"09:00","name":"x"}]}]}`, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseItinerary(tt.raw, ItineraryRequest{Days: tt.days})
			assert.ErrorIs(t, err, ErrMalformedOutput)
		})
	}
}

func TestBuildItineraryPrompt(t *testing.T) {
	p := buildItineraryPrompt(ItineraryRequest{
		Preferences: Embedding{Categories: []CategoryScore{{Category: "food", Score: 1}}},
		Days:        4,
		Destination: "Lyon",
		Budget:      "low",
	})
	assert.Contains(t, p, "4-day trip to Lyon")
	assert.Contains(t, p, "interests (strongest first): food")
	assert.Contains(t, p, "Budget tier: low")
	assert.True(t, strings.Contains(p, `Exactly 4 entries`))
}

func TestCleanJSONString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONString("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONString(`  {"a":1} `))
}
