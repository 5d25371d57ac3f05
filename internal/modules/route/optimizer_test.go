package route

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/modules/location"
	"wayfarer/internal/types"
)

func banffTable(t *testing.T) *location.Table {
	t.Helper()
	recs, err := location.NewSampleSource(0).Fetch(context.Background(), "banff")
	require.NoError(t, err)
	table, err := location.Preprocess(recs)
	require.NoError(t, err)
	return table
}

func TestGraphOptimizer_OrderIsPermutation(t *testing.T) {
	table := banffTable(t)
	res, err := NewGraphOptimizer(nil).Optimize(context.Background(), table, Constraints{})
	require.NoError(t, err)

	require.Len(t, res.Vector, VectorLength)
	order := append([]int(nil), res.Order...)
	sort.Ints(order)
	for i := range order {
		assert.Equal(t, i, order[i])
	}
	assert.Len(t, res.Stops, table.Len())
	assert.Equal(t, float64(table.Len()), res.Vector[5])
	assert.InDelta(t, res.TotalDistanceKm, res.Vector[4], 1e-9)
}

func TestGraphOptimizer_PreferencesPickMatchingStops(t *testing.T) {
	table := banffTable(t)
	res, err := NewGraphOptimizer(nil).Optimize(context.Background(), table, Constraints{
		Preferences: []string{"adventure"},
		MaxStops:    3,
	})
	require.NoError(t, err)
	require.Len(t, res.Stops, 3)

	for _, s := range res.Stops {
		assert.Contains(t, s.Categories, "adventure", s.Name)
	}
	assert.InDelta(t, 1.0, res.Vector[6], 1e-9)
	assert.Greater(t, res.Vector[15], 0.0)
}

func trailAndMuseum(t *testing.T) *location.Table {
	t.Helper()
	table, err := location.Preprocess([]location.Record{
		{ID: "trail", Name: "Canyon Trail", Latitude: 51.17, Longitude: -115.57, Rating: 3.9, PriceLevel: 0, Categories: []string{"hiking"}},
		{ID: "museum", Name: "City Museum", Latitude: 51.18, Longitude: -115.56, Rating: 4.8, PriceLevel: 2, Categories: []string{"museums"}},
	})
	require.NoError(t, err)
	return table
}

func TestGraphOptimizer_KeywordTagSteersSelection(t *testing.T) {
	table := trailAndMuseum(t)
	opt := NewGraphOptimizer(nil)

	res, err := opt.Optimize(context.Background(), table, Constraints{MaxStops: 1})
	require.NoError(t, err)
	require.Len(t, res.Stops, 1)
	assert.Equal(t, "museum", res.Stops[0].LocationID, "rating alone favours the museum")

	res, err = opt.Optimize(context.Background(), table, Constraints{Preferences: []string{"hiking"}, MaxStops: 1})
	require.NoError(t, err)
	require.Len(t, res.Stops, 1)
	assert.Equal(t, "trail", res.Stops[0].LocationID)

	res, err = opt.Optimize(context.Background(), table, Constraints{Preferences: []string{"museums"}, MaxStops: 1})
	require.NoError(t, err)
	assert.Equal(t, "museum", res.Stops[0].LocationID)
}

func TestPreferenceWeights(t *testing.T) {
	w := preferenceWeights([]string{"adventure", "cuisine"})
	assert.InDelta(t, 1.0, w["adventure"], 1e-9)
	assert.InDelta(t, 0.5, w["food"], 1e-9)
	assert.NotContains(t, w, "cultural")

	w = preferenceWeights([]string{"hiking"})
	assert.InDelta(t, 1.0, w["adventure"], 1e-9)

	assert.Empty(t, preferenceWeights(nil))
	assert.Empty(t, preferenceWeights([]string{"zzz"}))
}

func TestGraphOptimizer_Deterministic(t *testing.T) {
	table := banffTable(t)
	opt := NewGraphOptimizer(HaversineMatrix{})
	a, err := opt.Optimize(context.Background(), table, Constraints{Preferences: []string{"nature"}})
	require.NoError(t, err)
	b, err := opt.Optimize(context.Background(), table, Constraints{Preferences: []string{"nature"}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGraphOptimizer_LegsSumToTotal(t *testing.T) {
	res, err := NewGraphOptimizer(nil).Optimize(context.Background(), banffTable(t), Constraints{})
	require.NoError(t, err)

	var sum float64
	for i, s := range res.Stops {
		assert.Equal(t, i, s.Position)
		sum += s.LegKm
	}
	assert.Zero(t, res.Stops[0].LegKm)
	assert.InDelta(t, res.TotalDistanceKm, sum, 1e-9)
}

func TestGraphOptimizer_EmptyTable(t *testing.T) {
	_, err := NewGraphOptimizer(nil).Optimize(context.Background(), &location.Table{}, Constraints{})
	assert.ErrorIs(t, err, ErrEmptyTable)
}

type failingMatrix struct{ err error }

func (f failingMatrix) Distances(context.Context, []types.Point) ([][]float64, error) {
	return nil, f.err
}

type shortMatrix struct{}

func (shortMatrix) Distances(context.Context, []types.Point) ([][]float64, error) {
	return [][]float64{{0}}, nil
}

type constMatrix struct{ v float64 }

func (m constMatrix) Distances(_ context.Context, pts []types.Point) ([][]float64, error) {
	out := make([][]float64, len(pts))
	for i := range out {
		out[i] = make([]float64, len(pts))
		for j := range out[i] {
			if i != j {
				out[i][j] = m.v
			}
		}
	}
	return out, nil
}

func TestGraphOptimizer_MatrixErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewGraphOptimizer(failingMatrix{err: boom}).Optimize(context.Background(), banffTable(t), Constraints{})
	assert.ErrorIs(t, err, boom)

	_, err = NewGraphOptimizer(shortMatrix{}).Optimize(context.Background(), banffTable(t), Constraints{})
	assert.ErrorContains(t, err, "rows")

	for _, v := range []float64{math.NaN(), math.Inf(1), -1} {
		_, err = NewGraphOptimizer(constMatrix{v: v}).Optimize(context.Background(), banffTable(t), Constraints{})
		assert.ErrorContains(t, err, "distance matrix entry", "%v", v)
	}
}

func TestTwoOpt_NeverLonger(t *testing.T) {
	pts := []types.Point{
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 3}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1},
		{Lat: 1, Lng: 3}, {Lat: 2, Lng: 0}, {Lat: 1, Lng: 2}, {Lat: 2, Lng: 2},
	}
	dist, err := HaversineMatrix{}.Distances(context.Background(), pts)
	require.NoError(t, err)

	nn := nearestNeighbour(dist)
	improved := twoOpt(nn, dist)
	assert.LessOrEqual(t, pathLength(improved, dist), pathLength(nn, dist)+1e-9)
	assert.Equal(t, 0, improved[0])
	assert.ElementsMatch(t, nn, improved)
}

func TestTwoOpt_UncrossesPath(t *testing.T) {
	// Line graph visited out of order: 0 -> 2 -> 1 -> 3.
	pos := []float64{0, 1, 2, 3}
	dist := make([][]float64, 4)
	for i := range dist {
		dist[i] = make([]float64, 4)
		for j := range dist[i] {
			d := pos[i] - pos[j]
			if d < 0 {
				d = -d
			}
			dist[i][j] = d
		}
	}
	got := twoOpt([]int{0, 2, 1, 3}, dist)
	assert.Equal(t, []int{0, 1, 2, 3}, got)
	assert.InDelta(t, 3, pathLength(got, dist), 1e-9)
}

func TestResultClone(t *testing.T) {
	orig := &Result{Vector: []float64{1}, Order: []int{0}, Stops: []Stop{{Categories: []string{"food"}}}}
	cp := orig.Clone()
	cp.Vector[0] = 9
	cp.Stops[0].Categories[0] = "x"
	assert.Equal(t, 1.0, orig.Vector[0])
	assert.Equal(t, "food", orig.Stops[0].Categories[0])
}
