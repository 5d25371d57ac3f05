package route

import (
	"context"
	"fmt"
	"math"
	"sort"

	"wayfarer/internal/ai"
	"wayfarer/internal/modules/location"
	"wayfarer/internal/types"
)

// Optimizer selects and orders the locations of a processed table.
type Optimizer interface {
	Optimize(ctx context.Context, table *location.Table, c Constraints) (*Result, error)
}

// DistanceMatrix returns pairwise distances in kilometres.
type DistanceMatrix interface {
	Distances(ctx context.Context, points []types.Point) ([][]float64, error)
}

// HaversineMatrix is the great-circle DistanceMatrix.
type HaversineMatrix struct{}

func (HaversineMatrix) Distances(ctx context.Context, points []types.Point) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float64, len(points))
	for i := range points {
		out[i] = make([]float64, len(points))
		for j := range points {
			if i != j {
				out[i][j] = location.HaversineKm(points[i], points[j])
			}
		}
	}
	return out, nil
}

const (
	prefWeight    = 0.6
	qualityWeight = 0.4
	maxTwoOptPass = 50
)

// GraphOptimizer treats the selected locations as a complete graph, builds a
// nearest-neighbour path from the best-scored stop and improves it with 2-opt.
type GraphOptimizer struct {
	matrix DistanceMatrix
}

func NewGraphOptimizer(matrix DistanceMatrix) *GraphOptimizer {
	if matrix == nil {
		matrix = HaversineMatrix{}
	}
	return &GraphOptimizer{matrix: matrix}
}

type candidate struct {
	row   int
	cats  []string
	match float64
	score float64
}

func (g *GraphOptimizer) Optimize(ctx context.Context, table *location.Table, c Constraints) (*Result, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyTable
	}

	preferred := preferenceWeights(c.Preferences)
	cands := make([]candidate, table.Len())
	for i, row := range table.Rows {
		cands[i] = scoreRow(i, row, preferred)
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].score > cands[b].score })
	if c.MaxStops > 0 && len(cands) > c.MaxStops {
		cands = cands[:c.MaxStops]
	}

	points := make([]types.Point, len(cands))
	for i, cd := range cands {
		points[i] = table.Rows[cd.row].Record.Point()
	}
	dist, err := g.matrix.Distances(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	if err := checkShape(dist, len(points)); err != nil {
		return nil, err
	}

	path := twoOpt(nearestNeighbour(dist), dist)
	return buildResult(table, cands, path, dist), nil
}

func checkShape(dist [][]float64, n int) error {
	if len(dist) != n {
		return fmt.Errorf("distance matrix has %d rows, want %d", len(dist), n)
	}
	for i, row := range dist {
		if len(row) != n {
			return fmt.Errorf("distance matrix row %d has %d columns, want %d", i, len(row), n)
		}
		for j, d := range row {
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return fmt.Errorf("distance matrix entry %d,%d is %v", i, j, d)
			}
		}
	}
	return nil
}

// preferenceWeights reads category affinity from the encoded tags, scaled so
// the strongest category weighs 1. Exact category tags outweigh keywords.
func preferenceWeights(tags []string) map[string]float64 {
	w := ai.CategoryWeights(ai.EncodePreferences(tags))
	var top float64
	for _, v := range w {
		top = max(top, v)
	}
	for c, v := range w {
		w[c] = v / top
	}
	return w
}

func scoreRow(i int, row location.Row, preferred map[string]float64) candidate {
	terms := append([]string{row.Record.Name}, row.Record.Categories...)
	cats := ai.MatchCategories(terms...)

	var match float64
	if len(cats) > 0 && len(preferred) > 0 {
		for _, c := range cats {
			match += preferred[c]
		}
		match /= float64(len(cats))
	}
	// Scaled rating through a logistic keeps quality in (0, 1).
	quality := 1 / (1 + math.Exp(-row.Scaled[2]))

	score := quality
	if len(preferred) > 0 {
		score = prefWeight*match + qualityWeight*quality
	}
	return candidate{row: i, cats: cats, match: match, score: score}
}

// nearestNeighbour starts at node 0, the best-scored stop.
func nearestNeighbour(dist [][]float64) []int {
	n := len(dist)
	if n == 0 {
		return nil
	}
	visited := make([]bool, n)
	path := []int{0}
	visited[0] = true
	for len(path) < n {
		last := path[len(path)-1]
		next, best := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if !visited[j] && dist[last][j] < best {
				next, best = j, dist[last][j]
			}
		}
		visited[next] = true
		path = append(path, next)
	}
	return path
}

func pathLength(path []int, dist [][]float64) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += dist[path[i-1]][path[i]]
	}
	return total
}

// twoOpt reverses segments of the open path while that shortens it. The first
// stop stays fixed.
func twoOpt(path []int, dist [][]float64) []int {
	best := append([]int(nil), path...)
	bestLen := pathLength(best, dist)
	for pass := 0; pass < maxTwoOptPass; pass++ {
		improved := false
		for i := 1; i < len(best)-1; i++ {
			for j := i + 1; j < len(best); j++ {
				cand := append([]int(nil), best...)
				for a, b := i, j; a < b; a, b = a+1, b-1 {
					cand[a], cand[b] = cand[b], cand[a]
				}
				if l := pathLength(cand, dist); l < bestLen-1e-9 {
					best, bestLen, improved = cand, l, true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

func buildResult(table *location.Table, cands []candidate, path []int, dist [][]float64) *Result {
	res := &Result{
		Vector: make([]float64, VectorLength),
		Order:  make([]int, len(path)),
		Stops:  make([]Stop, len(path)),
	}

	catCount := make(map[string]float64)
	var scoreSum, matchSum float64
	for pos, node := range path {
		cd := cands[node]
		row := table.Rows[cd.row]
		var leg float64
		if pos > 0 {
			leg = dist[path[pos-1]][node]
		}
		res.Order[pos] = cd.row
		res.Stops[pos] = Stop{
			Position:   pos,
			Row:        cd.row,
			LocationID: row.Record.ID,
			Name:       row.Record.Name,
			Point:      row.Record.Point(),
			Categories: append([]string(nil), cd.cats...),
			Score:      cd.score,
			LegKm:      leg,
		}
		res.TotalDistanceKm += leg

		for f := range row.Scaled {
			res.Vector[f] += row.Scaled[f]
		}
		for _, c := range cd.cats {
			catCount[c]++
		}
		scoreSum += cd.score
		matchSum += cd.match
	}

	n := float64(len(path))
	for f := 0; f < len(location.NumericColumns); f++ {
		res.Vector[f] /= n
	}
	res.Vector[4] = res.TotalDistanceKm
	res.Vector[5] = n
	for i, c := range ai.Categories {
		res.Vector[6+i] = catCount[c] / n
	}
	res.Vector[14] = scoreSum / n
	res.Vector[15] = matchSum / n
	return res
}
