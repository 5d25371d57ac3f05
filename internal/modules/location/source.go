// README: Location sources. Every source takes the destination region per call.
package location

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wayfarer/internal/types"
)

// Source fetches the points of interest for a region. An empty region means
// the source's default.
type Source interface {
	Fetch(ctx context.Context, region string) ([]Record, error)
}

type Region struct {
	Name    string
	Center  types.Point
	Records []Record
}

// StaticSource serves a fixed in-memory catalogue, closest to the region
// centre first.
type StaticSource struct {
	regions       map[string]Region
	defaultRegion string
	limit         int
}

// NewStaticSource returns a source over regions. limit <= 0 means no cap.
func NewStaticSource(regions []Region, defaultRegion string, limit int) *StaticSource {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[regionKey(r.Name)] = r
	}
	return &StaticSource{regions: m, defaultRegion: regionKey(defaultRegion), limit: limit}
}

// NewSampleSource is a StaticSource over the bundled sample catalogue.
func NewSampleSource(limit int) *StaticSource {
	return NewStaticSource(SampleRegions(), "banff", limit)
}

func regionKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Regions lists the known region names in alphabetical order.
func (s *StaticSource) Regions() []string {
	out := make([]string, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

func (s *StaticSource) lookup(region string) (Region, bool) {
	key := regionKey(region)
	if key == "" {
		key = s.defaultRegion
	}
	if r, ok := s.regions[key]; ok {
		return r, true
	}
	// "Paris, France" still finds "paris".
	for k, r := range s.regions {
		if strings.Contains(key, k) {
			return r, true
		}
	}
	return Region{}, false
}

func (s *StaticSource) Fetch(ctx context.Context, region string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := s.lookup(region)
	if !ok {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownRegion, region, ErrPermanent)
	}

	out := make([]Record, len(r.Records))
	for i, rec := range r.Records {
		rec.Categories = append([]string(nil), rec.Categories...)
		out[i] = rec
	}
	sortNearest(out, r.Center)
	if s.limit > 0 && len(out) > s.limit {
		out = out[:s.limit]
	}
	return out, nil
}
