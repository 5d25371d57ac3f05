package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"wayfarer/internal/modules/location"
)

// PlacesSource fetches points of interest for a region from the Places text
// search API.
type PlacesSource struct {
	client        *maps.Client
	defaultRegion string
	limit         int
	minRating     float32
	// ExcludeTypes drops results carrying any of these place types.
	ExcludeTypes []string
}

func NewPlacesSource(client *maps.Client, defaultRegion string, limit int) *PlacesSource {
	return &PlacesSource{
		client:        client,
		defaultRegion: defaultRegion,
		limit:         limit,
		minRating:     3.5,
		ExcludeTypes:  []string{"lodging", "gas_station", "convenience_store", "supermarket"},
	}
}

func (s *PlacesSource) Fetch(ctx context.Context, region string) ([]location.Record, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		region = s.defaultRegion
	}
	if region == "" {
		return nil, fmt.Errorf("places search needs a region: %w", location.ErrPermanent)
	}

	r := &maps.TextSearchRequest{
		Query:    "top sights in " + region,
		Language: "en",
	}
	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", classify(err))
	}

	var records []location.Record
	for _, result := range resp.Results {
		if result.Rating < s.minRating || s.excluded(result.Types) {
			continue
		}
		records = append(records, location.Record{
			ID:         result.PlaceID,
			Name:       result.Name,
			Address:    result.FormattedAddress,
			Latitude:   result.Geometry.Location.Lat,
			Longitude:  result.Geometry.Location.Lng,
			Rating:     float64(result.Rating),
			PriceLevel: float64(result.PriceLevel),
			Categories: append([]string(nil), result.Types...),
		})
		if s.limit > 0 && len(records) >= s.limit {
			break
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w %q: %w", location.ErrUnknownRegion, region, location.ErrPermanent)
	}
	return records, nil
}

func (s *PlacesSource) excluded(placeTypes []string) bool {
	for _, t := range placeTypes {
		for _, ex := range s.ExcludeTypes {
			if t == ex {
				return true
			}
		}
	}
	return false
}

// classify marks request errors the API will keep rejecting.
func classify(err error) error {
	msg := err.Error()
	for _, status := range []string{"REQUEST_DENIED", "INVALID_REQUEST", "MAX_DIMENSIONS_EXCEEDED", "MAX_ELEMENTS_EXCEEDED"} {
		if strings.Contains(msg, status) {
			return fmt.Errorf("%w: %w", location.ErrPermanent, err)
		}
	}
	return err
}
