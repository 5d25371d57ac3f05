package maps

import (
	"fmt"

	"googlemaps.github.io/maps"
)

// NewClient builds the Maps client shared by PlacesSource and RouteService.
func NewClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
