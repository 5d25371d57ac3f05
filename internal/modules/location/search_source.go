package location

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const poiMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "region":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "name":        {"type": "text"},
      "address":     {"type": "text"},
      "latitude":    {"type": "double"},
      "longitude":   {"type": "double"},
      "rating":      {"type": "float"},
      "price_level": {"type": "float"},
      "categories":  {"type": "keyword"},
      "location":    {"type": "geo_point"}
    }
  }
}`

type poiDoc struct {
	Record
	Region   string             `json:"region"`
	Location map[string]float64 `json:"location"`
}

// SearchSource reads points of interest from an Elasticsearch index.
type SearchSource struct {
	client *elasticsearch.Client
	index  string
	limit  int
}

func NewSearchSource(client *elasticsearch.Client, index string, limit int) *SearchSource {
	if limit <= 0 {
		limit = 20
	}
	return &SearchSource{client: client, index: index, limit: limit}
}

func (s *SearchSource) searchBody(region string) ([]byte, error) {
	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if r := strings.TrimSpace(region); r != "" {
		query = map[string]interface{}{
			"match": map[string]interface{}{
				"region": map[string]interface{}{"query": r, "operator": "and"},
			},
		}
	}
	return json.Marshal(map[string]interface{}{
		"size":  s.limit,
		"query": query,
		"sort":  []interface{}{map[string]string{"rating": "desc"}, map[string]string{"id": "asc"}},
	})
}

func (s *SearchSource) Fetch(ctx context.Context, region string) ([]Record, error) {
	body, err := s.searchBody(region)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}
	defer res.Body.Close()

	if err := responseError(res, "search locations"); err != nil {
		return nil, err
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source poiDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]Record, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		out = append(out, h.Source.Record)
	}
	if len(out) == 0 && strings.TrimSpace(region) != "" {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownRegion, region, ErrPermanent)
	}
	return out, nil
}

// EnsureIndex creates the index with the POI mapping if it does not exist.
func (s *SearchSource) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(strings.NewReader(poiMapping)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()
	return responseError(res, "create index")
}

// IndexRegion bulk-indexes the records of region, replacing documents with the
// same ID.
func (s *SearchSource) IndexRegion(ctx context.Context, region Region) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range region.Records {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": rec.ID},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		doc := poiDoc{
			Record:   rec,
			Region:   region.Name,
			Location: map[string]float64{"lat": rec.Latitude, "lon": rec.Longitude},
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode location: %w", err)
		}
	}

	req := esapi.BulkRequest{Body: &buf, Refresh: "true"}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()
	if err := responseError(res, "bulk index"); err != nil {
		return err
	}

	var bulk struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if bulk.Errors {
		return fmt.Errorf("bulk index of %s reported item errors", region.Name)
	}
	return nil
}

// responseError turns an error status into an error; 4xx responses are permanent.
func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	err := fmt.Errorf("error during %s: status %d, body: %s", op, res.StatusCode, string(body))
	if res.StatusCode >= 400 && res.StatusCode < 500 && res.StatusCode != 429 {
		return fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	return err
}
