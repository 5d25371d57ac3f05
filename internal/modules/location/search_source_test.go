package location

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearchSource(t *testing.T, handler http.HandlerFunc) *SearchSource {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewSearchSource(client, "pois", 5)
}

func TestSearchSource_Fetch(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	src := newTestSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"hits":{"hits":[
			{"_source":{"id":"p1","name":"Louvre","latitude":48.86,"longitude":2.33,"rating":4.7,"price_level":2,"categories":["museum"],"region":"Paris"}},
			{"_source":{"id":"p2","name":"Orsay","latitude":48.86,"longitude":2.32,"rating":4.8,"price_level":2,"region":"Paris"}}
		]}}`)
	})

	recs, err := src.Fetch(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "/pois/_search", gotPath)
	assert.EqualValues(t, 5, gotBody["size"])
	assert.Contains(t, gotBody["query"], "match")
	assert.Equal(t, "Louvre", recs[0].Name)
	assert.Equal(t, []string{"museum"}, recs[0].Categories)
	assert.InDelta(t, 2.0, recs[1].PriceLevel, 1e-9)
}

func TestSearchSource_EmptyRegionMatchesAll(t *testing.T) {
	var gotBody map[string]interface{}
	src := newTestSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"hits":{"hits":[]}}`)
	})

	recs, err := src.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Contains(t, gotBody["query"], "match_all")
}

func TestSearchSource_UnknownRegion(t *testing.T) {
	src := newTestSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"hits":{"hits":[]}}`)
	})
	_, err := src.Fetch(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrUnknownRegion)
}

func TestSearchSource_ErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		permanent bool
	}{
		{"missing index", http.StatusNotFound, true},
		{"bad request", http.StatusBadRequest, true},
		{"overloaded", http.StatusTooManyRequests, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, `{"error":"nope"}`)
			})
			_, err := src.Fetch(context.Background(), "Paris")
			require.Error(t, err)
			assert.Equal(t, tt.permanent, errors.Is(err, ErrPermanent))
		})
	}
}

func TestSearchSource_IndexRegion(t *testing.T) {
	var lines []string
	src := newTestSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lines = strings.Split(strings.TrimSpace(string(body)), "\n")
		io.WriteString(w, `{"errors":false,"items":[]}`)
	})

	region := SampleRegions()[3]
	require.NoError(t, src.IndexRegion(context.Background(), region))
	require.Len(t, lines, 2*len(region.Records))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &doc))
	assert.Equal(t, "Lisbon", doc["region"])
	assert.Equal(t, region.Records[0].ID, doc["id"])
	assert.Contains(t, doc, "location")
}

func TestSearchSource_EnsureIndexExisting(t *testing.T) {
	var methods []string
	src := newTestSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, src.EnsureIndex(context.Background()))
	assert.Equal(t, []string{http.MethodHead}, methods)
}
