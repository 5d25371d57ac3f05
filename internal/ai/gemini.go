package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"wayfarer/internal/types"
)

type GeminiOptions struct {
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	Temperature     float32
}

// GeminiProvider implements PreferenceExtractor and ItineraryGenerator on
// Google's Gemini models. Category reference embeddings are computed once in
// NewGeminiProvider and never mutated.
type GeminiProvider struct {
	client    *genai.Client
	embedder  *genai.EmbeddingModel
	model     *genai.GenerativeModel
	refs      map[string][]float64
	dimension int
}

// NewGeminiProvider initializes the client and embeds the category lexicon.
func NewGeminiProvider(ctx context.Context, opts GeminiOptions) (*GeminiProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini api key missing: %w", ErrPermanent)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.GenerationModel)
	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(opts.Temperature)

	p := &GeminiProvider{
		client:   client,
		embedder: client.EmbeddingModel(opts.EmbeddingModel),
		model:    model,
	}
	if err := p.loadReferences(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return p, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) loadReferences(ctx context.Context) error {
	batch := p.embedder.NewBatch()
	for _, cat := range Categories {
		batch.AddContent(genai.Text(cat + ": " + strings.Join(CategoryKeywords[cat], ", ")))
	}
	res, err := p.embedder.BatchEmbedContents(ctx, batch)
	if err != nil {
		return fmt.Errorf("embed categories: %w", classify(err))
	}
	if len(res.Embeddings) != len(Categories) {
		return fmt.Errorf("embed categories: got %d embeddings: %w", len(res.Embeddings), ErrMalformedOutput)
	}
	p.refs = make(map[string][]float64, len(Categories))
	for i, cat := range Categories {
		p.refs[cat] = toFloat64(res.Embeddings[i].Values)
	}
	p.dimension = len(p.refs[Categories[0]])
	return nil
}

func (p *GeminiProvider) Dimension() int { return p.dimension }

func (p *GeminiProvider) Extract(ctx context.Context, text string) (Embedding, error) {
	res, err := p.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return Embedding{}, fmt.Errorf("gemini embedding error: %w", classify(err))
	}
	if res.Embedding == nil || len(res.Embedding.Values) != p.dimension {
		return Embedding{}, fmt.Errorf("embedding has unexpected shape: %w", ErrMalformedOutput)
	}
	vec := toFloat64(res.Embedding.Values)
	return Embedding{
		Vector:     vec,
		Categories: referenceScores(vec, p.refs),
		Source:     "gemini",
	}, nil
}

// referenceScores keeps the categories whose reference embedding is closer to
// vec than the average, normalised to sum to one.
func referenceScores(vec []float64, refs map[string][]float64) []CategoryScore {
	sims := make(map[string]float64, len(refs))
	var mean float64
	for _, cat := range Categories {
		ref, ok := refs[cat]
		if !ok {
			continue
		}
		sims[cat] = CosineSimilarity(vec, ref)
		mean += sims[cat]
	}
	if len(sims) == 0 {
		return nil
	}
	mean /= float64(len(sims))

	hits := make(map[string]float64)
	for cat, s := range sims {
		if s > mean {
			hits[cat] = s - mean
		}
	}
	return scoresFromHits(hits)
}

func (p *GeminiProvider) Generate(ctx context.Context, req ItineraryRequest) (*Itinerary, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(buildItineraryPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", classify(err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini: %w", ErrMalformedOutput)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return parseItinerary(text.String(), req)
}

type rawItinerary struct {
	Days []struct {
		Day        int    `json:"day"`
		Theme      string `json:"theme"`
		Activities []struct {
			Time        string  `json:"time"`
			Name        string  `json:"name"`
			Description string  `json:"description"`
			Category    string  `json:"category"`
			Duration    string  `json:"duration"`
			Cost        float64 `json:"cost"`
		} `json:"activities"`
	} `json:"days"`
}

// parseItinerary validates and converts a model response. Day numbers are
// renumbered 1..n in response order; dates come from req.StartDate.
func parseItinerary(raw string, req ItineraryRequest) (*Itinerary, error) {
	clean := cleanJSONString(raw)
	if err := validateItineraryJSON(clean); err != nil {
		return nil, err
	}
	var r rawItinerary
	if err := json.Unmarshal([]byte(clean), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(r.Days) != req.Days {
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrMalformedOutput, req.Days, len(r.Days))
	}

	it := &Itinerary{Days: make([]DayPlan, len(r.Days))}
	for i, d := range r.Days {
		day := DayPlan{Day: i + 1, Theme: d.Theme}
		if !req.StartDate.IsZero() {
			date := req.StartDate.AddDate(0, 0, i)
			day.Date = &date
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, Activity{
				Time:        a.Time,
				Name:        a.Name,
				Description: a.Description,
				Category:    strings.ToLower(a.Category),
				Duration:    a.Duration,
				Cost:        types.Money{Amount: int64(math.Round(a.Cost)), Currency: defaultCurrency},
			})
		}
		it.Days[i] = day
	}
	return it, nil
}

func buildItineraryPrompt(req ItineraryRequest) string {
	cats := req.Preferences.TopCategories(3)
	interests := "general sightseeing"
	if len(cats) > 0 {
		interests = strings.Join(cats, ", ")
	}
	dest := req.Destination
	if dest == "" {
		dest = "a destination that suits the interests"
	}

	return fmt.Sprintf(`Role: You are a travel planner.
Plan a %d-day trip to %s.
Traveller interests (strongest first): %s.
Budget tier: %s. Price every activity in EUR.

Respond with JSON only, shaped as:
{"days":[{"day":1,"theme":"...","activities":[{"time":"09:00","name":"...","description":"...","category":"...","duration":"2 hours","cost":40}]}]}

Rules:
- Exactly %d entries in "days", numbered from 1.
- Three activities per day: morning, afternoon and evening, times in 24h HH:MM.
- "category" is one of: %s.`,
		req.Days, dest, interests, NormalizeBudget(req.Budget), req.Days, strings.Join(Categories, ", "))
}

// classify tags errors that retrying cannot fix with ErrPermanent.
func classify(err error) error {
	var ae *apierror.APIError
	if !errors.As(err, &ae) {
		return err
	}
	switch ae.HTTPCode() {
	case 400, 401, 403, 404:
		return fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	if st := ae.GRPCStatus(); st != nil {
		switch st.Code() {
		case codes.InvalidArgument, codes.PermissionDenied, codes.Unauthenticated, codes.NotFound:
			return fmt.Errorf("%w: %w", ErrPermanent, err)
		}
	}
	return err
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
