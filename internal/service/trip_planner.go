// README: TripPlanner runs the plan pipeline: preferences and itinerary on one
// branch, locations and route on the other, then assembly.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	"wayfarer/internal/metrics"
	"wayfarer/internal/modules/location"
	"wayfarer/internal/modules/pricing"
	"wayfarer/internal/modules/route"
)

// StopsPerDay caps how many locations the route keeps per trip day.
const StopsPerDay = 3

// Collaborators are built once at start-up and shared read-only by all requests.
type Collaborators struct {
	Extractor ai.PreferenceExtractor
	Source    location.Source
	Optimizer route.Optimizer
	Generator ai.ItineraryGenerator
}

type TripPlanner struct {
	c      Collaborators
	policy RetryPolicy
	logger *zap.Logger
	tracer trace.Tracer
}

func NewTripPlanner(c Collaborators, cfg config.PlannerConfig, logger *zap.Logger) *TripPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripPlanner{
		c: c,
		policy: RetryPolicy{
			Timeout:     cfg.CollaboratorTimeout,
			MaxAttempts: cfg.MaxAttempts,
			BaseBackoff: cfg.BaseBackoff,
		},
		logger: logger,
		tracer: otel.Tracer("wayfarer/service"),
	}
}

// GenerateTravelPlan validates q, runs every collaborator and returns the
// assembled plan. Either the whole plan is returned or an error.
func (p *TripPlanner) GenerateTravelPlan(ctx context.Context, q Query) (*TravelPlan, error) {
	start := time.Now()
	q, err := q.normalize()
	if err != nil {
		metrics.PlansTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "GenerateTravelPlan", trace.WithAttributes(
		attribute.Int("plan.days", q.Days),
		attribute.String("plan.destination", q.Destination),
		attribute.StringSlice("plan.preferences", q.Preferences),
	))
	defer span.End()

	var (
		emb ai.Embedding
		it  *ai.Itinerary
		rt  *route.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if emb, err = p.extract(gctx, q.Text); err != nil {
			return err
		}
		it, err = p.generate(gctx, q, emb)
		return err
	})
	g.Go(func() error {
		var err error
		rt, err = p.route(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan generation failed")
		metrics.PlansTotal.WithLabelValues(outcome(err)).Inc()
		p.logger.Error("travel plan failed",
			zap.Int("days", q.Days),
			zap.String("destination", q.Destination),
			zap.Error(err),
		)
		return nil, err
	}

	plan := Assemble(it, rt)
	plan.Request = q
	plan.Preferences = append([]ai.CategoryScore(nil), emb.Categories...)
	cost := pricing.EstimateTrip(q.Budget, plan.Days, rt.TotalDistanceKm)
	plan.Cost = &cost

	elapsed := time.Since(start)
	metrics.PlansTotal.WithLabelValues("success").Inc()
	metrics.PlanDuration.Observe(elapsed.Seconds())
	span.SetStatus(codes.Ok, "plan generated")
	p.logger.Info("travel plan generated",
		zap.Int("days", len(plan.Days)),
		zap.String("destination", q.Destination),
		zap.Int("stops", len(rt.Stops)),
		zap.String("embedding", emb.Source),
		zap.Stringer("cost", cost.Total),
		zap.Duration("elapsed", elapsed),
	)
	return plan, nil
}

func (p *TripPlanner) extract(ctx context.Context, text string) (ai.Embedding, error) {
	return call(ctx, p, "preference_extractor", func(ctx context.Context) (ai.Embedding, error) {
		emb, err := p.c.Extractor.Extract(ctx, text)
		if err != nil {
			return ai.Embedding{}, err
		}
		if dim := p.c.Extractor.Dimension(); len(emb.Vector) != dim {
			return ai.Embedding{}, fmt.Errorf("%w: embedding length %d, want %d", ai.ErrMalformedOutput, len(emb.Vector), dim)
		}
		return emb, nil
	})
}

func (p *TripPlanner) generate(ctx context.Context, q Query, emb ai.Embedding) (*ai.Itinerary, error) {
	req := ai.ItineraryRequest{
		Preferences: emb,
		Days:        q.Days,
		Destination: q.Destination,
		Budget:      q.Budget,
		StartDate:   q.StartDate,
	}
	return call(ctx, p, "itinerary_generator", func(ctx context.Context) (*ai.Itinerary, error) {
		it, err := p.c.Generator.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		if it == nil || len(it.Days) != q.Days {
			got := 0
			if it != nil {
				got = len(it.Days)
			}
			return nil, fmt.Errorf("%w: itinerary has %d days, want %d", ai.ErrMalformedOutput, got, q.Days)
		}
		return it, nil
	})
}

func (p *TripPlanner) route(ctx context.Context, q Query) (*route.Result, error) {
	records, err := call(ctx, p, "location_source", func(ctx context.Context) ([]location.Record, error) {
		return p.c.Source.Fetch(ctx, q.Destination)
	})
	if err != nil {
		return nil, err
	}

	_, span := p.tracer.Start(ctx, "preprocess_locations", trace.WithAttributes(attribute.Int("records", len(records))))
	table, err := location.Preprocess(records)
	span.End()
	if err != nil {
		return nil, err
	}

	constraints := route.Constraints{
		Preferences: q.Preferences,
		MaxStops:    q.Days * StopsPerDay,
	}
	return call(ctx, p, "route_optimizer", func(ctx context.Context) (*route.Result, error) {
		return p.c.Optimizer.Optimize(ctx, table, constraints)
	})
}

// AnalyzeQueries profiles each query and scores every pair by cosine similarity.
func (p *TripPlanner) AnalyzeQueries(ctx context.Context, texts []string) (*Analysis, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no queries", ErrInvalidInput)
	}
	cleaned := make([]string, len(texts))
	for i, text := range texts {
		q, err := Query{Text: text, Days: 1}.normalize()
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		cleaned[i] = q.Text
	}

	out := &Analysis{Queries: make([]QueryAnalysis, len(texts))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, text := range cleaned {
		g.Go(func() error {
			emb, err := p.extract(gctx, text)
			if err != nil {
				return err
			}
			out.Queries[i] = QueryAnalysis{Text: text, Categories: emb.Categories, Vector: emb.Vector}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Similarity = make([][]float64, len(texts))
	for i := range out.Queries {
		out.Similarity[i] = make([]float64, len(texts))
		for j := range out.Queries {
			out.Similarity[i][j] = ai.CosineSimilarity(out.Queries[i].Vector, out.Queries[j].Vector)
		}
	}
	return out, nil
}

// CompareQueries returns the cosine similarity of two queries' embeddings.
func (p *TripPlanner) CompareQueries(ctx context.Context, a, b string) (float64, error) {
	an, err := p.AnalyzeQueries(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	return an.Similarity[0][1], nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, location.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrCollaborator):
		return "collaborator_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
