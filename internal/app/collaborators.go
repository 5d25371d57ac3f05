// README: Builds the planner's collaborators from configuration. Model clients,
// category reference embeddings and map clients are created here once per process.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	"wayfarer/internal/infra"
	wmaps "wayfarer/internal/maps"
	"wayfarer/internal/modules/location"
	"wayfarer/internal/modules/route"
	"wayfarer/internal/service"
)

// DefaultRegion is used when a query names no destination.
const DefaultRegion = "banff"

// Collaborators holds the built collaborators and whatever must be released
// on shutdown.
type Collaborators struct {
	service.Collaborators
	closers []func()
}

func (c *Collaborators) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// BuildCollaborators picks Gemini when an API key is configured and the local
// keyword/template models otherwise. The location source and the route
// distance matrix follow cfg.Locations and cfg.Maps.
func BuildCollaborators(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Collaborators, error) {
	out := &Collaborators{}

	if cfg.AI.GeminiKey != "" {
		gp, err := ai.NewGeminiProvider(ctx, ai.GeminiOptions{
			APIKey:          cfg.AI.GeminiKey,
			EmbeddingModel:  cfg.AI.EmbeddingModel,
			GenerationModel: cfg.AI.GenerationModel,
			Temperature:     cfg.AI.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini init: %w", err)
		}
		out.closers = append(out.closers, gp.Close)
		out.Extractor, out.Generator = gp, gp
		logger.Info("using gemini models",
			zap.String("embedding_model", cfg.AI.EmbeddingModel),
			zap.String("generation_model", cfg.AI.GenerationModel),
			zap.Int("dimension", gp.Dimension()))
	} else {
		out.Extractor, out.Generator = ai.NewKeywordExtractor(), ai.NewTemplateGenerator()
		logger.Info("GEMINI_API_KEY not set, using local keyword and template models")
	}

	src, err := buildSource(ctx, cfg)
	if err != nil {
		out.Close()
		return nil, err
	}
	out.Source = src
	logger.Info("location source ready", zap.String("source", cfg.Locations.Source))

	var matrix route.DistanceMatrix
	if cfg.Maps.UseForRoutes {
		client, err := wmaps.NewClient(cfg.Maps.APIKey)
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("maps client: %w", err)
		}
		matrix = wmaps.NewRouteService(client)
		logger.Info("route distances from google distance matrix")
	}
	out.Optimizer = route.NewGraphOptimizer(matrix)
	return out, nil
}

func buildSource(ctx context.Context, cfg config.Config) (location.Source, error) {
	switch cfg.Locations.Source {
	case "places":
		client, err := wmaps.NewClient(cfg.Maps.APIKey)
		if err != nil {
			return nil, fmt.Errorf("maps client: %w", err)
		}
		return wmaps.NewPlacesSource(client, DefaultRegion, cfg.Locations.MaxResults), nil
	case "elasticsearch":
		es, err := infra.NewElasticsearch(ctx, cfg.Elasticsearch.Addresses)
		if err != nil {
			return nil, err
		}
		return location.NewSearchSource(es, cfg.Elasticsearch.Index, cfg.Locations.MaxResults), nil
	case "static", "":
		return location.NewSampleSource(cfg.Locations.MaxResults), nil
	default:
		return nil, fmt.Errorf("unknown location source %q", cfg.Locations.Source)
	}
}
