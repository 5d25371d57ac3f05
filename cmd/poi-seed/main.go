// README: Seeds the Elasticsearch points-of-interest index with the bundled sample regions.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"wayfarer/internal/config"
	"wayfarer/internal/infra"
	"wayfarer/internal/logger"
	"wayfarer/internal/modules/location"
)

func main() {
	only := flag.String("region", "", "seed a single region (default: all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	es, err := infra.NewElasticsearch(ctx, cfg.Elasticsearch.Addresses)
	if err != nil {
		lg.Fatal("elasticsearch", zap.Error(err))
	}
	src := location.NewSearchSource(es, cfg.Elasticsearch.Index, cfg.Locations.MaxResults)
	if err := src.EnsureIndex(ctx); err != nil {
		lg.Fatal("ensure index", zap.String("index", cfg.Elasticsearch.Index), zap.Error(err))
	}

	seeded := 0
	for _, region := range location.SampleRegions() {
		if *only != "" && !strings.EqualFold(*only, region.Name) {
			continue
		}
		if err := src.IndexRegion(ctx, region); err != nil {
			lg.Fatal("index region", zap.String("region", region.Name), zap.Error(err))
		}
		lg.Info("indexed region", zap.String("region", region.Name), zap.Int("records", len(region.Records)))
		seeded++
	}
	lg.Info("seed complete", zap.Int("regions", seeded))
}
