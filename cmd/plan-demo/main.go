// README: Runs one travel plan against the configured collaborators and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"wayfarer/internal/app"
	"wayfarer/internal/config"
	"wayfarer/internal/logger"
	"wayfarer/internal/service"
)

func main() {
	text := flag.String("text", "I want adventure and hiking in the mountains", "free-text travel query")
	days := flag.Int("days", 5, "trip length in days")
	prefs := flag.String("prefs", "adventure", "comma-separated preference tags")
	dest := flag.String("destination", "", "destination region (empty uses the default)")
	budget := flag.String("budget", "medium", "low, medium or high")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.Must(cfg.Log.Level, "console")
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Planner.PlanTimeout)
	defer cancel()

	collab, err := app.BuildCollaborators(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to build collaborators", zap.Error(err))
	}
	defer collab.Close()

	planner := service.NewTripPlanner(collab.Collaborators, cfg.Planner, lg)
	plan, err := planner.GenerateTravelPlan(ctx, service.Query{
		Text:        *text,
		Days:        *days,
		Preferences: splitTags(*prefs),
		Destination: *dest,
		Budget:      *budget,
		StartDate:   time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
	})
	if err != nil {
		lg.Fatal("plan failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		lg.Fatal("encode plan", zap.Error(err))
	}
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
