package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"velo_router/pkg/api"
	"velo_router/pkg/graph"
	"velo_router/pkg/routing"
)

func main() {
	graphDir := flag.String("graph", "lausanne", "Directory holding the graph files")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	maxStep := flag.Float64("max-step", routing.DefaultMaxStep, "Maximum spacing of elevation samples, in meters")
	searchDistance := flag.Float64("search-distance", routing.DefaultSearchDistance, "Search radius around waypoints, in meters")
	cost := flag.String("cost", "citybike", "Edge weighting: citybike or uniform")
	flag.Parse()

	start := time.Now()

	// Load graph.
	log.Printf("Loading graph from %s...", *graphDir)
	g, err := graph.Load(*graphDir)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	defer g.Close()
	log.Printf("Loaded: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	var cf routing.CostFunction
	switch *cost {
	case "citybike":
		cf = routing.NewCityBikeCost(g)
	case "uniform":
		cf = routing.UniformCost
	default:
		log.Fatalf("Unknown cost function %q", *cost)
	}

	// Build routing engine.
	log.Println("Building R-tree spatial index...")
	engine := routing.NewEngine(g, cf, routing.EngineConfig{
		SearchDistance: *searchDistance,
		MaxStep:        *maxStep,
	})
	stats := engine.Stats()
	log.Printf("Components: %d, largest %d nodes", stats.Components, stats.LargestComponent)

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	// Setup HTTP server.
	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers(engine, *maxStep)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		g.Close()
		os.Exit(1)
	}
}
