package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"velo_router/pkg/check"
	"velo_router/pkg/export"
	"velo_router/pkg/geo"
	"velo_router/pkg/graph"
	"velo_router/pkg/routing"
)

func main() {
	graphDir := flag.String("graph", "lausanne", "Directory holding the graph files")
	waypointsArg := flag.String("waypoints", "", "Waypoints as lat,lng;lat,lng;... (at least two)")
	gpxPath := flag.String("gpx", "", "Write the route as GPX to this file")
	geojsonPath := flag.String("geojson", "", "Write the route as a GeoJSON feature to this file")
	maxStep := flag.Float64("max-step", routing.DefaultMaxStep, "Maximum spacing of elevation samples, in meters")
	searchDistance := flag.Float64("search-distance", routing.DefaultSearchDistance, "Search radius around waypoints, in meters")
	cost := flag.String("cost", "citybike", "Edge weighting: citybike or uniform")
	timeout := flag.Duration("timeout", 30*time.Second, "Give up after this long")
	flag.Parse()

	if *waypointsArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: route --graph <dir> --waypoints lat,lng;lat,lng[;...] [--gpx out.gpx] [--geojson out.geojson]")
		os.Exit(1)
	}
	waypoints, err := parseWaypoints(*waypointsArg)
	if err != nil {
		log.Fatalf("Invalid waypoints: %v", err)
	}

	log.Printf("Loading graph from %s...", *graphDir)
	g, err := graph.Load(*graphDir)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	defer g.Close()

	var cf routing.CostFunction
	switch *cost {
	case "citybike":
		cf = routing.NewCityBikeCost(g)
	case "uniform":
		cf = routing.UniformCost
	default:
		log.Fatalf("Unknown cost function %q", *cost)
	}
	engine := routing.NewEngine(g, cf, routing.EngineConfig{
		SearchDistance: *searchDistance,
		MaxStep:        *maxStep,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	it, err := engine.Plan(ctx, waypoints)
	if err != nil {
		log.Fatalf("Failed to plan route: %v", err)
	}
	log.Printf("Planned in %s", time.Since(start).Round(time.Microsecond))

	p := it.Profile
	fmt.Printf("Length:    %.1f km\n", it.Route.Length()/1000)
	fmt.Printf("Ascent:    %.0f m\n", p.TotalAscent())
	fmt.Printf("Descent:   %.0f m\n", p.TotalDescent())
	fmt.Printf("Elevation: %.0f m to %.0f m\n", p.MinElevation(), p.MaxElevation())
	fmt.Printf("Edges:     %d\n", len(it.Route.Edges()))
	if crow := waypoints[0].GreatCircleDistanceTo(waypoints[len(waypoints)-1]); crow > 0 {
		fmt.Printf("Detour:    %.2f (straight line %.1f km)\n", it.Route.Length()/crow, crow/1000)
	}

	if *gpxPath != "" {
		f, err := os.Create(*gpxPath)
		if err != nil {
			log.Fatalf("Failed to create GPX file: %v", err)
		}
		if err := export.WriteGPX(f, it.Route, p); err != nil {
			f.Close()
			log.Fatalf("Failed to write GPX: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to close GPX file: %v", err)
		}
		log.Printf("Wrote %s", *gpxPath)
	}

	if *geojsonPath != "" {
		b, err := export.GeoJSON(it.Route, p)
		if err != nil {
			log.Fatalf("Failed to encode GeoJSON: %v", err)
		}
		if err := os.WriteFile(*geojsonPath, b, 0o644); err != nil {
			log.Fatalf("Failed to write GeoJSON: %v", err)
		}
		log.Printf("Wrote %s", *geojsonPath)
	}
}

// parseWaypoints parses "lat,lng;lat,lng;..." into Swiss points.
func parseWaypoints(s string) ([]geo.PointCh, error) {
	var points []geo.PointCh
	for i, part := range strings.Split(s, ";") {
		var lat, lng float64
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%f,%f", &lat, &lng); err != nil {
			return nil, errors.Wrapf(err, "waypoint %d %q: expected lat,lng", i, part)
		}
		p, ok := geo.PointChOfDegrees(lng, lat)
		if err := check.Argument(ok, "waypoint %d (%f, %f) outside the covered area", i, lat, lng); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := check.Argument(len(points) >= 2, "need at least two waypoints, got %d", len(points)); err != nil {
		return nil, err
	}
	return points, nil
}
