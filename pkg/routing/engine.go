package routing

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"velo_router/pkg/check"
	"velo_router/pkg/geo"
	"velo_router/pkg/graph"
)

// Defaults used by the itinerary planner.
const (
	DefaultSearchDistance = 500.0 // meters around a waypoint to find a node
	DefaultMaxStep        = 5.0   // meters between elevation samples
)

// WaypointError reports a waypoint with no node nearby.
type WaypointError struct {
	Index int
	Err   error
}

func (e *WaypointError) Error() string {
	return fmt.Sprintf("waypoint %d: %v", e.Index, e.Err)
}

func (e *WaypointError) Unwrap() error { return e.Err }

// Itinerary is a planned route through a list of waypoints.
type Itinerary struct {
	Route   Route
	Profile *ElevationProfile
	// Nodes holds the graph node chosen for each waypoint.
	Nodes []uint32
}

// Stats describes the loaded graph.
type Stats struct {
	Nodes            int
	Edges            int
	Components       int
	LargestComponent int
}

// Planner is the interface for itinerary queries.
type Planner interface {
	Plan(ctx context.Context, waypoints []geo.PointCh) (*Itinerary, error)
	Snap(p geo.PointCh) (SnapResult, error)
	Stats() Stats
}

// EngineConfig tunes an Engine. Zero fields take the defaults.
type EngineConfig struct {
	SearchDistance float64
	MaxStep        float64
}

// Engine implements Planner: it resolves waypoints to nodes, computes one
// best route per leg and joins them.
type Engine struct {
	g          *graph.Graph
	computer   *RouteComputer
	snapper    *Snapper
	components []uint32
	cfg        EngineConfig
}

// NewEngine creates a planner over g weighing edges with cf.
func NewEngine(g *graph.Graph, cf CostFunction, cfg EngineConfig) *Engine {
	if cfg.SearchDistance <= 0 {
		cfg.SearchDistance = DefaultSearchDistance
	}
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = DefaultMaxStep
	}
	return &Engine{
		g:          g,
		computer:   NewRouteComputer(g, cf),
		snapper:    NewSnapper(g),
		components: graph.Components(g),
		cfg:        cfg,
	}
}

// Plan computes the itinerary through waypoints, in order. Consecutive
// waypoints on the same node form no leg. It returns a *WaypointError
// wrapping ErrPointTooFar when a waypoint has no node within the search
// distance, and ErrNoRoute when a leg cannot be ridden. The context is
// checked between legs.
func (e *Engine) Plan(ctx context.Context, waypoints []geo.PointCh) (*Itinerary, error) {
	if err := check.Argument(len(waypoints) >= 2, "%d waypoints", len(waypoints)); err != nil {
		return nil, err
	}

	nodes := make([]uint32, len(waypoints))
	for i, p := range waypoints {
		n := e.g.NodeClosestTo(p, e.cfg.SearchDistance)
		if n == graph.NoNode {
			return nil, &WaypointError{Index: i, Err: ErrPointTooFar}
		}
		nodes[i] = n
	}

	var legs []Route
	for i := 1; i < len(nodes); i++ {
		from, to := nodes[i-1], nodes[i]
		if from == to {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.components[from] != e.components[to] {
			return nil, ErrNoRoute
		}
		leg, err := e.computer.BestRouteBetween(from, to)
		if err != nil {
			return nil, errors.Wrapf(err, "leg %d", i)
		}
		legs = append(legs, leg)
	}
	if len(legs) == 0 {
		return nil, ErrNoRoute
	}

	route, err := NewMultiRoute(legs)
	if err != nil {
		return nil, err
	}
	profile, err := ComputeElevationProfile(route, e.cfg.MaxStep)
	if err != nil {
		return nil, errors.Wrap(err, "elevation profile")
	}
	return &Itinerary{Route: route, Profile: profile, Nodes: nodes}, nil
}

// Snap returns the nearest edge point within the search distance.
func (e *Engine) Snap(p geo.PointCh) (SnapResult, error) {
	return e.snapper.Snap(p, e.cfg.SearchDistance)
}

// Stats returns graph counts.
func (e *Engine) Stats() Stats {
	return Stats{
		Nodes:            e.g.NodeCount(),
		Edges:            e.g.EdgeCount(),
		Components:       graph.ComponentCount(e.components),
		LargestComponent: graph.LargestComponentSize(e.components),
	}
}
