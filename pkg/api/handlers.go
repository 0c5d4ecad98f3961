package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"velo_router/pkg/export"
	"velo_router/pkg/geo"
	"velo_router/pkg/routing"
)

// MaxWaypoints bounds the number of waypoints of a route request.
const MaxWaypoints = 50

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	planner routing.Planner
	maxStep float64
}

// NewHandlers creates handlers planning with planner. maxStep is the
// elevation sample spacing reported with profiles.
func NewHandlers(planner routing.Planner, maxStep float64) *Handlers {
	if maxStep <= 0 {
		maxStep = routing.DefaultMaxStep
	}
	return &Handlers{
		planner: planner,
		maxStep: maxStep,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	it, ok := h.plan(w, r)
	if !ok {
		return
	}
	routeLength.Observe(it.Route.Length())

	resp := RouteResponse{
		TotalLengthMeters: it.Route.Length(),
		Geometry:          geojson.NewGeometry(export.LineString(it.Route)),
		Profile: ProfileJSON{
			Min:        it.Profile.MinElevation(),
			Max:        it.Profile.MaxElevation(),
			Ascent:     it.Profile.TotalAscent(),
			Descent:    it.Profile.TotalDescent(),
			StepMeters: it.Profile.Length() / float64(len(it.Profile.Samples())-1),
			Samples:    it.Profile.Samples(),
		},
	}
	for _, f := range export.SegmentFeatures(it.Route).Features {
		ls, _ := f.Geometry.(orb.LineString)
		geom := make([]LatLngJSON, len(ls))
		for i, p := range ls {
			geom[i] = LatLngJSON{Lat: p.Lat(), Lng: p.Lon()}
		}
		resp.Segments = append(resp.Segments, SegmentJSON{
			LengthMeters: f.Properties.MustFloat64("length"),
			Geometry:     geom,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleRouteGPX handles POST /api/v1/route.gpx.
func (h *Handlers) HandleRouteGPX(w http.ResponseWriter, r *http.Request) {
	it, ok := h.plan(w, r)
	if !ok {
		return
	}
	routeLength.Observe(it.Route.Length())

	b, err := export.GPX(it.Route, it.Profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	w.Header().Set("Content-Type", "application/gpx+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="route.gpx"`)
	w.Write(b)
}

// HandleSnap handles POST /api/v1/snap.
func (h *Handlers) HandleSnap(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	var req LatLngJSON
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	p, err := toPointCh(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "")
		return
	}

	res, err := h.planner.Snap(p)
	if err != nil {
		if errors.Is(err, routing.ErrPointTooFar) {
			writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	lon, lat := res.Point.Degrees()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SnapResponse{
		Node:           res.NearestNode(),
		Edge:           res.Edge,
		Point:          LatLngJSON{Lat: lat, Lng: lon},
		PositionMeters: res.Position,
		DistanceMeters: res.Distance,
		Tags:           res.Attributes.Tags(),
	})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	s := h.planner.Stats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		NumNodes:         s.Nodes,
		NumEdges:         s.Edges,
		NumComponents:    s.Components,
		LargestComponent: s.LargestComponent,
	})
}

// plan decodes a route request and plans it. On failure it writes the error
// response and returns false.
func (h *Handlers) plan(w http.ResponseWriter, r *http.Request) (*routing.Itinerary, bool) {
	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return nil, false
	}

	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return nil, false
	}
	if len(req.Waypoints) < 2 || len(req.Waypoints) > MaxWaypoints {
		writeError(w, http.StatusBadRequest, "invalid_request", "waypoints")
		return nil, false
	}

	waypoints := make([]geo.PointCh, len(req.Waypoints))
	for i, ll := range req.Waypoints {
		p, err := toPointCh(ll)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", waypointField(i))
			return nil, false
		}
		waypoints[i] = p
	}

	it, err := h.planner.Plan(r.Context(), waypoints)
	if err != nil {
		var we *routing.WaypointError
		switch {
		case errors.As(err, &we) && errors.Is(err, routing.ErrPointTooFar):
			writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", waypointField(we.Index))
		case errors.Is(err, routing.ErrPointTooFar):
			writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "")
		case errors.Is(err, routing.ErrNoRoute):
			writeError(w, http.StatusNotFound, "no_route_found", "")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return nil, false
	}
	return it, true
}

func isJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

func waypointField(i int) string {
	return fmt.Sprintf("waypoints[%d]", i)
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

// toPointCh validates ll and converts it to the Swiss system.
func toPointCh(ll LatLngJSON) (geo.PointCh, error) {
	if err := validateCoord(ll); err != nil {
		return geo.PointCh{}, err
	}
	p, ok := geo.PointChOfDegrees(ll.Lng, ll.Lat)
	if !ok {
		return geo.PointCh{}, errors.New("coordinates outside the covered area")
	}
	return p, nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	apiErrors.WithLabelValues(code).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
