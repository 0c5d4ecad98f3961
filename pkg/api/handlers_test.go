package api

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"velo_router/pkg/geo"
	"velo_router/pkg/graph"
	"velo_router/pkg/routing"
)

// mockPlanner implements routing.Planner for testing.
type mockPlanner struct {
	itinerary *routing.Itinerary
	snap      routing.SnapResult
	stats     routing.Stats
	err       error
}

func (m *mockPlanner) Plan(ctx context.Context, waypoints []geo.PointCh) (*routing.Itinerary, error) {
	return m.itinerary, m.err
}

func (m *mockPlanner) Snap(p geo.PointCh) (routing.SnapResult, error) {
	return m.snap, m.err
}

func (m *mockPlanner) Stats() routing.Stats { return m.stats }

var (
	pA = geo.PointCh{E: 2_533_000, N: 1_152_000}
	pB = geo.PointCh{E: 2_533_300, N: 1_152_000}
	pC = geo.PointCh{E: 2_533_300, N: 1_152_400}
)

// testItinerary returns a two leg itinerary A-B-C of 300 m and 400 m.
func testItinerary(t *testing.T) *routing.Itinerary {
	t.Helper()
	ramp, err := geo.Sampled([]float32{400, 430}, 300)
	if err != nil {
		t.Fatal(err)
	}
	ab, err := routing.NewSingleRoute([]routing.Edge{
		{FromNode: 0, ToNode: 1, FromPoint: pA, ToPoint: pB, Length: 300, Profile: ramp},
	})
	if err != nil {
		t.Fatal(err)
	}
	bc, err := routing.NewSingleRoute([]routing.Edge{
		{FromNode: 1, ToNode: 2, FromPoint: pB, ToPoint: pC, Length: 400, Profile: geo.Constant(430)},
	})
	if err != nil {
		t.Fatal(err)
	}
	route, err := routing.NewMultiRoute([]routing.Route{ab, bc})
	if err != nil {
		t.Fatal(err)
	}
	profile, err := routing.ComputeElevationProfile(route, routing.DefaultMaxStep)
	if err != nil {
		t.Fatal(err)
	}
	return &routing.Itinerary{Route: route, Profile: profile, Nodes: []uint32{0, 1, 2}}
}

const routeBody = `{"waypoints":[{"lat":46.5178,"lng":6.5673},{"lat":46.52,"lng":6.571},{"lat":46.5167,"lng":6.6291}]}`

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, w.Body.String())
	}
	return resp
}

func TestHandleRoute_Success(t *testing.T) {
	h := NewHandlers(&mockPlanner{itinerary: testItinerary(t)}, routing.DefaultMaxStep)

	w := httptest.NewRecorder()
	h.HandleRoute(w, postJSON("/api/v1/route", routeBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalLengthMeters != 700 {
		t.Errorf("TotalLengthMeters = %f, want 700", resp.TotalLengthMeters)
	}
	if resp.Geometry == nil || resp.Geometry.Type != "LineString" {
		t.Errorf("Geometry = %+v, want a LineString", resp.Geometry)
	}
	if len(resp.Segments) != 2 {
		t.Fatalf("Segments length = %d, want 2", len(resp.Segments))
	}
	if resp.Segments[0].LengthMeters != 300 || resp.Segments[1].LengthMeters != 400 {
		t.Errorf("segment lengths = %f, %f", resp.Segments[0].LengthMeters, resp.Segments[1].LengthMeters)
	}
	if n := len(resp.Segments[1].Geometry); n != 2 {
		t.Errorf("second segment has %d points, want 2", n)
	}
	if len(resp.Profile.Samples) != 141 || resp.Profile.StepMeters != 5 {
		t.Errorf("profile has %d samples every %f m", len(resp.Profile.Samples), resp.Profile.StepMeters)
	}
	if math.Abs(resp.Profile.Ascent-30) > 0.01 || resp.Profile.Descent != 0 {
		t.Errorf("ascent/descent = %f/%f, want 30/0", resp.Profile.Ascent, resp.Profile.Descent)
	}
}

func TestHandleRoute_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantCode    string
		wantField   string
	}{
		{"invalid json", "not json", "application/json", "invalid_request", ""},
		{"missing content type", routeBody, "", "invalid_request", ""},
		{"one waypoint", `{"waypoints":[{"lat":46.5,"lng":6.6}]}`, "application/json", "invalid_request", "waypoints"},
		{"latitude out of range", `{"waypoints":[{"lat":46.5,"lng":6.6},{"lat":91,"lng":6.6}]}`, "application/json", "invalid_coordinates", "waypoints[1]"},
		{"outside covered area", `{"waypoints":[{"lat":1.3,"lng":103.8},{"lat":46.5,"lng":6.6}]}`, "application/json", "invalid_coordinates", "waypoints[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(&mockPlanner{}, 0)
			req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()

			h.HandleRoute(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			resp := decodeError(t, w)
			if resp.Error != tt.wantCode || resp.Field != tt.wantField {
				t.Errorf("error = %+v, want %s/%q", resp, tt.wantCode, tt.wantField)
			}
		})
	}
}

func TestHandleRoute_PlannerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"no route", routing.ErrNoRoute, http.StatusNotFound, "no_route_found", ""},
		{"point too far", &routing.WaypointError{Index: 2, Err: routing.ErrPointTooFar}, http.StatusUnprocessableEntity, "point_too_far_from_road", "waypoints[2]"},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, "request_timeout", ""},
		{"internal", io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal_error", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(&mockPlanner{err: tt.err}, 0)
			w := httptest.NewRecorder()

			h.HandleRoute(w, postJSON("/api/v1/route", routeBody))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeError(t, w)
			if resp.Error != tt.wantCode || resp.Field != tt.wantField {
				t.Errorf("error = %+v, want %s/%q", resp, tt.wantCode, tt.wantField)
			}
		})
	}
}

func TestHandleRouteGPX(t *testing.T) {
	h := NewHandlers(&mockPlanner{itinerary: testItinerary(t)}, 0)
	w := httptest.NewRecorder()

	h.HandleRouteGPX(w, postJSON("/api/v1/route.gpx", routeBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/gpx+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if n := strings.Count(w.Body.String(), "<rtept"); n != 3 {
		t.Errorf("GPX has %d rtept, want 3", n)
	}
}

func TestHandleSnap(t *testing.T) {
	mock := &mockPlanner{snap: routing.SnapResult{
		Edge: 7, FromNode: 3, ToNode: 4, Length: 100, Position: 80, Point: pB, Distance: 12.5,
		Attributes: graph.AttributeSetOf(graph.HighwayTrack, graph.TracktypeGrade2),
	}}
	h := NewHandlers(mock, 0)
	w := httptest.NewRecorder()

	h.HandleSnap(w, postJSON("/api/v1/snap", `{"lat":46.5178,"lng":6.5673}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	var resp SnapResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Node != 4 || resp.Edge != 7 || resp.PositionMeters != 80 || resp.DistanceMeters != 12.5 {
		t.Errorf("SnapResponse = %+v", resp)
	}
	lon, lat := pB.Degrees()
	if math.Abs(resp.Point.Lat-lat) > 1e-9 || math.Abs(resp.Point.Lng-lon) > 1e-9 {
		t.Errorf("Point = %+v, want (%f, %f)", resp.Point, lat, lon)
	}
	if len(resp.Tags) != 2 || resp.Tags.Find("highway") != "track" || resp.Tags.Find("tracktype") != "grade2" {
		t.Errorf("Tags = %v", resp.Tags)
	}

	h = NewHandlers(&mockPlanner{err: routing.ErrPointTooFar}, 0)
	w = httptest.NewRecorder()
	h.HandleSnap(w, postJSON("/api/v1/snap", `{"lat":46.5178,"lng":6.5673}`))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("too far status = %d, want 422", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&mockPlanner{}, 0)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want 'ok'", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	stats := routing.Stats{Nodes: 500000, Edges: 1000000, Components: 3, LargestComponent: 499000}
	h := NewHandlers(&mockPlanner{stats: stats}, 0)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	want := StatsResponse{NumNodes: 500000, NumEdges: 1000000, NumComponents: 3, LargestComponent: 499000}
	if resp != want {
		t.Errorf("stats = %+v, want %+v", resp, want)
	}
}

func TestRouter(t *testing.T) {
	cfg := DefaultConfig(":0")
	cfg.CORSOrigin = "https://example.org"
	srv := httptest.NewServer(NewRouter(cfg, NewHandlers(&mockPlanner{itinerary: testItinerary(t)}, 0)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != cfg.CORSOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	resp, err = http.Post(srv.URL+"/api/v1/route.gpx", "application/json", strings.NewReader(routeBody))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("route.gpx status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/v1/route")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/v1/route status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "velo_router_http_requests_total") {
		t.Error("/metrics lacks the request counter")
	}
}

func TestConcurrencyLimit(t *testing.T) {
	sem := make(chan struct{}, 1)
	sem <- struct{}{}
	h := withMiddleware("health", NewHandlers(&mockPlanner{}, 0).HandleHealth, sem, DefaultConfig(":0"))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/api/v1/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Error("missing Retry-After")
	}
}

func TestRecovery(t *testing.T) {
	h := withMiddleware("panic", func(http.ResponseWriter, *http.Request) { panic("boom") }, make(chan struct{}, 1), DefaultConfig(":0"))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
