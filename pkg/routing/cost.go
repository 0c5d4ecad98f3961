package routing

import (
	"math"

	"velo_router/pkg/graph"
)

// CostFunction weighs edges for the path finder. CostFactor multiplies the
// length of edge when leaving node; it must be at least 1, and +Inf marks
// an edge that may not be used.
type CostFunction interface {
	CostFactor(node, edge uint32) float64
}

// CostFunc adapts a plain function to CostFunction.
type CostFunc func(node, edge uint32) float64

func (f CostFunc) CostFactor(node, edge uint32) float64 { return f(node, edge) }

// UniformCost routes by length alone.
var UniformCost CostFunction = CostFunc(func(uint32, uint32) float64 { return 1 })

var (
	bicycleForbidden = graph.AttributeSetOf(graph.BicycleNo, graph.BicyclePrivate)
	bicycleAllowed   = graph.AttributeSetOf(graph.BicycleYes, graph.BicycleDesignated, graph.BicyclePermissive)
	accessForbidden  = graph.AttributeSetOf(graph.AccessNo, graph.AccessPrivate, graph.VehicleNo, graph.VehiclePrivate)
	fastRoads        = graph.AttributeSetOf(graph.HighwayMotorway, graph.HighwayMotorwayLink,
		graph.HighwayTrunk, graph.HighwayTrunkLink)
	contraflowAllowed = graph.AttributeSetOf(graph.OnewayBicycleNo, graph.CyclewayOpposite,
		graph.CyclewayOppositeLane, graph.CyclewayOppositeTrack)
	roughSurfaces = graph.AttributeSetOf(graph.SurfaceUnpaved, graph.SurfaceGravel, graph.SurfaceGround,
		graph.SurfaceGrass, graph.SurfaceDirt, graph.SurfaceSand, graph.SurfacePebblestone,
		graph.SurfaceCobblestone, graph.SurfaceSett, graph.TracktypeGrade3, graph.TracktypeGrade4,
		graph.TracktypeGrade5)
)

// Base factors by highway type. Types not listed cost 1.3.
var highwayFactors = []struct {
	highway graph.Attribute
	factor  float64
}{
	{graph.HighwayCycleway, 1},
	{graph.HighwayLivingStreet, 1.1},
	{graph.HighwayResidential, 1.1},
	{graph.HighwayService, 1.1},
	{graph.HighwayTrack, 1.2},
	{graph.HighwayPath, 1.2},
	{graph.HighwayUnclassified, 1.2},
	{graph.HighwayTertiary, 1.2},
	{graph.HighwayTertiaryLink, 1.2},
	{graph.HighwaySecondary, 1.5},
	{graph.HighwaySecondaryLink, 1.5},
	{graph.HighwayPrimary, 2},
	{graph.HighwayPrimaryLink, 2},
	{graph.HighwayFootway, 2},
	{graph.HighwayPedestrian, 2},
	{graph.HighwayBridleway, 3},
	{graph.HighwaySteps, 4},
}

// CityBikeCost weighs edges for a city bike: it avoids busy and rough
// roads, honours access and one-way restrictions, and prefers cycleways.
type CityBikeCost struct {
	g *graph.Graph
}

// NewCityBikeCost returns the city bike cost function over g.
func NewCityBikeCost(g *graph.Graph) CityBikeCost { return CityBikeCost{g: g} }

func (c CityBikeCost) CostFactor(_, edge uint32) float64 {
	attrs := c.g.EdgeAttributes(edge)

	allowed := attrs.Intersects(bicycleAllowed)
	switch {
	case attrs.Intersects(bicycleForbidden):
		return math.Inf(1)
	case !allowed && attrs.Intersects(accessForbidden):
		return math.Inf(1)
	case !allowed && attrs.Intersects(fastRoads):
		return math.Inf(1)
	case againstOneway(attrs, c.g.EdgeIsInverted(edge)):
		return math.Inf(1)
	}

	factor := 1.3
	for _, h := range highwayFactors {
		if attrs.Contains(h.highway) {
			factor = h.factor
			break
		}
	}
	if allowed && factor > 1.2 && !attrs.Contains(graph.HighwaySteps) {
		factor = 1.2
	}
	if attrs.Intersects(roughSurfaces) {
		factor *= 1.2
	}
	return factor
}

// againstOneway reports whether riding an edge in its stored direction
// breaks a one-way restriction. Inverted edges run against their OSM way.
func againstOneway(attrs graph.AttributeSet, inverted bool) bool {
	if attrs.Intersects(contraflowAllowed) {
		return false
	}
	oneway := attrs.Contains(graph.OnewayYes) || attrs.Contains(graph.OnewayBicycleYes)
	if oneway && inverted {
		return true
	}
	return attrs.Contains(graph.OnewayM1) && !inverted
}
