package graph

import (
	"math/bits"
	"strings"

	"github.com/paulmach/osm"

	"velo_router/pkg/check"
)

// Attribute is one OSM key=value pair recorded on edges. The numeric value
// is the bit index used in the attributes file, so the order is fixed.
type Attribute uint8

const (
	HighwayService Attribute = iota
	HighwayTrack
	HighwayResidential
	HighwayFootway
	HighwayPath
	HighwayUnclassified
	HighwayTertiary
	HighwaySecondary
	HighwaySteps
	HighwayPrimary
	HighwayCycleway
	HighwayMotorway
	HighwayTrunk
	HighwayMotorwayLink
	HighwayLivingStreet
	HighwayPedestrian
	HighwayTrunkLink
	HighwayPrimaryLink
	HighwaySecondaryLink
	HighwayTertiaryLink
	HighwayBridleway

	TracktypeGrade1
	TracktypeGrade2
	TracktypeGrade3
	TracktypeGrade4
	TracktypeGrade5

	SurfaceAsphalt
	SurfaceUnpaved
	SurfaceGravel
	SurfacePaved
	SurfaceGround
	SurfaceConcrete
	SurfacePavingStones
	SurfaceGrass
	SurfaceDirt
	SurfaceFineGravel
	SurfaceCompacted
	SurfaceSett
	SurfaceSand
	SurfacePebblestone
	SurfaceWood
	SurfaceCobblestone

	OnewayYes
	OnewayM1

	OnewayBicycleYes
	OnewayBicycleNo

	VehicleNo
	VehiclePrivate

	AccessYes
	AccessNo
	AccessPrivate
	AccessPermissive

	BicycleYes
	BicycleNo
	BicycleDesignated
	BicycleDismount
	BicycleUseSidepath
	BicyclePermissive
	BicyclePrivate

	CyclewayOpposite
	CyclewayOppositeLane
	CyclewayOppositeTrack

	// AttributeCount is the number of known attributes.
	AttributeCount int = iota
)

var attributeTags = [AttributeCount][2]string{
	{"highway", "service"},
	{"highway", "track"},
	{"highway", "residential"},
	{"highway", "footway"},
	{"highway", "path"},
	{"highway", "unclassified"},
	{"highway", "tertiary"},
	{"highway", "secondary"},
	{"highway", "steps"},
	{"highway", "primary"},
	{"highway", "cycleway"},
	{"highway", "motorway"},
	{"highway", "trunk"},
	{"highway", "motorway_link"},
	{"highway", "living_street"},
	{"highway", "pedestrian"},
	{"highway", "trunk_link"},
	{"highway", "primary_link"},
	{"highway", "secondary_link"},
	{"highway", "tertiary_link"},
	{"highway", "bridleway"},
	{"tracktype", "grade1"},
	{"tracktype", "grade2"},
	{"tracktype", "grade3"},
	{"tracktype", "grade4"},
	{"tracktype", "grade5"},
	{"surface", "asphalt"},
	{"surface", "unpaved"},
	{"surface", "gravel"},
	{"surface", "paved"},
	{"surface", "ground"},
	{"surface", "concrete"},
	{"surface", "paving_stones"},
	{"surface", "grass"},
	{"surface", "dirt"},
	{"surface", "fine_gravel"},
	{"surface", "compacted"},
	{"surface", "sett"},
	{"surface", "sand"},
	{"surface", "pebblestone"},
	{"surface", "wood"},
	{"surface", "cobblestone"},
	{"oneway", "yes"},
	{"oneway", "-1"},
	{"oneway:bicycle", "yes"},
	{"oneway:bicycle", "no"},
	{"vehicle", "no"},
	{"vehicle", "private"},
	{"access", "yes"},
	{"access", "no"},
	{"access", "private"},
	{"access", "permissive"},
	{"bicycle", "yes"},
	{"bicycle", "no"},
	{"bicycle", "designated"},
	{"bicycle", "dismount"},
	{"bicycle", "use_sidepath"},
	{"bicycle", "permissive"},
	{"bicycle", "private"},
	{"cycleway", "opposite"},
	{"cycleway", "opposite_lane"},
	{"cycleway", "opposite_track"},
}

// Key returns the OSM key, e.g. "highway".
func (a Attribute) Key() string { return attributeTags[a][0] }

// Value returns the OSM value, e.g. "track".
func (a Attribute) Value() string { return attributeTags[a][1] }

// String returns "key=value".
func (a Attribute) String() string { return a.Key() + "=" + a.Value() }

// AttributeSet is a set of attributes, one bit per Attribute.
type AttributeSet uint64

// NewAttributeSet returns the set with the given bits, or an
// invalid-argument error when a bit beyond AttributeCount is set.
func NewAttributeSet(b uint64) (AttributeSet, error) {
	if err := check.Argument(b>>AttributeCount == 0, "attribute bits %#x beyond %d", b, AttributeCount); err != nil {
		return 0, err
	}
	return AttributeSet(b), nil
}

// AttributeSetOf returns the set holding exactly attrs.
func AttributeSetOf(attrs ...Attribute) AttributeSet {
	var s AttributeSet
	for _, a := range attrs {
		s |= 1 << a
	}
	return s
}

// AttributeSetFromTags returns the set of known attributes present in tags.
// Unknown keys and values are ignored.
func AttributeSetFromTags(tags osm.Tags) AttributeSet {
	var s AttributeSet
	for a := range Attribute(AttributeCount) {
		if v := tags.Find(a.Key()); v != "" && v == a.Value() {
			s |= 1 << a
		}
	}
	return s
}

// Tags returns the attributes of s as OSM tags in attribute order. Keys
// repeat when s holds two values of one key.
func (s AttributeSet) Tags() osm.Tags {
	tags := make(osm.Tags, 0, s.Len())
	for a := range Attribute(AttributeCount) {
		if s.Contains(a) {
			tags = append(tags, osm.Tag{Key: a.Key(), Value: a.Value()})
		}
	}
	return tags
}

// Contains reports whether a is in s.
func (s AttributeSet) Contains(a Attribute) bool {
	return s&(1<<a) != 0
}

// Intersects reports whether s and that share at least one attribute.
func (s AttributeSet) Intersects(that AttributeSet) bool {
	return s&that != 0
}

// Len returns the number of attributes in s.
func (s AttributeSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// String returns the set as {key=value,...} in attribute order.
func (s AttributeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for a := range Attribute(AttributeCount) {
		if !s.Contains(a) {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		sb.WriteString(a.String())
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}
