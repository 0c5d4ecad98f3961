package graph

import (
	"errors"
	"testing"

	"github.com/paulmach/osm"

	"velo_router/pkg/check"
)

func TestAttributeEnumeration(t *testing.T) {
	if AttributeCount != 62 {
		t.Fatalf("AttributeCount = %d, want 62", AttributeCount)
	}
	tests := []struct {
		a    Attribute
		want string
	}{
		{HighwayService, "highway=service"},
		{HighwayBridleway, "highway=bridleway"},
		{TracktypeGrade1, "tracktype=grade1"},
		{SurfaceCobblestone, "surface=cobblestone"},
		{OnewayM1, "oneway=-1"},
		{OnewayBicycleNo, "oneway:bicycle=no"},
		{BicycleUseSidepath, "bicycle=use_sidepath"},
		{CyclewayOppositeTrack, "cycleway=opposite_track"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Attribute(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
	if int(CyclewayOppositeTrack) != AttributeCount-1 {
		t.Errorf("last attribute has index %d", CyclewayOppositeTrack)
	}
}

func TestAttributeSet(t *testing.T) {
	s := AttributeSetOf(HighwayTrack, TracktypeGrade1)
	if !s.Contains(HighwayTrack) || !s.Contains(TracktypeGrade1) {
		t.Errorf("%v misses a member", s)
	}
	if s.Contains(HighwayPath) {
		t.Errorf("%v contains highway=path", s)
	}
	if got := s.String(); got != "{highway=track,tracktype=grade1}" {
		t.Errorf("String = %q", got)
	}
	if got := AttributeSet(0).String(); got != "{}" {
		t.Errorf("empty String = %q", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}

	if !s.Intersects(AttributeSetOf(TracktypeGrade1, SurfaceAsphalt)) {
		t.Error("Intersects = false for a shared attribute")
	}
	if s.Intersects(AttributeSetOf(SurfaceAsphalt)) {
		t.Error("Intersects = true for disjoint sets")
	}

	if _, err := NewAttributeSet(1 << 62); !errors.Is(err, check.ErrInvalidArgument) {
		t.Errorf("NewAttributeSet(1<<62) err = %v", err)
	}
	got, err := NewAttributeSet(1<<61 | 1)
	if err != nil {
		t.Fatalf("NewAttributeSet: %v", err)
	}
	if got != AttributeSetOf(HighwayService, CyclewayOppositeTrack) {
		t.Errorf("NewAttributeSet = %v", got)
	}
}

func TestAttributeSetFromTags(t *testing.T) {
	tags := osm.Tags{
		{Key: "highway", Value: "cycleway"},
		{Key: "surface", Value: "asphalt"},
		{Key: "oneway", Value: "no"},
		{Key: "name", Value: "Route du Lac"},
	}
	want := AttributeSetOf(HighwayCycleway, SurfaceAsphalt)
	if got := AttributeSetFromTags(tags); got != want {
		t.Errorf("AttributeSetFromTags = %v, want %v", got, want)
	}
}

func TestAttributeSetTags(t *testing.T) {
	s := AttributeSetOf(SurfaceGravel, HighwayTrack, BicycleDesignated)
	want := osm.Tags{
		{Key: "highway", Value: "track"},
		{Key: "surface", Value: "gravel"},
		{Key: "bicycle", Value: "designated"},
	}
	tags := s.Tags()
	if len(tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("Tags[%d] = %v, want %v", i, tags[i], want[i])
		}
	}
	if got := AttributeSetFromTags(tags); got != s {
		t.Errorf("AttributeSetFromTags(Tags()) = %v, want %v", got, s)
	}
	if n := len(AttributeSet(0).Tags()); n != 0 {
		t.Errorf("empty set has %d tags", n)
	}
}
