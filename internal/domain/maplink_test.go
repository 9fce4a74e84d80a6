package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapLink_Driving(t *testing.T) {
	depart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	got := MapLink("Station A", "Office B", ModeDriving, depart)

	assert.Equal(t,
		"https://www.google.com/maps/dir/?api=1&origin=Station+A&destination=Office+B&travelmode=driving&departure_time=1704099600",
		got,
	)
}

func TestMapLink_PlaceIDKeepsColon(t *testing.T) {
	depart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	got := MapLink(PlaceRef("ChIJabc"), "123 Main St", ModeWalking, depart)

	assert.Contains(t, got, "origin=place_id:ChIJabc&")
	assert.Contains(t, got, "destination=123+Main+St&")
	assert.Contains(t, got, "travelmode=walking")
	assert.NotContains(t, got, "%3A")
	assert.NotContains(t, got, "transit_routing_preference")
}

func TestMapLink_TransitPreference(t *testing.T) {
	depart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	got := MapLink("A", "B", ModeTransit, depart)

	assert.True(t, strings.HasSuffix(got, "&transit_routing_preference=fewer_transfers"), got)
}

func TestLocationRef(t *testing.T) {
	ref := PlaceRef("xyz")
	assert.True(t, ref.IsPlace())
	assert.Equal(t, "xyz", ref.PlaceID())

	raw := LocationRef("福岡市中央区天神")
	assert.False(t, raw.IsPlace())
	assert.Equal(t, "", raw.PlaceID())

	assert.False(t, LocationRef("place_id:").IsPlace())
}
