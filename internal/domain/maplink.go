package domain

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MapsDirURL is the external map viewer's directions entry point.
const MapsDirURL = "https://www.google.com/maps/dir/"

// TransitRoutingPreference is requested for every transit leg.
const TransitRoutingPreference = "fewer_transfers"

// MapLink builds the deep link for a single leg departing at departAt.
// Place references keep their "place_id:" prefix with an unescaped colon.
func MapLink(origin, destination LocationRef, mode TravelMode, departAt time.Time) string {
	if mode == "" {
		mode = ModeDriving
	}

	params := []string{
		"api=1",
		"origin=" + escapeRef(origin),
		"destination=" + escapeRef(destination),
		"travelmode=" + url.QueryEscape(string(mode)),
		"departure_time=" + strconv.FormatInt(departAt.Unix(), 10),
	}
	if mode == ModeTransit {
		params = append(params, "transit_routing_preference="+TransitRoutingPreference)
	}

	return MapsDirURL + "?" + strings.Join(params, "&")
}

func escapeRef(r LocationRef) string {
	if r.IsPlace() {
		return placeIDPrefix + url.QueryEscape(r.PlaceID())
	}
	return url.QueryEscape(string(r))
}
