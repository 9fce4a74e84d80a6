package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/platform/obs"
	"visit-schedule-service/internal/ports"
)

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			Duration          *textValue `json:"duration"`
			DurationInTraffic *textValue `json:"duration_in_traffic"`
			DepartureTime     *textValue `json:"departure_time"`
			ArrivalTime       *textValue `json:"arrival_time"`
			Steps             []struct {
				TravelMode     string `json:"travel_mode"`
				TransitDetails *struct {
					Line struct {
						Name      string `json:"name"`
						ShortName string `json:"short_name"`
					} `json:"line"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions queries /maps/api/directions/json. Routes whose legs carry no
// duration are dropped; an empty result means no route was found.
func (c *Client) Directions(ctx context.Context, q ports.RouteQuery) (_ []ports.Route, err error) {
	defer obs.Time(ctx, "maps.Directions")(&err)

	if q.Origin == "" || q.Destination == "" {
		return nil, nil
	}

	params := routeParams(q)
	params.Set("origin", q.Origin.String())
	params.Set("destination", q.Destination.String())
	if q.Alternatives {
		params.Set("alternatives", "true")
	}

	var decoded directionsResponse
	if err := c.getJSON(ctx, "/maps/api/directions/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("directions %q -> %q: %w", q.Origin, q.Destination, err)
	}

	noResult, err := checkStatus(decoded.Status, decoded.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("directions %q -> %q: %w", q.Origin, q.Destination, err)
	}
	if noResult {
		return nil, nil
	}

	routes := make([]ports.Route, 0, len(decoded.Routes))
	for _, r := range decoded.Routes {
		if len(r.Legs) == 0 {
			continue
		}

		route := ports.Route{Summary: r.Summary}
		complete := true
		for _, leg := range r.Legs {
			switch {
			case leg.DurationInTraffic != nil:
				route.DurationSeconds += leg.DurationInTraffic.Value
			case leg.Duration != nil:
				route.DurationSeconds += leg.Duration.Value
			default:
				complete = false
			}

			for _, s := range leg.Steps {
				step := ports.RouteStep{TravelMode: s.TravelMode}
				if s.TransitDetails != nil {
					step.LineName = s.TransitDetails.Line.ShortName
					if step.LineName == "" {
						step.LineName = s.TransitDetails.Line.Name
					}
				}
				route.Steps = append(route.Steps, step)
			}
		}
		if !complete {
			continue
		}

		if first := r.Legs[0]; first.DepartureTime != nil {
			route.DepartText = first.DepartureTime.Text
		}
		if last := r.Legs[len(r.Legs)-1]; last.ArrivalTime != nil {
			route.ArriveText = last.ArrivalTime.Text
		}

		routes = append(routes, route)
	}

	return routes, nil
}

// routeParams holds the parameters common to directions and distance matrix.
func routeParams(q ports.RouteQuery) url.Values {
	params := url.Values{}

	mode := q.Mode
	if mode == "" {
		mode = domain.ModeDriving
	}
	params.Set("mode", string(mode))

	if !q.DepartAt.IsZero() {
		params.Set("departure_time", strconv.FormatInt(q.DepartAt.Unix(), 10))
	}
	if mode == domain.ModeDriving && q.AvoidTolls {
		params.Set("avoid", "tolls")
	}
	if mode == domain.ModeTransit && strings.TrimSpace(q.RoutingPreference) != "" {
		params.Set("transit_routing_preference", q.RoutingPreference)
	}

	return params
}
