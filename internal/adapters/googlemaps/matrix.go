package googlemaps

import (
	"context"
	"fmt"

	"visit-schedule-service/internal/platform/obs"
	"visit-schedule-service/internal/ports"
)

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status            string     `json:"status"`
			Duration          *textValue `json:"duration"`
			DurationInTraffic *textValue `json:"duration_in_traffic"`
		} `json:"elements"`
	} `json:"rows"`
}

// DistanceMatrix retrieves the single origin -> destination cell from
// /maps/api/distancematrix/json.
func (c *Client) DistanceMatrix(ctx context.Context, q ports.RouteQuery) (_ int, _ bool, err error) {
	defer obs.Time(ctx, "maps.DistanceMatrix")(&err)

	if q.Origin == "" || q.Destination == "" {
		return 0, false, nil
	}

	params := routeParams(q)
	params.Set("origins", q.Origin.String())
	params.Set("destinations", q.Destination.String())

	var mr matrixResponse
	if err := c.getJSON(ctx, "/maps/api/distancematrix/json", params, &mr); err != nil {
		return 0, false, fmt.Errorf("distance matrix %q -> %q: %w", q.Origin, q.Destination, err)
	}

	noResult, err := checkStatus(mr.Status, mr.ErrorMessage)
	if err != nil {
		return 0, false, fmt.Errorf("distance matrix %q -> %q: %w", q.Origin, q.Destination, err)
	}
	if noResult {
		return 0, false, nil
	}

	if len(mr.Rows) != 1 || len(mr.Rows[0].Elements) != 1 {
		return 0, false, fmt.Errorf("distance matrix: expected a 1x1 result, got %d rows", len(mr.Rows))
	}

	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, false, nil
	}

	switch {
	case el.DurationInTraffic != nil:
		return el.DurationInTraffic.Value, true, nil
	case el.Duration != nil:
		return el.Duration.Value, true, nil
	}

	return 0, false, nil
}
