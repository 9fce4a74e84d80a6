package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"visit-schedule-service/internal/platform/obs"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type findPlaceResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		PlaceID string `json:"place_id"`
	} `json:"candidates"`
}

// Geocode resolves text via the Geocoding API (/maps/api/geocode/json).
func (c *Client) Geocode(ctx context.Context, text string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false, nil
	}

	params := url.Values{}
	params.Set("address", text)

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", params, &decoded); err != nil {
		return "", false, fmt.Errorf("geocode %q: %w", text, err)
	}

	noResult, err := checkStatus(decoded.Status, decoded.ErrorMessage)
	if err != nil {
		return "", false, fmt.Errorf("geocode %q: %w", text, err)
	}
	if noResult || len(decoded.Results) == 0 || decoded.Results[0].PlaceID == "" {
		return "", false, nil
	}

	return decoded.Results[0].PlaceID, true, nil
}

// FindPlace resolves text via Places "find place from text".
func (c *Client) FindPlace(ctx context.Context, text string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "maps.FindPlace")(&err)

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false, nil
	}

	params := url.Values{}
	params.Set("input", text)
	params.Set("inputtype", "textquery")
	params.Set("fields", "place_id")

	var decoded findPlaceResponse
	if err := c.getJSON(ctx, "/maps/api/place/findplacefromtext/json", params, &decoded); err != nil {
		return "", false, fmt.Errorf("find place %q: %w", text, err)
	}

	noResult, err := checkStatus(decoded.Status, decoded.ErrorMessage)
	if err != nil {
		return "", false, fmt.Errorf("find place %q: %w", text, err)
	}
	if noResult || len(decoded.Candidates) == 0 || decoded.Candidates[0].PlaceID == "" {
		return "", false, nil
	}

	return decoded.Candidates[0].PlaceID, true, nil
}
