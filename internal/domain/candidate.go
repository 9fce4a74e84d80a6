package domain

import "fmt"

// RouteCandidate is one alternative transit itinerary for a single leg.
type RouteCandidate struct {
	Summary         string
	DurationSeconds int
	DepartText      string
	ArriveText      string
	Transfers       int
	TransferSummary string
}

// TransferSummary renders a transfer count: "direct" for none.
func TransferSummary(transfers int) string {
	switch {
	case transfers <= 0:
		return "direct"
	case transfers == 1:
		return "1 transfer"
	default:
		return fmt.Sprintf("%d transfers", transfers)
	}
}
