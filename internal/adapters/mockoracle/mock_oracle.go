package mockoracle

import (
	"context"
	"errors"
	"sync"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/ports"
)

// ErrUnavailable is returned for every call when the mock is marked down.
var ErrUnavailable = errors.New("mock oracle: unavailable")

// A canned directions answer for one origin -> destination pair.
type MockPair struct {
	From, To string
	Seconds  int
}

// MockOracle is an in-memory ports.Oracle for tests and local runs.
// Lookups are keyed by the exact reference strings passed in.
type MockOracle struct {
	mu sync.Mutex

	Places     map[string]string
	FindPlaces map[string]string
	directions map[string]int
	Matrix     map[string]int
	Routes     map[string][]ports.Route
	Down       bool

	Calls   []string
	Queries []ports.RouteQuery
}

func NewMockOracle(pairs []MockPair) *MockOracle {
	m := make(map[string]int, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p.Seconds
	}
	return &MockOracle{
		Places:     map[string]string{},
		FindPlaces: map[string]string{},
		directions: m,
		Matrix:     map[string]int{},
		Routes:     map[string][]ports.Route{},
	}
}

func (m *MockOracle) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockOracle) recordQuery(call string, q ports.RouteQuery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	m.Queries = append(m.Queries, q)
}

// CallCount returns how many calls have been recorded.
func (m *MockOracle) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockOracle) Geocode(ctx context.Context, text string) (string, bool, error) {
	m.record("geocode:" + text)
	if m.Down {
		return "", false, ErrUnavailable
	}
	id, ok := m.Places[text]
	return id, ok, nil
}

func (m *MockOracle) FindPlace(ctx context.Context, text string) (string, bool, error) {
	m.record("findplace:" + text)
	if m.Down {
		return "", false, ErrUnavailable
	}
	id, ok := m.FindPlaces[text]
	return id, ok, nil
}

func (m *MockOracle) Directions(ctx context.Context, q ports.RouteQuery) ([]ports.Route, error) {
	key := string(q.Origin) + "|" + string(q.Destination)
	m.recordQuery("directions:"+key, q)
	if m.Down {
		return nil, ErrUnavailable
	}
	if q.Alternatives || q.Mode == domain.ModeTransit {
		if routes, ok := m.Routes[key]; ok {
			return routes, nil
		}
	}
	s, ok := m.directions[key]
	if !ok {
		return nil, nil
	}
	return []ports.Route{{DurationSeconds: s}}, nil
}

func (m *MockOracle) DistanceMatrix(ctx context.Context, q ports.RouteQuery) (int, bool, error) {
	key := string(q.Origin) + "|" + string(q.Destination)
	m.recordQuery("matrix:"+key, q)
	if m.Down {
		return 0, false, ErrUnavailable
	}
	s, ok := m.Matrix[key]
	return s, ok, nil
}
