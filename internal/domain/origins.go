package domain

import "strings"

// MaxSavedOrigins bounds the saved-origin list.
const MaxSavedOrigins = 10

// SavedOrigins is a most-recently-used-first list of origins, deduplicated by
// exact text. The zero value is an empty list.
type SavedOrigins struct {
	items []string
}

// NewSavedOrigins builds a list from most-recent-first input, dropping blanks
// and duplicates and keeping at most MaxSavedOrigins entries.
func NewSavedOrigins(items []string) *SavedOrigins {
	s := &SavedOrigins{}
	for i := len(items) - 1; i >= 0; i-- {
		s.Register(items[i])
	}
	return s
}

// Register moves origin to the front, inserting it if new.
// Returns false for blank input.
func (s *SavedOrigins) Register(origin string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return false
	}

	out := make([]string, 0, len(s.items)+1)
	out = append(out, origin)
	for _, o := range s.items {
		if o == origin {
			continue
		}
		out = append(out, o)
	}
	if len(out) > MaxSavedOrigins {
		out = out[:MaxSavedOrigins]
	}
	s.items = out
	return true
}

// List returns a copy, most recent first.
func (s *SavedOrigins) List() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *SavedOrigins) Len() int { return len(s.items) }
