package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Historical spellings for each canonical Destination field, in lookup order.
var (
	legacyNameKeys    = []string{"name", "訪問先"}
	legacyAddressKeys = []string{"address", "住所"}
	legacyStayKeys    = []string{"stay_minutes", "stay", "滞在時間"}
	legacyNoteKeys    = []string{"note", "備考"}
	legacyPinnedKeys  = []string{"pinned_duration_seconds"}
)

// MigrateLegacyDestination converts one record of the older key/value format
// into the canonical Destination. Stay values may be numbers or strings such
// as "30分" or "30". The result is validated like form input.
func MigrateLegacyDestination(record map[string]any) (Destination, error) {
	name, err := legacyString(record, legacyNameKeys)
	if err != nil {
		return Destination{}, err
	}
	address, err := legacyString(record, legacyAddressKeys)
	if err != nil {
		return Destination{}, err
	}
	note, err := legacyString(record, legacyNoteKeys)
	if err != nil {
		return Destination{}, err
	}

	stay := 0
	if v, ok := lookup(record, legacyStayKeys); ok {
		stay, err = legacyMinutes(v)
		if err != nil {
			return Destination{}, err
		}
	}

	d, err := NewDestination(name, address, stay, note)
	if err != nil {
		return Destination{}, err
	}

	if v, ok := lookup(record, legacyPinnedKeys); ok && v != nil {
		n, err := legacyInt(v)
		if err != nil {
			return Destination{}, err
		}
		if n < 0 {
			return Destination{}, fmt.Errorf("%w: pinned duration must not be negative", ErrValidation)
		}
		d.PinnedDurationSeconds = &n
	}

	return d, nil
}

func lookup(record map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := record[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func legacyString(record map[string]any, keys []string) (string, error) {
	v, ok := lookup(record, keys)
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q must be a string", ErrValidation, keys[0])
	}
	return s, nil
}

func legacyMinutes(v any) (int, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "分")
		s = strings.TrimSuffix(strings.TrimSpace(s), "min")
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid stay value %q", ErrValidation, v)
		}
		return n, nil
	}
	return legacyInt(v)
}

func legacyInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: expected whole number, got %v", ErrValidation, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: invalid number %q", ErrValidation, n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: unsupported value %v", ErrValidation, v)
}
