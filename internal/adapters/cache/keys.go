package cache

import (
	"fmt"
	"strings"

	"visit-schedule-service/internal/ports"
)

// uniqueKeys trims keys and drops blanks and duplicates, keeping first-seen order.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}

// durationKeyString renders key as dur:<mode>:<tolls>:<unix>:<origin>|<dest>.
func durationKeyString(key ports.DurationKey) string {
	tolls := 0
	if key.AvoidTolls {
		tolls = 1
	}
	return fmt.Sprintf("dur:%s:%d:%d:%s|%s",
		key.Mode, tolls, key.DepartAt.Unix(), key.Origin, key.Destination)
}

func validDurationKey(key ports.DurationKey) error {
	if strings.TrimSpace(string(key.Origin)) == "" || strings.TrimSpace(string(key.Destination)) == "" {
		return fmt.Errorf("duration cache: origin and destination must not be empty")
	}
	return nil
}
