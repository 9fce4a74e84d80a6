package ports

import (
	"context"
	"time"
)

// Port: persistence of previously used origins across planning sessions.
type OriginRepository interface {
	// Return up to limit origins, most recently used first.
	ListOrigins(ctx context.Context, limit int) ([]string, error)
	// Record that origin was used at usedAt.
	SaveOrigin(ctx context.Context, origin string, usedAt time.Time) error
}
