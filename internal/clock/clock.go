package clock

import (
	"context"
	"time"
)

// Clock supplies the reference time a rating run is priced under. A run
// captures Now once and resolves every tariff against that instant.
type Clock interface {
	Now(ctx context.Context) time.Time
}
