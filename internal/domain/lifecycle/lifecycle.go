// Package lifecycle holds shared constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks (pings, graceful shutdown).
const DefaultTimeout = 10 * time.Second
