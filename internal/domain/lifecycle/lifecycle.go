// Package lifecycle holds shared constants for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start and stop of long-lived components
// (HTTP server shutdown, DB ping, sweeper stop).
const DefaultTimeout = 10 * time.Second
