// Package delivery defines the contract shared by the application's
// long-running entry points (HTTP server, background sweeper).
package delivery

import "context"

// Delivery is a long-running component started by the application
// runner. Serve blocks until the component stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
