package rest

import "context"

// Rest defines interface of the local HTTP API.
type Rest interface {
	Start() error
	Shutdown(ctx context.Context) error
}
