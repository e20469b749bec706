package shortener

import "context"

// Shortener defines interface of the remote shortening service.
type Shortener interface {
	Shorten(ctx context.Context, url string) (string, error)
}
