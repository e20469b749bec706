package submission

import "context"

// Submitter defines interface of the submission workflow.
type Submitter interface {
	Submit(ctx context.Context, raw string) (*ShortenResult, error)
	Retry(ctx context.Context) (*ShortenResult, error)
	Status() Status
}
