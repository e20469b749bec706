package submission

import "fmt"

// Validation failure reasons.
const (
	ReasonEmptyInput = "empty input"
	ReasonInvalidURL = "invalid url"
)

// ReasonServiceFailure is reported for any failed call to the shortening service.
const ReasonServiceFailure = "service failure"

// ValidationError is returned when input is rejected before reaching the service.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ServiceError is returned when the shortening service call fails or times out.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", ReasonServiceFailure, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ConcurrentSubmissionError is returned when Submit is called while another submission is in flight.
type ConcurrentSubmissionError struct{}

func (e *ConcurrentSubmissionError) Error() string {
	return "submission already in progress"
}
