package submission

// State is a state of the submission workflow.
type State int

// Success and Error are terminal for an attempt and accept a new Submit like Idle does.
const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ShortenResult pairs a successful shortening with the input that produced it.
type ShortenResult struct {
	OriginalURL string `json:"originalUrl"`
	ShortURL    string `json:"shortUrl"`
}

// Status is a snapshot of the workflow.
type Status struct {
	State  State
	Input  string
	Result *ShortenResult
	Err    error
}
