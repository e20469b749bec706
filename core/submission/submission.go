package submission

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/georgechang0117/shawty/base/lock"
	"github.com/georgechang0117/shawty/base/metrics"
	"github.com/georgechang0117/shawty/core/history"
	"github.com/georgechang0117/shawty/core/shortener"
	"github.com/georgechang0117/shawty/core/validator"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	lockKey        = "shawty_submission"
	lockRetryCount = 0
)

var (
	// DefaultTimeout bounds a call to the shortening service when none is configured.
	DefaultTimeout = 10 * time.Second
	// the lock must outlive the service call it guards.
	lockTTLMargin = 5 * time.Second
)

type submitterImpl struct {
	mu        sync.Mutex
	shortener shortener.Shortener
	history   history.HistoryCache
	locker    lock.DistributedLocker
	timeout   time.Duration
	isValid   func(string) bool

	state  State
	input  string
	result *ShortenResult
	err    error
}

// NewSubmitter creates an instance of Submitter.
func NewSubmitter(
	shortener shortener.Shortener,
	history history.HistoryCache,
	locker lock.DistributedLocker,
	timeout time.Duration,
) Submitter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &submitterImpl{
		shortener: shortener,
		history:   history,
		locker:    locker,
		timeout:   timeout,
		isValid:   validator.IsValidURL,
		state:     StateIdle,
	}
}

func (s *submitterImpl) Submit(ctx context.Context, raw string) (*ShortenResult, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		metrics.Submissions.WithLabelValues(metrics.OutcomeConcurrent).Inc()
		return nil, &ConcurrentSubmissionError{}
	}

	if verr := s.validate(raw); verr != nil {
		s.input = raw
		s.result = nil
		s.state = StateError
		s.err = verr
		s.mu.Unlock()
		metrics.Submissions.WithLabelValues(metrics.OutcomeValidation).Inc()
		zap.S().Debugf("rejected input: %q, reason: %s", raw, verr.Reason)
		return nil, verr
	}

	// reserve the slot so the shared lock can be taken without holding mu.
	prev := Status{State: s.state, Input: s.input, Result: s.result, Err: s.err}
	s.state = StateSubmitting
	s.input = raw
	s.result = nil
	s.err = nil
	s.mu.Unlock()

	// other processes may be submitting against the same history.
	held, err := s.locker.Lock(lockKey, s.timeout+lockTTLMargin, lock.DefaultRetryDelay, lockRetryCount)
	if err != nil {
		s.mu.Lock()
		s.state = prev.State
		s.input = prev.Input
		s.result = prev.Result
		s.err = prev.Err
		s.mu.Unlock()

		if errors.Is(err, lock.ErrLockHeld) {
			metrics.Submissions.WithLabelValues(metrics.OutcomeConcurrent).Inc()
			return nil, &ConcurrentSubmissionError{}
		}
		return nil, errors.Wrap(err, "fail to acquire submission lock")
	}
	defer func() {
		if err := held.Unlock(); err != nil {
			zap.S().Warnf("fail to unlock submission lock, err: %v", err)
		}
	}()

	return s.shorten(ctx, raw)
}

func (s *submitterImpl) Retry(ctx context.Context) (*ShortenResult, error) {
	s.mu.Lock()
	input := s.input
	s.mu.Unlock()

	return s.Submit(ctx, input)
}

func (s *submitterImpl) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		State: s.state,
		Input: s.input,
		Err:   s.err,
	}
	if s.result != nil {
		result := *s.result
		status.Result = &result
	}
	return status
}

func (s *submitterImpl) validate(raw string) *ValidationError {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Reason: ReasonEmptyInput}
	}
	if !s.isValid(raw) {
		return &ValidationError{Reason: ReasonInvalidURL}
	}
	return nil
}

func (s *submitterImpl) shorten(ctx context.Context, raw string) (*ShortenResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	shortURL, err := s.shortener.Shorten(ctx, raw)
	metrics.ShortenLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		zap.S().Warnf("fail to shorten url: %s, err: %v", raw, err)
		return nil, s.fail(&ServiceError{Err: err}, metrics.OutcomeService)
	}

	if _, err := s.history.Record(raw, shortURL); err != nil {
		zap.S().Errorf("fail to record history, short_url: %s, err: %v", shortURL, err)
		return nil, s.fail(errors.Wrap(err, "fail to record history"), metrics.OutcomeHistory)
	}

	result := ShortenResult{
		OriginalURL: raw,
		ShortURL:    shortURL,
	}

	s.mu.Lock()
	s.state = StateSuccess
	s.result = &result
	s.mu.Unlock()
	metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()

	out := result
	return &out, nil
}

func (s *submitterImpl) fail(err error, outcome string) error {
	s.mu.Lock()
	s.state = StateError
	s.err = err
	s.mu.Unlock()
	metrics.Submissions.WithLabelValues(outcome).Inc()

	return err
}
