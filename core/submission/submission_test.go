package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/georgechang0117/shawty/base/kvstore"
	"github.com/georgechang0117/shawty/base/lock"
	lockmocks "github.com/georgechang0117/shawty/base/lock/mocks"
	"github.com/georgechang0117/shawty/core/history"
	historymocks "github.com/georgechang0117/shawty/core/history/mocks"
	shortenermocks "github.com/georgechang0117/shawty/core/shortener/mocks"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testURL      = "https://a.com"
	testShortURL = "http://s/1"
	testTimeout  = time.Second
)

var testNow = time.Date(2021, 7, 1, 0, 0, 00, 0, time.UTC)

type submissionTestSuite struct {
	suite.Suite
	impl          *submitterImpl
	history       history.HistoryCache
	mockShortener *shortenermocks.Shortener
}

func TestSubmissionSuite(t *testing.T) {
	suite.Run(t, new(submissionTestSuite))
}

func (s *submissionTestSuite) SetupTest() {
	s.mockShortener = &shortenermocks.Shortener{}
	s.history = history.NewHistoryCache(kvstore.NewMemory(), fakeclock.NewFakeClock(testNow))
	_, err := s.history.Load()
	s.Require().NoError(err)
	s.impl = NewSubmitter(s.mockShortener, s.history, lock.NewLocal(), testTimeout).(*submitterImpl)
}

func (s *submissionTestSuite) assertValidationError(err error, reason string) {
	var verr *ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Equal(reason, verr.Reason)
}

func (s *submissionTestSuite) TestSubmit() {
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Once()

	result, err := s.impl.Submit(context.Background(), testURL)
	s.Require().NoError(err)
	s.Equal(&ShortenResult{OriginalURL: testURL, ShortURL: testShortURL}, result)

	status := s.impl.Status()
	s.Equal(StateSuccess, status.State)
	s.Equal(result, status.Result)
	s.NoError(status.Err)

	entries := s.history.Entries()
	s.Require().Len(entries, 1)
	s.Equal(testURL, entries[0].OriginalURL)
	s.Equal(testShortURL, entries[0].ShortURL)
	s.mockShortener.AssertExpectations(s.T())
}

func (s *submissionTestSuite) TestSubmitEmptyInput() {
	for _, raw := range []string{"", "  \t\n"} {
		_, err := s.impl.Submit(context.Background(), raw)
		s.assertValidationError(err, ReasonEmptyInput)
		s.Equal(StateError, s.impl.Status().State)
	}
	s.mockShortener.AssertNotCalled(s.T(), "Shorten", mock.Anything, mock.Anything)
	s.Empty(s.history.Entries())
}

func (s *submissionTestSuite) TestSubmitInvalidURL() {
	_, err := s.impl.Submit(context.Background(), "not-a-url")
	s.assertValidationError(err, ReasonInvalidURL)

	status := s.impl.Status()
	s.Equal(StateError, status.State)
	s.Equal("not-a-url", status.Input)
	s.Nil(status.Result)
	s.mockShortener.AssertNotCalled(s.T(), "Shorten", mock.Anything, mock.Anything)
	s.Empty(s.history.Entries())
}

func (s *submissionTestSuite) TestSubmitWhileSubmitting() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Once()

	type outcome struct {
		result *ShortenResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := s.impl.Submit(context.Background(), testURL)
		done <- outcome{result, err}
	}()
	<-started
	s.Equal(StateSubmitting, s.impl.Status().State)

	_, err := s.impl.Submit(context.Background(), "https://b.com")
	var cerr *ConcurrentSubmissionError
	s.Require().True(errors.As(err, &cerr))

	status := s.impl.Status()
	s.Equal(StateSubmitting, status.State)
	s.Equal(testURL, status.Input)

	close(release)
	out := <-done
	s.Require().NoError(out.err)
	s.Equal(testShortURL, out.result.ShortURL)
	s.Equal(StateSuccess, s.impl.Status().State)
	s.Len(s.history.Entries(), 1)
}

func (s *submissionTestSuite) TestSubmitServiceFailureThenRetry() {
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return("", errors.New("connection reset")).Once()

	_, err := s.impl.Submit(context.Background(), testURL)
	var serr *ServiceError
	s.Require().True(errors.As(err, &serr))

	status := s.impl.Status()
	s.Equal(StateError, status.State)
	s.Equal(testURL, status.Input)
	s.Empty(s.history.Entries())

	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Once()
	result, err := s.impl.Retry(context.Background())
	s.Require().NoError(err)
	s.Equal(testShortURL, result.ShortURL)

	entries := s.history.Entries()
	s.Require().Len(entries, 1)
	s.Equal(testShortURL, entries[0].ShortURL)
	s.mockShortener.AssertExpectations(s.T())
}

func (s *submissionTestSuite) TestSubmitTimeout() {
	s.impl.timeout = 20 * time.Millisecond
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return("", context.DeadlineExceeded).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Once()

	_, err := s.impl.Submit(context.Background(), testURL)
	var serr *ServiceError
	s.Require().True(errors.As(err, &serr))
	s.True(errors.Is(err, context.DeadlineExceeded))
	s.Equal(StateError, s.impl.Status().State)
}

func (s *submissionTestSuite) TestSubmitSameURLTwice() {
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Twice()

	_, err := s.impl.Submit(context.Background(), testURL)
	s.Require().NoError(err)
	_, err = s.impl.Submit(context.Background(), testURL)
	s.Require().NoError(err)

	s.Len(s.history.Entries(), 1)
}

func (s *submissionTestSuite) TestSubmitClearsPreviousOutcome() {
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Once()
	_, err := s.impl.Submit(context.Background(), testURL)
	s.Require().NoError(err)

	_, err = s.impl.Submit(context.Background(), "ftp://x.com")
	s.Require().Error(err)

	status := s.impl.Status()
	s.Equal(StateError, status.State)
	s.Nil(status.Result)

	s.mockShortener.On("Shorten", mock.Anything, "https://b.com").Return("http://s/2", nil).Once()
	_, err = s.impl.Submit(context.Background(), "https://b.com")
	s.Require().NoError(err)

	status = s.impl.Status()
	s.Equal(StateSuccess, status.State)
	s.NoError(status.Err)
}

func (s *submissionTestSuite) TestSubmitLockHeldElsewhere() {
	mockLocker := &lockmocks.DistributedLocker{}
	mockLocker.On("Lock", lockKey, testTimeout+lockTTLMargin, lock.DefaultRetryDelay, lockRetryCount).Return(nil, lock.ErrLockHeld).Once()
	s.impl.locker = mockLocker

	_, err := s.impl.Submit(context.Background(), testURL)
	var cerr *ConcurrentSubmissionError
	s.Require().True(errors.As(err, &cerr))
	s.Equal(StateIdle, s.impl.Status().State)
	s.mockShortener.AssertNotCalled(s.T(), "Shorten", mock.Anything, mock.Anything)
}

func (s *submissionTestSuite) TestSubmitLockFailure() {
	mockLocker := &lockmocks.DistributedLocker{}
	mockLocker.On("Lock", lockKey, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()
	s.impl.locker = mockLocker

	_, err := s.impl.Submit(context.Background(), testURL)
	s.Require().Error(err)
	var cerr *ConcurrentSubmissionError
	s.False(errors.As(err, &cerr))
	s.Equal(StateIdle, s.impl.Status().State)
}

func (s *submissionTestSuite) TestSubmitReleasesLock() {
	mockLock := &lockmocks.Lock{}
	mockLock.On("Unlock").Return(nil).Once()
	mockLocker := &lockmocks.DistributedLocker{}
	mockLocker.On("Lock", lockKey, mock.Anything, mock.Anything, mock.Anything).Return(mockLock, nil).Once()
	s.impl.locker = mockLocker
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return("", errors.New("boom")).Once()

	_, err := s.impl.Submit(context.Background(), testURL)
	s.Require().Error(err)
	mockLock.AssertExpectations(s.T())
}

func (s *submissionTestSuite) TestSubmitHistoryFailure() {
	mockHistory := &historymocks.HistoryCache{}
	mockHistory.On("Record", testURL, testShortURL).Return(nil, errors.New("disk full")).Once()
	s.impl.history = mockHistory
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Once()

	result, err := s.impl.Submit(context.Background(), testURL)
	s.Require().Error(err)
	s.Nil(result)

	status := s.impl.Status()
	s.Equal(StateError, status.State)
	s.Nil(status.Result)
	mockHistory.AssertExpectations(s.T())
}

func (s *submissionTestSuite) TestStatusNotBlockedBySlowLock() {
	locking := make(chan struct{})
	release := make(chan struct{})
	mockLock := &lockmocks.Lock{}
	mockLock.On("Unlock").Return(nil).Once()
	mockLocker := &lockmocks.DistributedLocker{}
	mockLocker.On("Lock", lockKey, mock.Anything, mock.Anything, mock.Anything).Return(mockLock, nil).Run(func(mock.Arguments) {
		close(locking)
		<-release
	}).Once()
	s.impl.locker = mockLocker
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := s.impl.Submit(context.Background(), testURL)
		done <- err
	}()
	<-locking

	status := s.impl.Status()
	s.Equal(StateSubmitting, status.State)
	s.Equal(testURL, status.Input)

	_, err := s.impl.Submit(context.Background(), "https://b.com")
	var cerr *ConcurrentSubmissionError
	s.True(errors.As(err, &cerr))

	close(release)
	s.Require().NoError(<-done)
	s.Equal(StateSuccess, s.impl.Status().State)
	mockLock.AssertExpectations(s.T())
}

func (s *submissionTestSuite) TestLockHeldRestoresPreviousOutcome() {
	s.mockShortener.On("Shorten", mock.Anything, testURL).Return(testShortURL, nil).Once()
	_, err := s.impl.Submit(context.Background(), testURL)
	s.Require().NoError(err)

	mockLocker := &lockmocks.DistributedLocker{}
	mockLocker.On("Lock", lockKey, mock.Anything, mock.Anything, mock.Anything).Return(nil, lock.ErrLockHeld).Once()
	s.impl.locker = mockLocker

	_, err = s.impl.Submit(context.Background(), "https://b.com")
	var cerr *ConcurrentSubmissionError
	s.Require().True(errors.As(err, &cerr))

	status := s.impl.Status()
	s.Equal(StateSuccess, status.State)
	s.Equal(testURL, status.Input)
	s.Equal(testShortURL, status.Result.ShortURL)
}
