package session

import (
	"time"

	"github.com/georgechang0117/shawty/base/kvstore"
	"github.com/georgechang0117/shawty/base/lock"
	"github.com/georgechang0117/shawty/core/history"
	"github.com/georgechang0117/shawty/core/shortener"
	"github.com/georgechang0117/shawty/core/submission"

	"code.cloudfoundry.org/clock"
	"go.uber.org/zap"
)

// Session owns the state of one user session: the durable store, history and submission workflow.
type Session struct {
	store     kvstore.KVStore
	History   history.HistoryCache
	Submitter submission.Submitter
}

// New creates a Session and loads history from store. A *history.MalformedHistoryError is
// returned together with the session so the caller can choose to reset or abort.
func New(
	store kvstore.KVStore,
	shortener shortener.Shortener,
	locker lock.DistributedLocker,
	clock clock.Clock,
	timeout time.Duration,
) (*Session, error) {
	h := history.NewHistoryCache(store, clock)
	s := &Session{
		store:     store,
		History:   h,
		Submitter: submission.NewSubmitter(shortener, h, locker, timeout),
	}

	entries, err := h.Load()
	if err != nil {
		return s, err
	}
	zap.S().Infof("session started with %d history entries", len(entries))

	return s, nil
}

// Close tears down the session and its store.
func (s *Session) Close() error {
	return s.store.Close()
}
