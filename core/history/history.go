package history

import (
	"encoding/json"
	"sync"

	"github.com/georgechang0117/shawty/base/base62"
	"github.com/georgechang0117/shawty/base/kvstore"
	"github.com/georgechang0117/shawty/base/metrics"

	"code.cloudfoundry.org/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// StoreKey is the durable key history is persisted under.
	StoreKey = "urlHistory"
	// MaxEntries bounds the number of entries kept.
	MaxEntries = 10
)

type historyCacheImpl struct {
	mu      sync.Mutex
	store   kvstore.KVStore
	clock   clock.Clock
	newID   func() string
	entries []Entry
	loaded  bool
}

// NewHistoryCache creates an instance of HistoryCache persisted in store.
func NewHistoryCache(store kvstore.KVStore, clock clock.Clock) HistoryCache {
	return &historyCacheImpl{
		store: store,
		clock: clock,
		newID: base62.NewID,
	}
}

func (h *historyCacheImpl) Load() ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(); err != nil {
		return nil, err
	}
	return h.snapshot(), nil
}

func (h *historyCacheImpl) load() error {
	v, err := h.store.Get(StoreKey)
	if kvstore.IsErrKeyNotExist(err) {
		zap.S().Debugf("no stored history, key: %s", StoreKey)
		h.setEntries(nil)
		return nil
	} else if err != nil {
		return errors.Wrap(err, "fail to read history")
	}

	entries, err := decode(v)
	if err != nil {
		return &MalformedHistoryError{Err: err}
	}
	if len(entries) > MaxEntries {
		zap.S().Warnf("stored history has %d entries, keeping first %d", len(entries), MaxEntries)
		entries = entries[:MaxEntries]
	}

	h.setEntries(entries)
	return nil
}

func (h *historyCacheImpl) Record(originalURL, shortURL string) (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.loaded {
		if err := h.load(); err != nil {
			return nil, err
		}
	}

	updated := make([]Entry, 0, MaxEntries)
	usedIDs := make(map[EntryID]bool, len(h.entries))
	for _, e := range h.entries {
		if e.ShortURL == shortURL {
			continue
		}
		updated = append(updated, e)
		usedIDs[e.ID] = true
	}

	var id EntryID
	for used := true; used; used = usedIDs[id] {
		id = EntryID(h.newID())
	}

	entry := Entry{
		ID:          id,
		OriginalURL: originalURL,
		ShortURL:    shortURL,
		Timestamp:   formatTimestamp(h.clock.Now()),
	}
	updated = append([]Entry{entry}, updated...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	if err := h.persist(updated); err != nil {
		return nil, err
	}
	h.setEntries(updated)

	return &entry, nil
}

func (h *historyCacheImpl) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.snapshot()
}

func (h *historyCacheImpl) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.persist([]Entry{}); err != nil {
		return err
	}
	h.setEntries(nil)
	zap.S().Infof("history reset, key: %s", StoreKey)
	return nil
}

func (h *historyCacheImpl) persist(entries []Entry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "fail to encode history")
	}
	if err := h.store.Set(StoreKey, string(b)); err != nil {
		return errors.Wrap(err, "fail to persist history")
	}
	return nil
}

func (h *historyCacheImpl) setEntries(entries []Entry) {
	h.entries = entries
	h.loaded = true
	metrics.HistorySize.Set(float64(len(entries)))
}

func (h *historyCacheImpl) snapshot() []Entry {
	entries := make([]Entry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

func decode(v string) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal([]byte(v), &entries); err != nil {
		return nil, err
	}
	// null decodes without error, only an array is a stored list.
	if entries == nil {
		return nil, errors.New("history is not a list")
	}

	shortURLs := make(map[string]bool, len(entries))
	ids := make(map[EntryID]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" || e.ShortURL == "" {
			return nil, errors.Errorf("entry %d is missing id or shortUrl", i)
		}
		if shortURLs[e.ShortURL] {
			return nil, errors.Errorf("duplicate shortUrl %s", e.ShortURL)
		}
		if ids[e.ID] {
			return nil, errors.Errorf("duplicate id %s", e.ID)
		}
		shortURLs[e.ShortURL] = true
		ids[e.ID] = true
	}

	return entries, nil
}
