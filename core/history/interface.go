package history

// HistoryCache defines interface of the bounded submission history.
type HistoryCache interface {
	Load() ([]Entry, error)
	Record(originalURL, shortURL string) (*Entry, error)
	Entries() []Entry
	Reset() error
}
