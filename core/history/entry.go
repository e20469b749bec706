package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampFormat is the ISO-8601 layout entries are stamped with, always in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// EntryID is an opaque token, unique among the entries currently in history.
type EntryID string

// UnmarshalJSON accepts both string ids and the numeric ids written by older clients.
func (id *EntryID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EntryID(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("invalid entry id %s", string(b))
	}
	*id = EntryID(n.String())
	return nil
}

// Entry defines a past successful shortening.
type Entry struct {
	ID          EntryID `json:"id"`
	OriginalURL string  `json:"originalUrl"`
	ShortURL    string  `json:"shortUrl"`
	Timestamp   string  `json:"timestamp"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
