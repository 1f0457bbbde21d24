package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

type (
	PostId    = int64
	AuthorId  = int64
	CommentId = int64
)

// Timestamp is a point in time encoded as unix seconds on the wire.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var secs int64
	if err := json.Unmarshal(data, &secs); err != nil {
		return err
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// MarshalJSON encodes the zero Timestamp as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}
