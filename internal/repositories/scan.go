package repositories

import (
	"fmt"
	"time"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// timestamp scans DATETIME columns whether the driver hands back a time.Time
// (MySQL with parseTime, pgx) or text (MySQL without parseTime, SQLite).
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts.t = time.Time{}
		return nil
	case time.Time:
		*ts.t = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	}
	return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}
