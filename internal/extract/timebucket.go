package extract

import (
	"time"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// DeriveTimeBucket breaks an epoch-millisecond timestamp into its UTC
// calendar fields. Week is the ISO 8601 week; weekday runs Monday=0..Sunday=6.
func DeriveTimeBucket(ts int64) sparkify.TimeBucket {
	t := time.UnixMilli(ts).UTC()
	_, week := t.ISOWeek()

	return sparkify.TimeBucket{
		StartTime: ts,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}
