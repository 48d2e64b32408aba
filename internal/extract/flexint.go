package extract

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// flexInt accepts a JSON number, a numeric string or null. Empty strings and
// null leave it invalid.
type flexInt struct {
	Value int64
	Valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return nil
		}
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		f.Value, f.Valid = v, true
		return nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("integer out of range: %s", text)
	}
	return f.fromFloat(text)
}

// fromFloat accepts integral floats such as 39.0 that fit in an int64.
func (f *flexInt) fromFloat(text string) error {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v != math.Trunc(v) || v < math.MinInt64 || v >= 1<<63 {
		return fmt.Errorf("not an integer: %s", text)
	}
	f.Value, f.Valid = int64(v), true
	return nil
}

func (f flexInt) ptr() *int64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
