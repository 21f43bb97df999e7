package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ExternalID is a Shopify identifier. Liquid templates emit ids as JSON
// numbers (`{{ customer.id | json }}`) while the dashboard sends strings;
// both decode to the same decimal text.
type ExternalID string

func (id ExternalID) String() string { return string(id) }

func (id *ExternalID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*id = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("external id %s: must be a string or a positive integer", raw)
	}
	*id = ExternalID(strconv.FormatUint(n, 10))
	return nil
}

// invalidRating stays outside 1..5 so the rating rule reports it.
const invalidRating Rating = -1

// Rating is a star value read like parseInt: 4, "4" and 4.7 all give 4.
// A present value with no usable integer (null, "abc", 0) decodes to an
// out-of-range value instead of failing the whole body, so only an absent
// field reads as zero.
type Rating int

func (r Rating) Int() int { return int(r) }

func (r *Rating) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*r = invalidRating
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e6 {
		r.set(int(math.Trunc(f)))
		return nil
	}
	if n, ok := leadingInt(raw); ok {
		r.set(n)
		return nil
	}
	*r = invalidRating
	return nil
}

func (r *Rating) set(n int) {
	if n == 0 {
		*r = invalidRating
		return
	}
	*r = Rating(n)
}

func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && end-start < 6 && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
