package normalizer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The results payload is decoded with field types that never fail: a value
// of the wrong JSON type degrades to its zero value instead of aborting the
// surrounding object.

type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		*s = flexString(t)
	case float64:
		*s = flexString(strings.TrimSpace(string(b)))
	}
	return nil
}

type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	if v, ok := parseNumber(b); ok && !math.IsInf(v, 0) {
		*n = flexInt(int64(v))
	}
	return nil
}

type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if v, ok := parseNumber(b); ok {
		f.Value, f.Valid = v, true
	}
	return nil
}

// flexList holds the raw elements of a JSON array; any other value leaves
// it empty.
type flexList []json.RawMessage

func (l *flexList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err == nil {
		*l = items
	}
	return nil
}

func parseNumber(b []byte) (float64, bool) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

type wireCarrier struct {
	Carrier flexString `json:"carrier"`
}

func (c *wireCarrier) UnmarshalJSON(b []byte) error {
	type alias wireCarrier
	var a alias
	if err := json.Unmarshal(b, &a); err == nil {
		*c = wireCarrier(a)
	}
	return nil
}

type wireLeg struct {
	Origin                 flexString  `json:"origin"`
	Destination            flexString  `json:"destination"`
	Middle                 flexString  `json:"middle"`
	DepartureUnix          flexInt     `json:"departure_unix_timestamp"`
	ArrivalUnix            flexInt     `json:"arrival_unix_timestamp"`
	DepartureDate          flexString  `json:"departure_date"`
	LocalDepartureDateTime flexString  `json:"local_departure_date_time"`
	Signature              flexString  `json:"signature"`
	OperatingCarrier       wireCarrier `json:"operating_carrier_designator"`
}

type wireSegment struct {
	Flights flexList `json:"flights"`
}

type wirePrice struct {
	Value        flexFloat  `json:"value"`
	CurrencyCode flexString `json:"currency_code"`
}

type wireTicket struct {
	ID        flexString `json:"id"`
	Segments  flexList   `json:"segments"`
	Proposals flexList   `json:"proposals"`
}

// decodeObject decodes raw into v only when raw is a JSON object.
func decodeObject(raw json.RawMessage, v interface{}) bool {
	if !isObject(raw) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// field returns the value stored under key when raw is an object.
func field(raw json.RawMessage, key string) (json.RawMessage, bool) {
	if !isObject(raw) {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// lookup follows a chain of object keys.
func lookup(raw json.RawMessage, keys ...string) (json.RawMessage, bool) {
	cur := raw
	for _, k := range keys {
		next, ok := field(cur, k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func lookupString(raw json.RawMessage, keys ...string) string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// orderedObject decodes a JSON object while keeping the first-seen order of
// its keys. A non-object yields no keys.
func orderedObject(raw json.RawMessage) ([]string, map[string]json.RawMessage) {
	values := make(map[string]json.RawMessage)
	if !isObject(raw) {
		return nil, values
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, values
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			break
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values
}

// legIndex accepts integral JSON numbers only.
func legIndex(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
