package rpc

import "time"

// Decoded batchexecute payloads are positionally significant nested arrays
// with no declared schema. Every mapper reads them through the helpers below:
// each takes an index path, checks length and type at every hop, and returns
// a zero value instead of failing when the shape has drifted.

// Index walks the path and returns the element there, or nil if any hop is
// missing or not a list.
func Index(data any, path ...int) any {
	cur := data
	for _, i := range path {
		arr, ok := cur.([]any)
		if !ok || i < 0 || i >= len(arr) {
			return nil
		}
		cur = arr[i]
	}
	return cur
}

// Str returns the string at path, or "".
func Str(data any, path ...int) string {
	s, _ := Index(data, path...).(string)
	return s
}

// Int returns the integer at path, or 0. JSON numbers decode as float64.
func Int(data any, path ...int) int {
	switch v := Index(data, path...).(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Bool returns the bool at path, or false.
func Bool(data any, path ...int) bool {
	b, _ := Index(data, path...).(bool)
	return b
}

// List returns the list at path, or nil.
func List(data any, path ...int) []any {
	l, _ := Index(data, path...).([]any)
	return l
}

// Timestamp reads a [seconds, nanos] pair at path. Returns the zero time
// when the pair is absent or malformed.
func Timestamp(data any, path ...int) time.Time {
	pair := List(data, path...)
	if len(pair) == 0 {
		return time.Time{}
	}
	secs, ok := pair[0].(float64)
	if !ok {
		return time.Time{}
	}
	var nanos float64
	if len(pair) > 1 {
		nanos, _ = pair[1].(float64)
	}
	return time.Unix(int64(secs), int64(nanos)).UTC()
}
