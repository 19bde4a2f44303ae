package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawData is the vendor-specific nested blob embedded in VM, host and
// cluster records. Some collectors embed it as a JSON object, others as a
// string containing JSON; both decode to the same map. A blob that fails to
// decode yields an empty map, never an error: sizing then falls back to the
// zero value per the extraction contract.
type RawData map[string]any

func (r *RawData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = nil
			return nil
		}
		if strings.TrimSpace(s) == "" {
			*r = nil
			return nil
		}
		data = []byte(s)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		*r = nil
		return nil
	}
	*r = m
	return nil
}

// Str returns the blob field as a string, empty when absent.
func (r RawData) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Int returns the blob field as an integer, zero when absent or unparseable.
// Collectors record these fields as numbers or digit strings interchangeably.
func (r RawData) Int(key string) int {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

// Has reports whether the blob carries the field at all, regardless of type.
func (r RawData) Has(key string) bool {
	_, ok := r[key]
	return ok
}
