package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Text is a JSON scalar decoded to its string form. The exports are
// inconsistent about quoting: the same field may arrive as a string, a
// number, a bool, or null depending on which collector produced the record.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	// Numbers and bools keep their literal token, except that integral
	// floats ("4.0") are flattened to their integer form: pandas-era
	// exports render integer columns that way.
	tok := string(data)
	if f, err := strconv.ParseFloat(tok, 64); err == nil && f == float64(int64(f)) && strings.Contains(tok, ".") {
		tok = strconv.FormatInt(int64(f), 10)
	}
	*t = Text(tok)
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Count is a non-negative sizing figure (sockets, cores, threads, members).
// It decodes from a JSON number, a numeric string, or null; anything
// unparseable decodes to zero rather than failing the record.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	tok := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		tok = strings.TrimSpace(s)
	}
	if tok == "" {
		*c = 0
		return nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Count(int(f))
	return nil
}

func (c Count) Int() int {
	return int(c)
}

func (c Count) String() string {
	return fmt.Sprintf("%d", int(c))
}
