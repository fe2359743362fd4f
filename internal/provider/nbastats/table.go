package nbastats

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// table wraps one stats.nba.com result set. Column lookups are resolved once
// against the header list, so a missing column surfaces as a schema error at
// the fetch boundary rather than a bad index deep in the pipeline.
type table struct {
	headers []string
	rows    [][]json.RawMessage
}

func (t *table) len() int { return len(t.rows) }

// columns resolves the named headers to indexes, failing on the first one the
// response does not carry.
func (t *table) columns(names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(t.headers))
	for i, h := range t.headers {
		idx[h] = i
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("schema mismatch: column %q missing (have %s)", name, strings.Join(t.headers, ", "))
		}
		out[name] = i
	}
	return out, nil
}

// cell values arrive as JSON: numbers, quoted strings, or null.

func (t *table) intAt(row, col int) (int, bool) {
	f, ok := t.floatAt(row, col)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func (t *table) floatAt(row, col int) (float64, bool) {
	raw := t.rows[row][col]
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		// Some numeric columns come back quoted.
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, false
		}
		f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
	}
	return f, true
}

func (t *table) stringAt(row, col int) string {
	raw := t.rows[row][col]
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}
