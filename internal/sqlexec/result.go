// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is how date/time columns are rendered, matching MySQL's text form.
const TimeLayout = "2006-01-02 15:04:05"

// Result holds the rows of one shortcode query.
// Columns are unique and in selection order; each row has one value per column.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Empty reports whether the query produced no rows.
func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// collector assembles a Result from driver rows. Drivers report duplicate
// column names as separate fields; like an associative row fetch they collapse
// onto the first position and the later value wins.
type collector struct {
	res   *Result
	slots []int
}

func newCollector(names []string) *collector {
	c := &collector{
		res:   &Result{Columns: []string{}, Rows: [][]any{}},
		slots: make([]int, len(names)),
	}
	seen := make(map[string]int, len(names))
	for i, name := range names {
		pos, ok := seen[name]
		if !ok {
			pos = len(c.res.Columns)
			seen[name] = pos
			c.res.Columns = append(c.res.Columns, name)
		}
		c.slots[i] = pos
	}
	return c
}

func (c *collector) add(values []any) {
	row := make([]any, len(c.res.Columns))
	for i, v := range values {
		if i >= len(c.slots) {
			break
		}
		row[c.slots[i]] = normalize(v)
	}
	c.res.Rows = append(c.res.Rows, row)
}

func (c *collector) result() *Result { return c.res }

// normalize reduces driver values to string, int64, float64, bool or nil.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case bool:
		return val
	case []byte:
		return string(val)
	case [16]byte:
		return uuid.UUID(val).String()
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return normalizeUint(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return normalizeUint(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case time.Time:
		return val.Format(TimeLayout)
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		if _, again := inner.(driver.Valuer); again {
			return fmt.Sprint(inner)
		}
		return normalize(inner)
	case fmt.Stringer:
		return val.String()
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func normalizeUint(v uint64) any {
	if v > math.MaxInt64 {
		return strconv.FormatUint(v, 10)
	}
	return int64(v)
}
