package table

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	}
	return "null"
}

func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// KindOf reports the narrowest kind holding every non-missing value. A column
// mixing ints and floats is a float column; any other mix is a string column.
func KindOf(values []any) Kind {
	kind := KindNull
	for _, v := range values {
		var k Kind
		switch v.(type) {
		case nil:
			continue
		case int64:
			k = KindInt
		case float64:
			k = KindFloat
		case time.Time:
			k = KindDate
		default:
			return KindString
		}
		switch {
		case kind == KindNull || kind == k:
			kind = k
		case kind.Numeric() && k.Numeric():
			kind = KindFloat
		default:
			return KindString
		}
	}
	return kind
}

var missingMarkers = []string{"", "NA", "NaN"}

// IsMissing reports whether a raw text cell stands for a missing value.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	for _, m := range missingMarkers {
		if s == m {
			return true
		}
	}
	return false
}

// InferColumn types a column of raw text cells the way a dataframe reader
// does: all integers gives int64 cells, all numbers gives float64 cells,
// anything else stays text. Missing markers become nil in every case.
func InferColumn(raw []string) []any {
	ints := true
	floats := true
	for _, s := range raw {
		if IsMissing(s) {
			continue
		}
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			ints = false
		}
		if f, err := strconv.ParseFloat(s, 64); err != nil || math.IsNaN(f) {
			floats = false
		}
	}

	values := make([]any, len(raw))
	for i, s := range raw {
		if IsMissing(s) {
			continue
		}
		trimmed := strings.TrimSpace(s)
		switch {
		case ints:
			values[i], _ = strconv.ParseInt(trimmed, 10, 64)
		case floats:
			values[i], _ = strconv.ParseFloat(trimmed, 64)
		default:
			values[i] = s
		}
	}
	return values
}

// ToFloat coerces a cell to a number. Missing, NaN and non-numeric cells
// report false.
func ToFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case int:
		return float64(val), true
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	case string:
		if IsMissing(val) {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// ToInt coerces a cell to an integer, truncating fractions.
func ToInt(v any) (int64, bool) {
	if i, ok := v.(int64); ok {
		return i, true
	}
	f, ok := ToFloat(v)
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if !ok || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// FormatCell renders a cell as text. Missing cells render empty.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(DateFormat)
	}
	return ""
}

// Median is the middle of the numeric values, averaging the two middle
// values for even counts. Non-numeric values are skipped.
func Median(values []any) (float64, bool) {
	var nums []float64
	for _, v := range values {
		if f, ok := ToFloat(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 0 {
		return (nums[mid-1] + nums[mid]) / 2, true
	}
	return nums[mid], true
}
