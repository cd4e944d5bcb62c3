// Package table holds the in-memory tabular model shared by the loader,
// cleaner and analysis packages.
//
// A Table is a list of column names plus rows of cells. A cell is nil
// (missing), a string, an int64, a float64 or a time.Time holding a calendar
// date. Tables are treated as values: every operation returns a new Table and
// leaves its receiver untouched.
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// DateFormat is the layout used when a date cell is rendered as text.
const DateFormat = "2006-01-02"

type Table struct {
	columns []string
	rows    [][]any
}

// New builds a table from columns and rows. Rows shorter than the header are
// padded with missing cells and longer rows are truncated.
func New(columns []string, rows [][]any) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]any, len(rows)),
	}
	for i, r := range rows {
		row := make([]any, len(columns))
		copy(row, r)
		t.rows[i] = row
	}
	return t
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of col, or -1 if the table has no such column.
func (t *Table) Index(col string) int {
	for i, c := range t.columns {
		if c == col {
			return i
		}
	}
	return -1
}

func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Value returns the cell at row i in column col, or nil if the column is
// absent.
func (t *Table) Value(i int, col string) any {
	j := t.Index(col)
	if j < 0 {
		return nil
	}
	return t.rows[i][j]
}

// Column returns a copy of the values of col, or nil if it is absent.
func (t *Table) Column(col string) []any {
	j := t.Index(col)
	if j < 0 {
		return nil
	}
	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[j]
	}
	return values
}

func (t *Table) Row(i int) []any {
	return append([]any(nil), t.rows[i]...)
}

func (t *Table) Clone() *Table {
	return New(t.columns, t.rows)
}

// Head returns the first n rows. Head(0) is an empty table with the same
// columns, which is how callers express "no result of this shape".
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return New(t.columns, t.rows[:n])
}

// Subset returns the rows at the given positions, in that order.
func (t *Table) Subset(indexes []int) *Table {
	rows := make([][]any, 0, len(indexes))
	for _, i := range indexes {
		rows = append(rows, t.rows[i])
	}
	return New(t.columns, rows)
}

// Filter keeps the rows for which keep returns true.
func (t *Table) Filter(keep func(i int) bool) *Table {
	var indexes []int
	for i := range t.rows {
		if keep(i) {
			indexes = append(indexes, i)
		}
	}
	return t.Subset(indexes)
}

// SortStable orders rows by col using less. Rows that compare equal keep
// their relative order. A missing column leaves the order unchanged.
func (t *Table) SortStable(col string, less func(a, b any) bool) *Table {
	j := t.Index(col)
	if j < 0 {
		return t.Clone()
	}
	indexes := make([]int, len(t.rows))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return less(t.rows[indexes[a]][j], t.rows[indexes[b]][j])
	})
	return t.Subset(indexes)
}

// SortDesc orders rows by the numeric value of col, largest first. Cells that
// are not numeric sort last.
func (t *Table) SortDesc(col string) *Table {
	return t.SortStable(col, func(a, b any) bool {
		af, aok := ToFloat(a)
		bf, bok := ToFloat(b)
		if !aok {
			return false
		}
		if !bok {
			return true
		}
		return af > bf
	})
}

// WithColumn returns a table where col holds values. An existing column is
// replaced in place; a new one is appended.
func (t *Table) WithColumn(col string, values []any) *Table {
	out := t.Clone()
	j := out.Index(col)
	if j < 0 {
		out.columns = append(out.columns, col)
		for i := range out.rows {
			out.rows[i] = append(out.rows[i], nil)
		}
		j = len(out.columns) - 1
	}
	for i := range out.rows {
		if i < len(values) {
			out.rows[i][j] = values[i]
		} else {
			out.rows[i][j] = nil
		}
	}
	return out
}

func (t *Table) RenameColumns(rename func(string) string) *Table {
	columns := make([]string, len(t.columns))
	for i, c := range t.columns {
		columns[i] = rename(c)
	}
	return New(columns, t.rows)
}

// Select projects the table onto cols.
func (t *Table) Select(cols ...string) (*Table, error) {
	positions := make([]int, len(cols))
	for i, c := range cols {
		positions[i] = t.Index(c)
		if positions[i] < 0 {
			return nil, fmt.Errorf("select: no column %q", c)
		}
	}
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		projected := make([]any, len(cols))
		for k, j := range positions {
			projected[k] = row[j]
		}
		rows[i] = projected
	}
	return New(cols, rows), nil
}

// Kind infers the type of col from its non-missing cells.
func (t *Table) Kind(col string) Kind {
	return KindOf(t.Column(col))
}

// Records renders the table as text, header first.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.rows)+1)
	records = append(records, t.Columns())
	for _, row := range t.rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = FormatCell(v)
		}
		records = append(records, record)
	}
	return records
}

// MarshalJSON encodes the table as a list of objects, one per row, keeping
// column order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range t.columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(jsonCell(row[j]))
			if err != nil {
				return nil, fmt.Errorf("encoding %q: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func jsonCell(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
	case time.Time:
		return val.Format(DateFormat)
	}
	return v
}
