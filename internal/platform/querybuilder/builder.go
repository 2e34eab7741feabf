package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// MaxPlaceholders is the postgres bind-parameter limit per statement.
const MaxPlaceholders = 65535

// Insert renders one multi-row INSERT with $n placeholders. Every row must
// have one value per column.
func Insert(table string, columns []string, rows [][]any) (Statement, error) {
	switch {
	case strings.TrimSpace(table) == "":
		return Statement{}, fmt.Errorf("insert table is required")
	case len(columns) == 0:
		return Statement{}, fmt.Errorf("insert into %s: columns are required", table)
	case len(rows) == 0:
		return Statement{}, fmt.Errorf("insert into %s: rows are required", table)
	}
	if n := len(rows) * len(columns); n > MaxPlaceholders {
		return Statement{}, fmt.Errorf("insert into %s needs %d placeholders, limit is %d", table, n, MaxPlaceholders)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return Statement{}, fmt.Errorf("insert into %s: row %d has %d values, expected %d", table, i, len(row), len(columns))
		}
		if i > 0 {
			_, _ = buf.WriteString(", ")
		}
		_ = buf.WriteByte('(')
		for j := range row {
			if j > 0 {
				_, _ = buf.WriteString(", ")
			}
			_ = buf.WriteByte('$')
			buf.B = strconv.AppendInt(buf.B, int64(len(args)+j+1), 10)
		}
		_ = buf.WriteByte(')')
		args = append(args, row...)
	}

	return Statement{Query: buf.String(), Args: args}, nil
}
