package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds one multi-row INSERT per chunk of models. Columns come
// from the `db` tags of the first model; every model must share its type.
func InsertModels[T any](table string, models []T, chunkSize int) ([]Statement, error) {
	if len(models) == 0 {
		return nil, nil
	}
	cols, err := ColumnsOf(models[0])
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 || chunkSize*len(cols) > MaxPlaceholders {
		chunkSize = MaxPlaceholders / len(cols)
	}

	out := make([]Statement, 0, len(models)/chunkSize+1)
	for start := 0; start < len(models); start += chunkSize {
		chunk := models[start:min(start+chunkSize, len(models))]
		rows := make([][]any, 0, len(chunk))
		for _, model := range chunk {
			_, vals, err := columnsAndValuesFromModel(model)
			if err != nil {
				return nil, err
			}
			rows = append(rows, vals)
		}
		stmt, err := Insert(table, cols, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// Statement is a query ready for ExecContext.
type Statement struct {
	Query string
	Args  []any
}

func ColumnsOf(model any) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	return cols, err
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		col := strings.TrimSpace(parts[0])
		if col == "" || col == "-" || hasOption(parts[1:], "readonly") {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

func hasOption(opts []string, want string) bool {
	for _, opt := range opts {
		if strings.TrimSpace(opt) == want {
			return true
		}
	}
	return false
}
