package utils

import "reflect"

// ColumnList returns the "db" tags of T's fields, in declaration order,
// optionally prefixed ("c" gives "c.id"). Used to build select lists that
// stay in sync with the dbmodel struct.
func ColumnList[T any](prefix ...string) []string {
	var value T
	t := reflect.TypeOf(value)

	p := ""
	if len(prefix) > 0 {
		p = prefix[0] + "."
	}

	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		columns = append(columns, p+tag)
	}
	return columns
}
