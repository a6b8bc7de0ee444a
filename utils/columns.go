package utils

import "reflect"

// ColumnList returns the list of `db` tags of T, in declaration order. It is
// used by dbmodels to keep SELECT column lists in sync with the scan targets.
func ColumnList[T any](prefixes ...string) []string {
	var model T
	modelType := reflect.TypeOf(model)

	columns := make([]string, 0, modelType.NumField())
	for i := 0; i < modelType.NumField(); i++ {
		tag, ok := modelType.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		column := tag
		for _, prefix := range prefixes {
			column = prefix + "." + column
		}
		columns = append(columns, column)
	}
	return columns
}
