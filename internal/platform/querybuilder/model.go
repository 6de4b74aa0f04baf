package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// columnPlans caches, per struct type, the exported fields carrying a db tag.
var columnPlans sync.Map

type columnPlan struct {
	names  []string
	fields []int
}

// InsertModel builds an insert from a struct's db tags. Fields tagged "-"
// or left untagged are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("insert model for %s is nil", table)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert model for %s must be a struct, got %s", table, value.Kind())
	}

	plan := planFor(value.Type())
	if len(plan.names) == 0 {
		return "", nil, fmt.Errorf("insert model %s has no db columns", value.Type())
	}

	values := make([]any, len(plan.fields))
	for i, idx := range plan.fields {
		values[i] = value.Field(idx).Interface()
	}
	return InsertInto(table).Columns(plan.names...).Values(values...).Suffix(suffix).ToSQL()
}

func planFor(typ reflect.Type) columnPlan {
	if cached, ok := columnPlans.Load(typ); ok {
		return cached.(columnPlan)
	}

	var plan columnPlan
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		plan.names = append(plan.names, name)
		plan.fields = append(plan.fields, i)
	}

	columnPlans.Store(typ, plan)
	return plan
}
