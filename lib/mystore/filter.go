package mystore

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// filterAndSort mimics the subset of datastore query semantics that the in-memory and sql stores need
func filterAndSort[T any](values []T, filters []Filter, orderByField string) ([]T, error) {
	result := make([]T, 0, len(values))
	for _, v := range values {
		ok, err := matchesAll(v, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, v)
		}
	}

	if orderByField == "" {
		return result, nil
	}

	descending := strings.HasPrefix(orderByField, "-")
	fieldName := strings.TrimPrefix(orderByField, "-")

	var sortErr error
	sort.SliceStable(result, func(i, j int) bool {
		a, err := fieldOf(result[i], fieldName)
		if err != nil {
			sortErr = err
			return false
		}
		b, err := fieldOf(result[j], fieldName)
		if err != nil {
			sortErr = err
			return false
		}
		if descending {
			return less(b, a)
		}
		return less(a, b)
	})
	if sortErr != nil {
		return nil, sortErr
	}

	return result, nil
}

func matchesAll(value any, filters []Filter) (bool, error) {
	for _, f := range filters {
		field, err := fieldOf(value, f.Field)
		if err != nil {
			return false, err
		}
		equal := reflect.DeepEqual(field.Interface(), f.Value)
		switch f.Compare {
		case "=":
			if !equal {
				return false, nil
			}
		case "!=":
			if equal {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported comparison %q on field %s", f.Compare, f.Field)
		}
	}
	return true, nil
}

func fieldOf(value any, fieldName string) (reflect.Value, error) {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("value of type %T is not a struct", value)
	}
	field := v.FieldByName(fieldName)
	if !field.IsValid() {
		return reflect.Value{}, fmt.Errorf("type %T has no field %s", value, fieldName)
	}
	return field, nil
}

func less(a, b reflect.Value) bool {
	if t, ok := a.Interface().(time.Time); ok {
		return t.Before(b.Interface().(time.Time))
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.String:
		return a.String() < b.String()
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	default:
		return false
	}
}
