package load

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// fieldValue resolves field on a target record by name, dereferencing the
// record's pointer receiver.
func fieldValue(rec interface{}, field string) (reflect.Value, error) {
	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	f := v.FieldByName(field)
	if !f.IsValid() {
		return reflect.Value{}, fmt.Errorf("field %s not found on %T", field, rec)
	}
	return f, nil
}

// isNullValue reports whether v holds one of the sentinel "unassigned"
// values used on the target side instead of a nullable type.
func isNullValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float64:
		return math.IsNaN(v.Float())
	case reflect.Int:
		return v.Int() == -1
	case reflect.String:
		return v.String() == ""
	default:
		if v.Type() == timeType {
			return v.Interface().(time.Time).IsZero()
		}
		return false
	}
}

// lessValue compares two same-kind field values for a stable ascending
// sort.
func lessValue(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Float64:
		return a.Float() < b.Float()
	case reflect.Int:
		return a.Int() < b.Int()
	case reflect.String:
		return a.String() < b.String()
	default:
		if a.Type() == timeType {
			return a.Interface().(time.Time).Before(b.Interface().(time.Time))
		}
		return false
	}
}
