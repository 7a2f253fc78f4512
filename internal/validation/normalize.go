package validation

import (
	"reflect"
	"strings"
)

// TrimStrings trims leading and trailing whitespace from every exported
// string field of the struct pointed to by value, recursing into nested
// structs. Fields tagged `trim:"-"` are left untouched (passwords, where
// surrounding whitespace is significant). Non-pointer or non-struct values
// are ignored.
func TrimStrings(value any) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	trimStructStrings(rv.Elem())
}

func trimStructStrings(rv reflect.Value) {
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		if rt.Field(i).Tag.Get("trim") == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(strings.TrimSpace(field.String()))
		case reflect.Struct:
			trimStructStrings(field)
		case reflect.Pointer:
			if !field.IsNil() {
				trimStructStrings(field.Elem())
			}
		}
	}
}
