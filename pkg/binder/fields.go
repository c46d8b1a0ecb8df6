package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct fills every exported field of the struct behind v that carries
// tag, reading values from lookup. An empty tag name falls back to the
// lower-cased field name; "-" skips the field.
func bindToStruct(v any, tag string, sentinel error, lookup func(name string) []string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", sentinel)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", sentinel)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, ok := sf.Tag.Lookup(tag)
		if !ok || name == "-" {
			continue
		}
		name, _, _ = strings.Cut(name, ",")
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		values := lookup(name)
		if len(values) == 0 || (len(values) == 1 && values[0] == "") {
			continue
		}
		if err := setFieldValue(field, values); err != nil {
			return fmt.Errorf("%w: %s: %v", sentinel, name, err)
		}
	}
	return nil
}

// setFieldValue handles scalars, pointers to scalars and slices. Slice values
// are split on commas as well as taken from repeated keys.
func setFieldValue(field reflect.Value, values []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		ptr := reflect.New(field.Type().Elem())
		if err := setFieldValue(ptr.Elem(), values); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	case reflect.Slice:
		out := reflect.MakeSlice(field.Type(), 0, len(values))
		for _, raw := range values {
			for part := range strings.SplitSeq(raw, ",") {
				elem := reflect.New(field.Type().Elem()).Elem()
				if err := setScalar(elem, strings.TrimSpace(part)); err != nil {
					return err
				}
				out = reflect.Append(out, elem)
			}
		}
		field.Set(out)
		return nil
	default:
		return setScalar(field, values[0])
	}
}

func setScalar(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
