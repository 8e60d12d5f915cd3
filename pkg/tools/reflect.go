package tools

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/modern-go/reflect2"
)

var durationType = reflect.TypeOf(time.Duration(0))

// SetDefaults fills zero-valued fields of the struct v points to from their `default` tag.
// Nested structs are walked, nil pointers to structs are allocated, and nil pointers to
// scalars are allocated only when the field carries a default tag.
func SetDefaults(v interface{}) error {
	if reflect2.IsNil(v) {
		return fmt.Errorf("set defaults: nil value")
	}

	vType := reflect2.TypeOf(v).Type1()
	if vType.Kind() != reflect.Ptr || vType.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("set defaults: %s is not a pointer to struct", vType)
	}

	return setDefaults(reflect.ValueOf(v).Elem())
}

func setDefaults(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		structField := t.Field(i)
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		tag, hasTag := structField.Tag.Lookup("default")

		switch field.Kind() {
		case reflect.Struct:
			if err := setDefaults(field); err != nil {
				return err
			}
			continue
		case reflect.Ptr:
			elem := structField.Type.Elem()
			if elem.Kind() == reflect.Struct {
				if field.IsNil() {
					field.Set(reflect.New(elem))
				}
				if err := setDefaults(field.Elem()); err != nil {
					return err
				}
				continue
			}
			if !hasTag || !field.IsNil() {
				continue
			}
			p := reflect.New(elem)
			if err := setValue(p.Elem(), tag); err != nil {
				return fmt.Errorf("field %s: %w", structField.Name, err)
			}
			field.Set(p)
			continue
		}

		if !hasTag || !field.IsZero() {
			continue
		}
		if err := setValue(field, tag); err != nil {
			return fmt.Errorf("field %s: %w", structField.Name, err)
		}
	}

	return nil
}

func setValue(v reflect.Value, s string) error {
	if v.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		parts := strings.Split(s, ",")
		slice := reflect.MakeSlice(v.Type(), len(parts), len(parts))
		for i, part := range parts {
			if err := setValue(slice.Index(i), strings.TrimSpace(part)); err != nil {
				return err
			}
		}
		v.Set(slice)
	default:
		return fmt.Errorf("unsupported default for kind %s", v.Kind())
	}

	return nil
}
