// Package parser binds query strings to structs tagged with `form`.
package parser

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ParseQuery sets every `form`-tagged field of out whose parameter is present
// and non-empty. Pointer fields are allocated only when their parameter is set.
func ParseQuery(c *fiber.Ctx, out interface{}) error {
	val := reflect.ValueOf(out)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("output must be a pointer to a struct")
	}
	elem := val.Elem()
	typ := elem.Type()

	for i := 0; i < typ.NumField(); i++ {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("form"), ",")
		if name == "" || name == "-" {
			continue
		}
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		if err := set(elem.Field(i), raw); err != nil {
			return fmt.Errorf("query %s=%q: %w", name, raw, err)
		}
	}
	return nil
}

func set(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return nil
	}
	if field.Kind() == reflect.Ptr {
		v := reflect.New(field.Type().Elem())
		if err := set(v.Elem(), raw); err != nil {
			return err
		}
		field.Set(v)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
