package source

import (
	"fmt"
	"reflect"
	"time"

	"catalog-export/core/utils"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies doc into out, a pointer to a struct with mapstructure tags.
// Decoding is weakly typed: numbers stored as strings, strings stored as numbers
// and BSON dates all land in the declared Go type.
func Decode(doc Document, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeToUnixHook,
			numberToIntHook,
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(doc)); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// timeToUnixHook stores dates into integer fields as unix seconds.
func timeToUnixHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	t, ok := data.(time.Time)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int64:
		return t.Unix(), nil
	case reflect.String:
		return t.UTC().Format(time.RFC3339), nil
	}
	return data, nil
}

// numberToIntHook truncates fractional numbers headed for integer fields.
// Source exports are not consistent about counts like "votes": 12.0.
func numberToIntHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	switch v := data.(type) {
	case float64, float32:
		return utils.ToInt64(v), nil
	case string:
		if n, ok := utils.ParseInt64(v); ok {
			return n, nil
		}
		if v == "" {
			return 0, nil
		}
	case fmt.Stringer:
		// json.Number
		if n, ok := utils.ParseInt64(v.String()); ok {
			return n, nil
		}
	}
	return data, nil
}
