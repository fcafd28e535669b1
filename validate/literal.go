package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

var (
	errNotArray  = errors.New("not a JSON array")
	errNotObject = errors.New("not a JSON object")
)

// ParseArrayLiteral turns a JSON array literal, or an already structured
// slice, into a []any. Numbers inside a literal are kept as json.Number so
// large integers survive untouched.
func ParseArrayLiteral(value any) ([]any, error) {
	switch v := value.(type) {
	case string:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, err
		}
		arr, ok := decoded.([]any)
		if !ok {
			return nil, errNotArray
		}
		return arr, nil
	case []any:
		return v, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		arr := make([]any, rv.Len())
		for i := range arr {
			arr[i] = rv.Index(i).Interface()
		}
		return arr, nil
	}
	return nil, errNotArray
}

// ParseObjectLiteral turns a JSON object literal, or an already structured
// mapping, into a map keyed by field name.
func ParseObjectLiteral(value any) (map[string]any, error) {
	switch v := value.(type) {
	case string:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, err
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil, errNotObject
		}
		return obj, nil
	case map[string]any:
		return v, nil
	case map[string]string:
		obj := make(map[string]any, len(v))
		for k, s := range v {
			obj[k] = s
		}
		return obj, nil
	case Fields:
		obj := make(map[string]any, len(v))
		for _, f := range v {
			obj[f.Name] = f.Value
		}
		return obj, nil
	}
	return nil, errNotObject
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

// Text renders a value as the text a scalar validator sees. Composite
// values are serialized back to JSON.
func Text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case *big.Int:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case Fields:
		b, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	case fmt.Stringer:
		return v.String()
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		b, err := json.Marshal(value)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(value)
}
