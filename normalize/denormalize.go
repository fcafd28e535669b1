package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/calldata/abitype"
	"github.com/tranvictor/calldata/validate"
)

// Denormalize renders a decoded value of type typ as display text that
// validate.ValidateParameterType accepts again.
//
// Arrays render as JSON arrays and tuples as JSON objects keyed by
// component name, matching decoded positions to components by index.
// Integers use their exact decimal form. nil renders as "".
func Denormalize(decoded any, typ string, components []abitype.Parameter) string {
	if isNil(decoded) {
		return ""
	}
	d := abitype.Parse(typ)
	if d.IsArray {
		return denormalizeArray(decoded, d, components)
	}
	if d.IsTuple {
		return denormalizeTuple(decoded, components)
	}
	family, _ := abitype.Classify(d.BaseType)
	text := scalarText(decoded)
	if family == abitype.Address {
		return strings.ToLower(text)
	}
	return text
}

func denormalizeArray(decoded any, d abitype.TypeDescriptor, components []abitype.Parameter) string {
	if s, ok := decoded.(string); ok {
		return s
	}
	elems, err := validate.ParseArrayLiteral(decoded)
	if err != nil {
		return scalarText(decoded)
	}
	elemType := d.ElementType()
	composite := isComposite(elemType)
	parts := make([]json.RawMessage, 0, len(elems))
	for _, elem := range elems {
		parts = append(parts, jsonPart(Denormalize(elem, elemType, components), composite))
	}
	out, _ := json.Marshal(parts)
	return string(out)
}

func denormalizeTuple(decoded any, components []abitype.Parameter) string {
	if s, ok := decoded.(string); ok {
		return s
	}
	values := positional(decoded, components)
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range components {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(c.Name)
		buf.Write(key)
		buf.WriteByte(':')
		text := Denormalize(values[i], c.Type, c.Components)
		buf.Write(jsonPart(text, isComposite(c.Type)))
	}
	buf.WriteByte('}')
	return buf.String()
}

// positional lines up a decoded tuple with its components. go-ethereum
// decodes tuples into anonymous structs, so struct fields are read by index.
func positional(decoded any, components []abitype.Parameter) []any {
	values := make([]any, len(components))
	switch v := decoded.(type) {
	case []any:
		copy(values, v)
		return values
	case validate.Fields:
		for i, c := range components {
			values[i], _ = v.Get(c.Name)
		}
		return values
	case map[string]any:
		for i, c := range components {
			values[i] = v[c.Name]
		}
		return values
	}
	rv := reflect.Indirect(reflect.ValueOf(decoded))
	switch rv.Kind() {
	case reflect.Struct:
		for i := 0; i < len(values) && i < rv.NumField(); i++ {
			values[i] = rv.Field(i).Interface()
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < len(values) && i < rv.Len(); i++ {
			values[i] = rv.Index(i).Interface()
		}
	}
	return values
}

func jsonPart(text string, composite bool) json.RawMessage {
	if composite && json.Valid([]byte(text)) {
		return json.RawMessage(text)
	}
	quoted, _ := json.Marshal(text)
	return quoted
}

func isComposite(typ string) bool {
	d := abitype.Parse(typ)
	return d.IsArray || d.IsTuple
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case *big.Int:
		return x.String()
	case big.Int:
		return x.String()
	case common.Address:
		return strings.ToLower(x.Hex())
	case []byte:
		return hexutil.Encode(x)
	case json.Number:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			word := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(word), rv)
			return hexutil.Encode(word)
		}
	}
	return fmt.Sprint(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map:
		return rv.IsNil()
	}
	return false
}
