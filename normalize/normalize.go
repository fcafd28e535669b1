// Package normalize converts validated text into the canonical shape a
// binary ABI codec consumes, and converts decoded codec values back into
// display text.
//
// Normalize expects input that already passed validate.ValidateParameterType
// and reports structural mismatches as errors. Denormalize never fails.
package normalize

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/tranvictor/calldata/abitype"
	"github.com/tranvictor/calldata/validate"
)

// Normalize returns the codec ready form of value:
//
//   - arrays become []any of normalized elements
//   - tuples become []any ordered like components
//   - addresses are lowercased
//   - integers become canonical decimal strings
//   - booleans become bool
//   - bytes, strings and unknown types pass through as text
func Normalize(value any, typ string, components []abitype.Parameter) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("missing value for %s", typ)
	}
	d := abitype.Parse(typ)
	if d.IsArray {
		return normalizeArray(value, d, components)
	}
	if d.IsTuple {
		return normalizeTuple(value, components)
	}

	text := validate.Text(value)
	family, _ := abitype.Classify(d.BaseType)
	switch family {
	case abitype.Address:
		return strings.ToLower(text), nil
	case abitype.Uint, abitype.Int:
		n, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", text)
		}
		return n.String(), nil
	case abitype.Bool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a bool", text)
	}
	return text, nil
}

func normalizeArray(value any, d abitype.TypeDescriptor, components []abitype.Parameter) (any, error) {
	elems, err := validate.ParseArrayLiteral(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d, err)
	}
	if n := d.OuterLength(); n != abitype.Dynamic && len(elems) != n {
		return nil, fmt.Errorf("%s: expected %d elements, got %d", d, n, len(elems))
	}
	elemType := d.ElementType()
	result := make([]any, 0, len(elems))
	for i, elem := range elems {
		v, err := Normalize(elem, elemType, components)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func normalizeTuple(value any, components []abitype.Parameter) (any, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("tuple components are required")
	}
	obj, err := validate.ParseObjectLiteral(value)
	if err != nil {
		return nil, fmt.Errorf("tuple: %w", err)
	}
	result := make([]any, 0, len(components))
	for _, c := range components {
		raw, ok := obj[c.Name]
		if !ok {
			return nil, fmt.Errorf("missing field %s", c.Name)
		}
		v, err := Normalize(raw, c.Type, c.Components)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", c.Name, err)
		}
		result = append(result, v)
	}
	return result, nil
}
