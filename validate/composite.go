package validate

import (
	"github.com/tranvictor/calldata/abitype"
)

// ValidateArray validates value, a JSON array literal or a slice, as an array
// whose elements have type elemType. expectedLen is the required element
// count, or abitype.Dynamic for "[]". components describe the element type
// when it is a tuple.
func ValidateArray(value any, elemType string, expectedLen int, components []abitype.Parameter) Outcome {
	elems, err := ParseArrayLiteral(value)
	if err != nil {
		return invalid("Invalid JSON array format")
	}
	if expectedLen != abitype.Dynamic && len(elems) != expectedLen {
		return invalid("Array must have exactly %d elements, got %d", expectedLen, len(elems))
	}
	values := make([]any, 0, len(elems))
	warning := ""
	for i, elem := range elems {
		out := ValidateParameterType(elem, elemType, components)
		if !out.Valid {
			return invalid("Element %d: %s", i, out.Error)
		}
		if warning == "" {
			warning = out.Warning
		}
		values = append(values, out.Value)
	}
	result := valid(values)
	result.Warning = warning
	return result
}

// ValidateTuple validates value, a JSON object literal or a mapping, against
// components. Every component must be present; fields are checked in
// declaration order and the first failure is reported.
func ValidateTuple(value any, components []abitype.Parameter) Outcome {
	if len(components) == 0 {
		return invalid("Tuple components are required")
	}
	obj, err := ParseObjectLiteral(value)
	if err != nil {
		return invalid("Invalid JSON object format")
	}
	fields := make(Fields, 0, len(components))
	warning := ""
	for _, c := range components {
		raw, ok := obj[c.Name]
		if !ok {
			return invalid("Missing required field: %s", c.Name)
		}
		out := ValidateParameterType(raw, c.Type, c.Components)
		if !out.Valid {
			return invalid("Field %s: %s", c.Name, out.Error)
		}
		if warning == "" {
			warning = out.Warning
		}
		fields = append(fields, Field{Name: c.Name, Value: out.Value})
	}
	result := valid(fields)
	result.Warning = warning
	return result
}
