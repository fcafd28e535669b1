package validate

import (
	"fmt"

	"github.com/tranvictor/calldata/abitype"
)

// ValidateParameterType is the entry point of the package. It validates
// value against typ, using components when typ is a tuple or an array of
// tuples.
//
// A nil value is rejected. Arrays and tuples accept either a JSON literal or
// an already structured value; scalars always receive text, so a structured
// value handed to a scalar type is serialized first.
//
// Base types the grammar does not know are accepted unchanged and the
// outcome carries a Warning.
func ValidateParameterType(value any, typ string, components []abitype.Parameter) Outcome {
	if value == nil {
		return invalid("Value is required")
	}
	d := abitype.Parse(typ)
	if d.IsArray {
		return ValidateArray(value, d.ElementType(), d.OuterLength(), components)
	}
	if d.IsTuple {
		return ValidateTuple(value, components)
	}

	text := Text(value)
	family, size := abitype.Classify(d.BaseType)
	switch family {
	case abitype.Address:
		return ValidateAddress(text)
	case abitype.Uint:
		return ValidateUint(text, size)
	case abitype.Int:
		return ValidateInt(text, size)
	case abitype.Bool:
		return ValidateBool(text)
	case abitype.Bytes:
		return ValidateBytes(text, 0)
	case abitype.FixedBytes:
		return ValidateBytes(text, size)
	case abitype.String:
		return ValidateString(text)
	}
	out := valid(text)
	out.Warning = fmt.Sprintf("unrecognized type %q accepted without validation", typ)
	return out
}
