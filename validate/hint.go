package validate

import (
	"fmt"

	"github.com/tranvictor/calldata/abitype"
)

// ParameterTypeErrorMessage returns a hint describing what a value of typ
// should look like. It classifies types exactly as ValidateParameterType
// does and never looks at a concrete value.
func ParameterTypeErrorMessage(typ string) string {
	d := abitype.Parse(typ)
	if d.IsArray {
		elem := d.ElementType()
		if n := d.OuterLength(); n != abitype.Dynamic {
			return fmt.Sprintf("Must be a JSON array of exactly %d %s values", n, elem)
		}
		return fmt.Sprintf("Must be a JSON array of %s values", elem)
	}
	if d.IsTuple {
		return "Must be a JSON object with a key for every struct field"
	}
	family, size := abitype.Classify(d.BaseType)
	switch family {
	case abitype.Address:
		return "Must be a valid address (0x followed by 40 hex characters)"
	case abitype.Uint:
		return fmt.Sprintf("Must be a non-negative integer up to 2^%d - 1", size)
	case abitype.Int:
		return fmt.Sprintf("Must be an integer between -2^%d and 2^%d - 1", size-1, size-1)
	case abitype.Bool:
		return "Must be true or false"
	case abitype.Bytes:
		return "Must be a hex string starting with 0x"
	case abitype.FixedBytes:
		if size > MaxFixedBytes {
			return fmt.Sprintf("Fixed bytes cannot exceed %d", MaxFixedBytes)
		}
		return fmt.Sprintf("Must be a hex string of exactly %d bytes (0x followed by %d hex characters)", size, size*2)
	case abitype.String:
		return "Any text"
	}
	return fmt.Sprintf("Value for type %s", typ)
}
