// Package validate checks user supplied text against Solidity ABI types.
//
// Every validator returns an Outcome instead of an error: a failed
// validation is data for the caller to show, not a control flow event.
// Composite validators stop at the first failing element or field.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Outcome is the result of validating one value against one type.
//
// When Valid is true, Value holds the normalized value: a string, a bool, a
// *big.Int, a []any for arrays or a Fields for tuples. When Valid is false,
// Error holds a message meant for the user.
//
// Warning is set on valid outcomes that were accepted by a permissive
// fallback (an unrecognized base type).
type Outcome struct {
	Valid   bool
	Value   any
	Error   string
	Warning string
}

func valid(v any) Outcome {
	return Outcome{Valid: true, Value: v}
}

func invalid(format string, args ...any) Outcome {
	return Outcome{Error: fmt.Sprintf(format, args...)}
}

// Field is one named member of a validated tuple.
type Field struct {
	Name  string
	Value any
}

// Fields is a validated tuple in component declaration order.
type Fields []Field

// Get returns the value of the field called name.
func (fs Fields) Get(name string) (any, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the fields as a JSON object keeping declaration order.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
