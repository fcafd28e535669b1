// Package codec is the binary ABI boundary of calldata. It describes
// functions the way ABI JSON does, builds canonical signature strings, and
// hands normalized values to go-ethereum's accounts/abi for packing and
// unpacking.
package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tranvictor/calldata/abitype"
)

// Function is one "function" entry of an ABI.
type Function struct {
	Type            string              `json:"type"`
	Name            string              `json:"name"`
	Inputs          []abitype.Parameter `json:"inputs"`
	Outputs         []abitype.Parameter `json:"outputs"`
	StateMutability string              `json:"stateMutability,omitempty"`
	Constant        bool                `json:"constant,omitempty"`
	Payable         bool                `json:"payable,omitempty"`
}

// Signature returns name(type1,type2,...) using the declared type strings
// verbatim, so structs appear as "tuple" rather than their expanded shape.
func (fn Function) Signature() string {
	types := make([]string, len(fn.Inputs))
	for i, in := range fn.Inputs {
		types[i] = in.Type
	}
	return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(types, ","))
}

// IsReadOnly reports whether fn is pure or view. Legacy ABIs without
// stateMutability use the constant flag.
func (fn Function) IsReadOnly() bool {
	switch fn.StateMutability {
	case "pure", "view":
		return true
	case "":
		return fn.Constant
	}
	return false
}

// IsPayable reports whether fn accepts native currency.
func (fn Function) IsPayable() bool {
	return fn.StateMutability == "payable" || (fn.StateMutability == "" && fn.Payable)
}

// ABI is the list of functions of a contract. Events, errors and
// constructors are dropped on parse.
type ABI []Function

// ParseABI reads ABI JSON.
func ParseABI(r io.Reader) (ABI, error) {
	var entries []Function
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("couldn't parse abi json: %w", err)
	}
	result := ABI{}
	for _, e := range entries {
		if e.Type != "" && e.Type != "function" {
			continue
		}
		e.Type = "function"
		result = append(result, e)
	}
	return result, nil
}

// ParseABIString is ParseABI over a string.
func ParseABIString(s string) (ABI, error) {
	return ParseABI(strings.NewReader(s))
}

// JSON returns the ABI as JSON.
func (a ABI) JSON() (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FindBySignature looks a function up by its exact Signature. Overloads are
// only told apart by this string.
func (a ABI) FindBySignature(signature string) (Function, bool) {
	for _, fn := range a {
		if fn.Signature() == signature {
			return fn, true
		}
	}
	return Function{}, false
}

// Signatures lists every function signature in declaration order.
func (a ABI) Signatures() []string {
	result := make([]string, len(a))
	for i, fn := range a {
		result[i] = fn.Signature()
	}
	return result
}

// StateChanging drops pure and view functions.
func (a ABI) StateChanging() ABI {
	result := ABI{}
	for _, fn := range a {
		if !fn.IsReadOnly() {
			result = append(result, fn)
		}
	}
	return result
}

// Merge returns a followed by the functions of b whose signature a lacks.
func (a ABI) Merge(b ABI) ABI {
	seen := map[string]bool{}
	result := ABI{}
	for _, fn := range a {
		seen[fn.Signature()] = true
		result = append(result, fn)
	}
	for _, fn := range b {
		if !seen[fn.Signature()] {
			seen[fn.Signature()] = true
			result = append(result, fn)
		}
	}
	return result
}
