package codec

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"

	"github.com/tranvictor/calldata/abitype"
)

// SelectorSize is the length of a function selector in bytes.
const SelectorSize = 4

// Selector hashes signature text with keccak256 and returns the first four
// bytes. It hashes exactly what it is given.
func Selector(signature string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return h.Sum(nil)[:SelectorSize]
}

// Method builds the go-ethereum method for fn. Its ID is computed from the
// expanded canonical types, which is what the chain dispatches on.
func Method(fn Function) (abi.Method, error) {
	inputs, err := arguments(fn.Inputs)
	if err != nil {
		return abi.Method{}, fmt.Errorf("inputs of %s: %w", fn.Name, err)
	}
	// outputs take no part in the selector or the calldata
	outputs, err := arguments(fn.Outputs)
	if err != nil {
		outputs = abi.Arguments{}
	}
	return abi.NewMethod(
		fn.Name,
		fn.Name,
		abi.Function,
		fn.StateMutability,
		fn.IsReadOnly(),
		fn.IsPayable(),
		inputs,
		outputs,
	), nil
}

func arguments(params []abitype.Parameter) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(params))
	for _, p := range params {
		t, err := abi.NewType(abitype.Canonical(p.Type), p.InternalType, marshalings(p.Components))
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		args = append(args, abi.Argument{Name: p.Name, Type: t, Indexed: p.Indexed})
	}
	return args, nil
}

func marshalings(params []abitype.Parameter) []abi.ArgumentMarshaling {
	if len(params) == 0 {
		return nil
	}
	result := make([]abi.ArgumentMarshaling, len(params))
	for i, p := range params {
		result[i] = abi.ArgumentMarshaling{
			Name:         p.Name,
			Type:         abitype.Canonical(p.Type),
			InternalType: p.InternalType,
			Components:   marshalings(p.Components),
			Indexed:      p.Indexed,
		}
	}
	return result
}

// Encode packs normalized positional args for fn and prefixes the selector.
func Encode(fn Function, args []any) ([]byte, error) {
	method, err := Method(fn)
	if err != nil {
		return nil, err
	}
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", fn.Signature(), len(method.Inputs), len(args))
	}
	typed := make([]any, len(args))
	for i, arg := range args {
		typed[i], err = toGoValue(method.Inputs[i].Type, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, method.Inputs[i].Name, err)
		}
	}
	packed, err := method.Inputs.Pack(typed...)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// Decode checks the selector of data against fn and unpacks its arguments
// positionally.
func Decode(fn Function, data []byte) ([]any, error) {
	method, err := Method(fn)
	if err != nil {
		return nil, err
	}
	if len(data) < SelectorSize {
		return nil, fmt.Errorf("calldata is shorter than a selector")
	}
	if !bytes.Equal(data[:SelectorSize], method.ID) {
		return nil, fmt.Errorf("selector 0x%x does not match %s", data[:SelectorSize], fn.Signature())
	}
	return method.Inputs.UnpackValues(data[SelectorSize:])
}

// MatchSelector finds the function of a whose selector starts data.
func MatchSelector(a ABI, data []byte) (Function, error) {
	if len(data) < SelectorSize {
		return Function{}, fmt.Errorf("calldata is shorter than a selector")
	}
	for _, fn := range a {
		method, err := Method(fn)
		if err != nil {
			continue
		}
		if bytes.Equal(data[:SelectorSize], method.ID) {
			return fn, nil
		}
	}
	return Function{}, fmt.Errorf("no function with selector 0x%x", data[:SelectorSize])
}
