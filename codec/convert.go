package codec

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/calldata/validate"
)

// toGoValue converts a normalized value into the Go type go-ethereum packs
// for t: *big.Int or a sized native int, common.Address, [N]byte, slices,
// arrays and the anonymous struct of a tuple.
func toGoValue(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.StringTy:
		return validate.Text(v), nil
	case abi.IntTy, abi.UintTy:
		return toInteger(t, validate.Text(v))
	case abi.BoolTy:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(x)) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}
		return nil, fmt.Errorf("%v is not a bool", v)
	case abi.AddressTy:
		text := validate.Text(v)
		if !common.IsHexAddress(text) || !strings.HasPrefix(strings.ToLower(text), "0x") {
			return nil, fmt.Errorf("%q is not an address", text)
		}
		return common.HexToAddress(text), nil
	case abi.BytesTy:
		return toBytes(validate.Text(v))
	case abi.FixedBytesTy, abi.HashTy, abi.FunctionTy:
		return toFixedBytes(t, validate.Text(v))
	case abi.TupleTy:
		return toTuple(t, v)
	case abi.SliceTy, abi.ArrayTy:
		return toArray(t, v)
	}
	return nil, fmt.Errorf("unsupported type: %s", t)
}

func toInteger(t abi.Type, text string) (any, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", text)
	}
	goType := t.GetType()
	if goType.Kind() == reflect.Ptr {
		return n, nil
	}
	rv := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		if !n.IsUint64() || rv.OverflowUint(n.Uint64()) {
			return nil, fmt.Errorf("%s overflows %s", text, t)
		}
		rv.SetUint(n.Uint64())
	} else {
		if !n.IsInt64() || rv.OverflowInt(n.Int64()) {
			return nil, fmt.Errorf("%s overflows %s", text, t)
		}
		rv.SetInt(n.Int64())
	}
	return rv.Interface(), nil
}

func toBytes(text string) ([]byte, error) {
	if text == "0x" || text == "0X" {
		return []byte{}, nil
	}
	return hexutil.Decode(text)
}

func toFixedBytes(t abi.Type, text string) (any, error) {
	raw, err := toBytes(text)
	if err != nil {
		return nil, err
	}
	arrType := t.GetType()
	if len(raw) != arrType.Len() {
		return nil, fmt.Errorf("expected %d bytes, got %d", arrType.Len(), len(raw))
	}
	arr := reflect.New(arrType).Elem()
	reflect.Copy(arr, reflect.ValueOf(raw))
	return arr.Interface(), nil
}

func toTuple(t abi.Type, v any) (any, error) {
	elems, err := validate.ParseArrayLiteral(v)
	if err != nil {
		return nil, fmt.Errorf("tuple must be positional: %w", err)
	}
	if len(elems) != len(t.TupleElems) {
		return nil, fmt.Errorf("tuple has %d fields, got %d values", len(t.TupleElems), len(elems))
	}
	inst := reflect.New(t.TupleType).Elem()
	for i, elemType := range t.TupleElems {
		val, err := toGoValue(*elemType, elems[i])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", t.TupleRawNames[i], err)
		}
		inst.Field(i).Set(reflect.ValueOf(val))
	}
	return inst.Interface(), nil
}

func toArray(t abi.Type, v any) (any, error) {
	elems, err := validate.ParseArrayLiteral(v)
	if err != nil {
		return nil, err
	}
	var result reflect.Value
	if t.T == abi.ArrayTy {
		if len(elems) != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(elems))
		}
		result = reflect.New(t.GetType()).Elem()
	} else {
		result = reflect.MakeSlice(t.GetType(), len(elems), len(elems))
	}
	for i, elem := range elems {
		val, err := toGoValue(*t.Elem, elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		result.Index(i).Set(reflect.ValueOf(val))
	}
	return result.Interface(), nil
}
