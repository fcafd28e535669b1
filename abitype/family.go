package abitype

import (
	"strconv"
	"strings"
)

// Family groups base types that share a validator.
type Family int

const (
	Unknown Family = iota
	Address
	Uint
	Int
	Bool
	Bytes
	FixedBytes
	String
	Tuple
)

// DefaultBits is the width of a bare "uint" or "int".
const DefaultBits = 256

func (f Family) String() string {
	switch f {
	case Address:
		return "address"
	case Uint:
		return "uint"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Bytes:
		return "bytes"
	case FixedBytes:
		return "fixed bytes"
	case String:
		return "string"
	case Tuple:
		return "tuple"
	}
	return "unknown"
}

// Classify maps a base type (no brackets) to its family. The second return
// value is the bit width for integers and the byte length for fixed bytes.
func Classify(base string) (Family, int) {
	switch base {
	case "address":
		return Address, 0
	case "bool":
		return Bool, 0
	case "string":
		return String, 0
	case "tuple":
		return Tuple, 0
	case "bytes":
		return Bytes, 0
	case "uint":
		return Uint, DefaultBits
	case "int":
		return Int, DefaultBits
	}
	if n, ok := sizeSuffix(base, "uint"); ok {
		return Uint, n
	}
	if n, ok := sizeSuffix(base, "int"); ok {
		return Int, n
	}
	if n, ok := sizeSuffix(base, "bytes"); ok {
		return FixedBytes, n
	}
	return Unknown, 0
}

func sizeSuffix(base, prefix string) (int, bool) {
	if !strings.HasPrefix(base, prefix) {
		return 0, false
	}
	digits := base[len(prefix):]
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Canonical returns typ with bare "uint" and "int" widened to their 256-bit
// names, which is the form selectors and binary codecs expect.
func Canonical(typ string) string {
	d := Parse(typ)
	switch d.BaseType {
	case "uint":
		d.BaseType = "uint256"
	case "int":
		d.BaseType = "int256"
	default:
		return typ
	}
	return d.String()
}
