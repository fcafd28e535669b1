// Package abitype parses Solidity ABI type strings such as "uint256",
// "address[]", "bytes32[2][3]" or "tuple[]" into a TypeDescriptor.
//
// Parsing never fails. A string that does not follow the grammar is reported
// as an opaque base type without array or tuple markers, and it is up to the
// caller to decide whether that base type is acceptable.
package abitype

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/lru"
)

// Dynamic marks a "[]" dimension.
const Dynamic = -1

const memoSize = 1024

var memo = lru.NewCache[string, TypeDescriptor](memoSize)

// TypeDescriptor is the parsed form of an ABI type string.
//
// Dimensions holds one entry per bracket group, outermost first. For
// "uint256[2][3]" that is [3, 2]: three elements, each a uint256[2].
type TypeDescriptor struct {
	BaseType   string
	IsArray    bool
	Dimensions []int
	IsTuple    bool
}

// Parse returns the descriptor for typ. Results are memoized; the returned
// value owns its Dimensions slice.
func Parse(typ string) TypeDescriptor {
	if d, ok := memo.Get(typ); ok {
		return d.clone()
	}
	d := parse(typ)
	memo.Add(typ, d)
	return d.clone()
}

func parse(typ string) TypeDescriptor {
	base := typ
	dims := []int{}
	for strings.HasSuffix(base, "]") {
		open := strings.LastIndex(base, "[")
		if open <= 0 {
			return opaque(typ)
		}
		inner := base[open+1 : len(base)-1]
		if inner == "" {
			dims = append(dims, Dynamic)
		} else {
			n, err := strconv.Atoi(inner)
			if err != nil || n <= 0 || strings.HasPrefix(inner, "+") {
				return opaque(typ)
			}
			dims = append(dims, n)
		}
		base = base[:open]
	}
	return TypeDescriptor{
		BaseType:   base,
		IsArray:    len(dims) > 0,
		Dimensions: dims,
		IsTuple:    base == "tuple",
	}
}

func opaque(typ string) TypeDescriptor {
	return TypeDescriptor{BaseType: typ, Dimensions: []int{}}
}

func (d TypeDescriptor) clone() TypeDescriptor {
	d.Dimensions = slices.Clone(d.Dimensions)
	return d
}

// OuterLength is the size of the outermost dimension, Dynamic for "[]",
// and 0 when the type is not an array.
func (d TypeDescriptor) OuterLength() int {
	if !d.IsArray {
		return 0
	}
	return d.Dimensions[0]
}

// ElementType returns the type string of one element of the outermost
// dimension: "uint256[2]" for "uint256[2][3]", "tuple" for "tuple[]".
// For a non-array type it returns the type itself.
func (d TypeDescriptor) ElementType() string {
	if !d.IsArray {
		return d.BaseType
	}
	return format(d.BaseType, d.Dimensions[1:])
}

// String rebuilds the type string using Solidity's textual order.
func (d TypeDescriptor) String() string {
	return format(d.BaseType, d.Dimensions)
}

func format(base string, dims []int) string {
	var b strings.Builder
	b.WriteString(base)
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] == Dynamic {
			b.WriteString("[]")
		} else {
			fmt.Fprintf(&b, "[%d]", dims[i])
		}
	}
	return b.String()
}
