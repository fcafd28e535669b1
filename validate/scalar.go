package validate

import (
	"math/big"
	"regexp"
	"strings"
)

// MaxFixedBytes is the largest N allowed for bytesN.
const MaxFixedBytes = 32

var (
	addressPattern = regexp.MustCompile(`^0[xX][0-9a-fA-F]{40}$`)
	hexBodyPattern = regexp.MustCompile(`^[0-9a-fA-F]*$`)
)

// ValidateAddress accepts 0x followed by exactly 40 hex digits in any case.
// The normalized value is the lowercase form.
func ValidateAddress(value string) Outcome {
	if value == "" {
		return invalid("Address is required")
	}
	if !addressPattern.MatchString(value) {
		return invalid("Invalid address format: expected 0x followed by 40 hex characters")
	}
	return valid(strings.ToLower(value))
}

// ValidateUint accepts a base 10 integer in [0, 2^bits - 1]. Surrounding
// whitespace is rejected rather than trimmed.
func ValidateUint(value string, bits int) Outcome {
	if !validBitWidth(bits) {
		return invalid("Invalid bit width for uint: %d", bits)
	}
	n, out, ok := parseInteger(value)
	if !ok {
		return out
	}
	if n.Sign() < 0 {
		return invalid("Value must be non-negative for uint%d", bits)
	}
	if n.BitLen() > bits {
		return invalid("Value exceeds maximum for uint%d", bits)
	}
	return valid(n)
}

// ValidateInt accepts a base 10 integer in [-2^(bits-1), 2^(bits-1) - 1].
func ValidateInt(value string, bits int) Outcome {
	if !validBitWidth(bits) {
		return invalid("Invalid bit width for int: %d", bits)
	}
	n, out, ok := parseInteger(value)
	if !ok {
		return out
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(limit)
	max := new(big.Int).Sub(limit, big.NewInt(1))
	if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
		return invalid("Value out of range for int%d", bits)
	}
	return valid(n)
}

func validBitWidth(bits int) bool {
	return bits > 0 && bits <= 256 && bits%8 == 0
}

func parseInteger(value string) (*big.Int, Outcome, bool) {
	if value == "" {
		return nil, invalid("Integer value is required"), false
	}
	if strings.TrimSpace(value) != value {
		return nil, invalid("Integer must not contain leading or trailing whitespace"), false
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, invalid("Invalid integer: %s", value), false
	}
	return n, Outcome{}, true
}

// ValidateBool accepts "true" or "false" in any case, ignoring surrounding
// whitespace.
func ValidateBool(value string) Outcome {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return valid(true)
	case "false":
		return valid(false)
	}
	return invalid("Value must be true or false")
}

// ValidateBytes accepts a 0x prefixed hex string. A length of 0 means
// dynamic bytes; otherwise the decoded length must equal length exactly.
func ValidateBytes(value string, length int) Outcome {
	if length > MaxFixedBytes {
		return invalid("Fixed bytes cannot exceed %d", MaxFixedBytes)
	}
	if !strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X") {
		return invalid("Bytes must start with 0x")
	}
	body := value[2:]
	if !hexBodyPattern.MatchString(body) {
		return invalid("Bytes must contain only hex characters")
	}
	if len(body)%2 != 0 {
		return invalid("Bytes must have an even number of hex characters")
	}
	if length > 0 && len(body)/2 != length {
		return invalid("Expected %d bytes, got %d", length, len(body)/2)
	}
	return valid(value)
}

// ValidateString accepts any text unchanged.
func ValidateString(value string) Outcome {
	return valid(value)
}
