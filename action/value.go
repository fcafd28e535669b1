package action

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tranvictor/calldata/common"
)

var amountPattern = regexp.MustCompile(`^([0-9.eE+-]+?)\s*([a-zA-Z]*)$`)

var units = map[string]int32{
	"wei":   0,
	"gwei":  9,
	"eth":   18,
	"ether": 18,
}

// ParseValue reads a native currency amount. Plain integers are wei; a
// decimal amount may carry a unit: "1.5 ETH", "20gwei", "100 wei". An empty
// string means no value and returns nil.
func ParseValue(text string) (*big.Int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	amount, unit := splitUnit(text)
	exp, ok := units[strings.ToLower(unit)]
	if !ok {
		return nil, common.ParamError("value", "Unknown unit %q, use wei, gwei or eth", unit)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, common.ParamError("value", "Invalid amount %q", amount)
	}
	if d.IsNegative() {
		return nil, common.ParamError("value", "Value must be non-negative")
	}
	d = d.Shift(exp)
	if !d.IsInteger() {
		return nil, common.ParamError("value", "%s has more decimals than %s allows", amount, unit)
	}
	return d.BigInt(), nil
}

func splitUnit(text string) (string, string) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return text, "wei"
	}
	if m[2] == "" {
		return m[1], "wei"
	}
	return m[1], m[2]
}

// FormatValue renders wei as ETH, "1.5 ETH".
func FormatValue(wei *big.Int) string {
	if wei == nil {
		return "0 ETH"
	}
	return decimal.NewFromBigInt(wei, -18).String() + " ETH"
}
