package action

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/normalize"
)

// DecodedParam is one input of a decoded call rendered as display text.
type DecodedParam struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type DecodedCall struct {
	FunctionName string         `json:"functionName"`
	Signature    string         `json:"signature"`
	Selector     string         `json:"selector"`
	Function     codec.Function `json:"abi"`
	Params       []DecodedParam `json:"params"`
}

// Values returns the decoded display values keyed the way Build expects its
// params, so a decoded call can be edited and rebuilt.
func (c *DecodedCall) Values() map[string]any {
	result := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		result[p.Name] = p.Value
	}
	return result
}

// DecodeCalldata finds the function of a whose selector starts calldata and
// denormalizes every argument.
func DecodeCalldata(calldata string, a codec.ABI) (*DecodedCall, error) {
	text := strings.TrimSpace(calldata)
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	data, err := hexutil.Decode(strings.ToLower(text))
	if err != nil {
		return nil, common.WrapError(common.DecodingFailed, err, "calldata is not valid hex")
	}
	fn, err := codec.MatchSelector(a, data)
	if err != nil {
		return nil, common.WrapError(common.DecodingFailed, err, "no function matches the calldata")
	}
	values, err := codec.Decode(fn, data)
	if err != nil {
		return nil, common.WrapError(common.DecodingFailed, err, "couldn't decode %s", fn.Signature())
	}

	params := make([]DecodedParam, len(fn.Inputs))
	for i, input := range fn.Inputs {
		params[i] = DecodedParam{
			Name:  ParamKey(input, i),
			Type:  input.Type,
			Value: normalize.Denormalize(values[i], input.Type, input.Components),
		}
	}
	return &DecodedCall{
		FunctionName: fn.Name,
		Signature:    fn.Signature(),
		Selector:     hexutil.Encode(data[:codec.SelectorSize]),
		Function:     fn,
		Params:       params,
	}, nil
}
