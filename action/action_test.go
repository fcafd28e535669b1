package action_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/log"
)

const erc20ABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"submit","stateMutability":"payable",
	 "inputs":[{"name":"order","type":"tuple","components":[
		{"name":"to","type":"address"},{"name":"amounts","type":"uint256[]"}]},
		{"name":"","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"poke","stateMutability":"nonpayable",
	 "inputs":[{"name":"x","type":"fixed128x18"}],"outputs":[]}
]`

const (
	recipient  = "0x1111111111111111111111111111111111111111"
	mixedToken = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func loadABI(t *testing.T) codec.ABI {
	t.Helper()
	a, err := codec.ParseABIString(erc20ABI)
	require.NoError(t, err)
	return a
}

func TestBuildTransfer(t *testing.T) {
	act, err := action.BuildAction(mixedToken, "transfer(address,uint256)", map[string]any{
		"to":     recipient,
		"amount": "1000000000000000000",
	}, loadABI(t))
	require.NoError(t, err)

	assert.Equal(t, strings.ToLower(mixedToken), act.ContractAddress)
	assert.Equal(t, "transfer(address,uint256)", act.FunctionSignature)
	assert.Equal(t, "transfer", act.FunctionName)
	assert.True(t, strings.HasPrefix(act.Calldata, hexutil.Encode(codec.Selector("transfer(address,uint256)"))))
	assert.Equal(t, "0xa9059cbb", act.Calldata[:10])
	assert.Len(t, act.Calldata, 2+8+128)
	assert.Equal(t, "transfer", act.ABI.Name)
	assert.Nil(t, act.Value)
	assert.NotEqual(t, act.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestBuildGatesInOrder(t *testing.T) {
	a := loadABI(t)

	_, err := action.BuildAction("0x123", "nope()", nil, a)
	assert.True(t, errors.Is(err, common.ErrInvalidAddress))

	_, err = action.BuildAction(recipient, "transfer(address, uint256)", map[string]any{}, a)
	assert.True(t, errors.Is(err, common.ErrFunctionNotFound))

	_, err = action.BuildAction(recipient, "transfer(address,uint256)", map[string]any{"to": "bad"}, a)
	require.True(t, errors.Is(err, common.ErrInvalidParameter))
	var perr *common.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "amount", perr.Param)
	assert.Contains(t, perr.Message, "Missing parameter: amount")

	_, err = action.BuildAction(recipient, "transfer(address,uint256)", map[string]any{"to": "bad", "amount": "1"}, a)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, common.InvalidParameter, perr.Kind)
	assert.Equal(t, "to", perr.Param)
	assert.Contains(t, perr.Message, "Invalid address format")
}

func TestBuildSuggestsSignatures(t *testing.T) {
	_, err := action.BuildAction(recipient, "transfr(address,uint256)", nil, loadABI(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean")
	assert.Contains(t, err.Error(), "transfer(address,uint256)")

	assert.ElementsMatch(t, []string{"transfer(address,uint256)", "transferFrom(address,address,uint256)"},
		action.Suggest("transfer", loadABI(t)))
	assert.Empty(t, action.Suggest("zzz", loadABI(t)))
}

func TestBuildTupleAndUnnamedInput(t *testing.T) {
	value := big.NewInt(42)
	act, err := action.BuildAction(recipient, "submit(tuple,bytes32)", map[string]any{
		"order": `{"amounts":["1","2"],"to":"0x2222222222222222222222222222222222222222"}`,
		"arg1":  "0x" + strings.Repeat("ab", 32),
	}, loadABI(t), action.WithValue(value))
	require.NoError(t, err)
	assert.Equal(t, "42", act.Value.String())
	value.SetInt64(0)
	assert.Equal(t, "42", act.Value.String())

	selector := hexutil.Encode(codec.Selector("submit((address,uint256[]),bytes32)"))
	assert.True(t, strings.HasPrefix(act.Calldata, selector))
}

func TestBuildCodecFailureIsEncodingFailed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := action.NewBuilder(log.FromZap(zap.New(core)))

	_, err := b.Build(recipient, "poke(fixed128x18)", map[string]any{"x": "1.5"}, loadABI(t))
	assert.True(t, errors.Is(err, common.ErrEncodingFailed))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "fixed128x18", logs.All()[0].ContextMap()["type"])
}

func TestFilterStateChanging(t *testing.T) {
	sigs := action.FilterStateChanging(loadABI(t)).Signatures()
	assert.NotContains(t, sigs, "balanceOf(address)")
	assert.Contains(t, sigs, "transfer(address,uint256)")
}

func TestDecodeCalldata(t *testing.T) {
	a := loadABI(t)
	act, err := action.BuildAction(recipient, "submit(tuple,bytes32)", map[string]any{
		"order": map[string]any{"to": "0x2222222222222222222222222222222222222222", "amounts": []any{"7"}},
		"arg1":  "0x" + strings.Repeat("00", 31) + "01",
	}, a)
	require.NoError(t, err)

	call, err := action.DecodeCalldata(strings.TrimPrefix(act.Calldata, "0x"), a)
	require.NoError(t, err)
	assert.Equal(t, "submit(tuple,bytes32)", call.Signature)
	assert.Equal(t, act.Calldata[:10], call.Selector)
	require.Len(t, call.Params, 2)
	assert.Equal(t, `{"to":"0x2222222222222222222222222222222222222222","amounts":["7"]}`, call.Params[0].Value)
	assert.Equal(t, "arg1", call.Params[1].Name)

	rebuilt, err := action.BuildAction(recipient, call.Signature, call.Values(), a)
	require.NoError(t, err)
	assert.Equal(t, act.Calldata, rebuilt.Calldata)
}

func TestDecodeCalldataErrors(t *testing.T) {
	a := loadABI(t)
	for _, data := range []string{"0xzz", "0x12345678", "0xa9059cbb00"} {
		_, err := action.DecodeCalldata(data, a)
		assert.True(t, errors.Is(err, common.ErrDecodingFailed), data)
	}
}

func TestParseValue(t *testing.T) {
	for text, want := range map[string]string{
		"1000":     "1000",
		"1.5 ETH":  "1500000000000000000",
		"1.5eth":   "1500000000000000000",
		"20 gwei":  "20000000000",
		"100 wei":  "100",
		"1e18":     "1000000000000000000",
		"2 ether":  "2000000000000000000",
		"0.000001": "",
	} {
		got, err := action.ParseValue(text)
		if want == "" {
			assert.Error(t, err, text)
			continue
		}
		require.NoError(t, err, text)
		assert.Equal(t, want, got.String(), text)
	}

	v, err := action.ParseValue("  ")
	assert.NoError(t, err)
	assert.Nil(t, v)

	for _, bad := range []string{"-1", "1 btc", "abc", "1.5 gwei wei"} {
		_, err := action.ParseValue(bad)
		assert.True(t, errors.Is(err, common.ErrInvalidParameter), bad)
	}
	assert.Equal(t, "1.5 ETH", action.FormatValue(big.NewInt(1500000000000000000)))
}

type failingSource struct{}

func (failingSource) LoadABI(ctx context.Context, address string) (codec.ABI, error) {
	return nil, common.NewError(common.ContractNotFound, "%s is not verified", address)
}

func TestBuildBatch(t *testing.T) {
	b := action.NewBuilder(log.NewNopLogger())
	reqs := []action.Request{
		{Address: recipient, Signature: "transfer(address,uint256)", Params: map[string]any{"to": recipient, "amount": "1"}},
		{Address: mixedToken, Signature: "balanceOf(address)", Params: map[string]any{"owner": recipient}, Value: "1 gwei"},
	}
	actions, err := b.BuildBatch(context.Background(), reqs, action.StaticABI(loadABI(t)))
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "transfer", actions[0].FunctionName)
	assert.Equal(t, "0x70a08231", actions[1].Calldata[:10])
	assert.Equal(t, "1000000000", actions[1].Value.String())

	reqs[1].Params = map[string]any{}
	_, err = b.BuildBatch(context.Background(), reqs, action.StaticABI(loadABI(t)))
	assert.True(t, errors.Is(err, common.ErrInvalidParameter))
	assert.Contains(t, err.Error(), "request 1")

	_, err = b.BuildBatch(context.Background(), reqs[:1], failingSource{})
	assert.True(t, errors.Is(err, common.ErrContractNotFound))
}
