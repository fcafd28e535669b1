package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/catalog"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/ui"
)

const (
	token     = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	recipient = "0x1111111111111111111111111111111111111111"
)

func erc20Source() action.StaticABI {
	return action.StaticABI(catalog.ERC20())
}

func standard(t *testing.T, name string) action.StaticABI {
	t.Helper()
	a, err := catalog.Lookup(name)
	require.NoError(t, err)
	return action.StaticABI(a)
}

func TestEncodeWithNamedArgs(t *testing.T) {
	u := ui.NewRecordingUI()
	act, err := runEncode(context.Background(), u, erc20Source(), action.NewBuilder(nil), encodeRequest{
		Address:  token,
		Function: "transfer(address,uint256)",
		Args:     []string{"to=" + recipient, "amount=1000"},
		Value:    "1gwei",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(act.Calldata, "0xa9059cbb"))
	assert.Equal(t, strings.ToLower(token), act.ContractAddress)
	assert.Equal(t, "1000000000", act.Value.String())
	assert.Empty(t, u.Values("Prompt"))
	assert.Len(t, u.Values("Spinner"), 1)
}

func TestEncodePromptsUntilValid(t *testing.T) {
	u := ui.NewRecordingUI("not an address", recipient)
	act, err := runEncode(context.Background(), u, erc20Source(), action.NewBuilder(nil), encodeRequest{
		Address:  token,
		Function: "transfer",
		Args:     []string{"amount=5"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1. to (address)"}, u.Values("Prompt"))
	assert.Len(t, u.Values("Error"), 1)
	assert.Equal(t, []string{strings.ToLower(recipient)}, u.Values("Interpret"))
	assert.Equal(t, "transfer(address,uint256)", act.FunctionSignature)
}

func TestEncodePrefill(t *testing.T) {
	u := ui.NewRecordingUI("7")
	act, err := runEncode(context.Background(), u, erc20Source(), action.NewBuilder(nil), encodeRequest{
		Address:  token,
		Function: "transfer",
		Prefill:  recipient + " | ?",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2. amount (uint256)"}, u.Values("Prompt"))
	assert.True(t, strings.HasSuffix(act.Calldata, "07"))

	_, err = runEncode(context.Background(), u, erc20Source(), action.NewBuilder(nil), encodeRequest{
		Address:  token,
		Function: "transfer",
		Prefill:  recipient,
	})
	assert.ErrorContains(t, err, "takes 2 params, 1 prefilled")
}

func TestEncodeChoosesOverload(t *testing.T) {
	u := ui.NewRecordingUI("2")
	act, err := runEncode(context.Background(), u, standard(t, "erc721"), action.NewBuilder(nil), encodeRequest{
		Address:  token,
		Function: "safeTransferFrom",
		Prefill:  recipient + "|" + recipient + "|1|0xbeef",
	})
	require.NoError(t, err)
	assert.Len(t, u.Values("Choose"), 1)
	assert.Equal(t, "safeTransferFrom(address,address,uint256,bytes)", act.FunctionSignature)
}

func TestEncodeErrors(t *testing.T) {
	u := ui.NewRecordingUI()
	b := action.NewBuilder(nil)

	_, err := runEncode(context.Background(), u, erc20Source(), b, encodeRequest{Address: token, Function: "transfr"})
	assert.Equal(t, common.FunctionNotFound, common.KindOf(err))
	assert.ErrorContains(t, err, "did you mean")

	_, err = runEncode(context.Background(), u, erc20Source(), b, encodeRequest{
		Address: token, Function: "transfer", Args: []string{"to=" + recipient, "amount=1"}, Value: "1 btc",
	})
	assert.Equal(t, common.InvalidParameter, common.KindOf(err))

	_, err = runEncode(context.Background(), u, erc20Source(), b, encodeRequest{
		Address: token, Function: "transfer", Args: []string{"amount"},
	})
	assert.ErrorContains(t, err, "name=value")

	_, err = runEncode(context.Background(), u, erc20Source(), b, encodeRequest{
		Address: "0x1234", Function: "transfer", Args: []string{"to=" + recipient, "amount=1"},
	})
	assert.Equal(t, common.InvalidAddress, common.KindOf(err))
}

func TestDecodeRoundTrip(t *testing.T) {
	u := ui.NewRecordingUI()
	act, err := runEncode(context.Background(), u, erc20Source(), action.NewBuilder(nil), encodeRequest{
		Address: token, Function: "approve", Args: []string{"spender=" + recipient, "amount=42"},
	})
	require.NoError(t, err)

	call, err := runDecode(context.Background(), u, erc20Source(), token, act.Calldata)
	require.NoError(t, err)
	assert.Equal(t, "approve(address,uint256)", call.Signature)
	assert.Equal(t, map[string]any{"spender": strings.ToLower(recipient), "amount": "42"}, call.Values())

	_, err = runDecode(context.Background(), u, erc20Source(), token, "0xdeadbeef")
	assert.Equal(t, common.DecodingFailed, common.KindOf(err))
}

func TestValidateCommand(t *testing.T) {
	u := ui.NewRecordingUI()
	outcome, err := runValidate(u, "uint8", "255", "")
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
	assert.Equal(t, []string{"255"}, u.Values("Interpret"))

	u = ui.NewRecordingUI()
	_, err = runValidate(u, "uint8", "256", "")
	assert.Equal(t, common.InvalidParameter, common.KindOf(err))
	assert.Len(t, u.Values("Error"), 1)

	u = ui.NewRecordingUI()
	outcome, err = runValidate(u, "tuple", `{"to":"`+recipient+`","amount":"1"}`,
		`[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]`)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)

	_, err = runValidate(u, "tuple", "{}", "not json")
	assert.ErrorContains(t, err, "--components")

	u = ui.NewRecordingUI()
	outcome, err = runValidate(u, "fixed128x18", "1.5", "")
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Warning)
	assert.Len(t, u.Values("Warn"), 1)
}

func TestFunctionsCommand(t *testing.T) {
	u := ui.NewRecordingUI()
	fns, err := runFunctions(context.Background(), u, erc20Source(), token, "", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"transfer(address,uint256)",
		"approve(address,uint256)",
		"transferFrom(address,address,uint256)",
	}, fns.Signatures())

	all, err := runFunctions(context.Background(), u, erc20Source(), token, "", true)
	require.NoError(t, err)
	assert.Len(t, all, len(catalog.ERC20()))

	found, err := runFunctions(context.Background(), u, erc20Source(), token, "balance", true)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "balanceOf(address)", found[0].Signature())
}

func TestBatchCommand(t *testing.T) {
	content := []byte(`[
		{"address":"` + token + `","signature":"transfer(address,uint256)",
		 "params":{"to":"` + recipient + `","amount":115792089237316195423570985008687907853269984665640564039457584007913129639935}},
		{"address":"` + token + `","signature":"approve(address,uint256)",
		 "params":{"spender":"` + recipient + `","amount":"3"},"value":"0"}
	]`)

	requests, err := ParseBatch(content)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.IsType(t, json.Number(""), requests[0].Params["amount"])

	actions, err := runBatch(context.Background(), ui.NewRecordingUI(), erc20Source(), action.NewBuilder(nil), content)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.True(t, strings.HasSuffix(actions[0].Calldata, strings.Repeat("f", 64)))
	assert.Equal(t, "approve(address,uint256)", actions[1].FunctionSignature)

	_, err = ParseBatch([]byte(`{"address":"x"}`))
	assert.ErrorContains(t, err, "couldn't parse batch file")
}
