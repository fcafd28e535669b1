package util

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/catalog"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/ui"
)

const inlineABI = `[{"type":"function","name":"ping","inputs":[],"outputs":[]}]`

func TestConfigResolverPrecedence(t *testing.T) {
	calls := 0
	loader := func(ctx context.Context) (ABIResolver, error) {
		calls++
		return action.StaticABI(catalog.ERC20()), nil
	}

	r := &ConfigResolver{CustomABI: inlineABI, Standard: "erc721", NewLoader: loader}
	a, err := r.LoadABI(context.Background(), "0x00")
	require.NoError(t, err)
	assert.Equal(t, []string{"ping()"}, a.Signatures())

	r = &ConfigResolver{Standard: "WETH", NewLoader: loader}
	a, err = r.LoadABI(context.Background(), "0x00")
	require.NoError(t, err)
	_, ok := a.FindBySignature("deposit()")
	assert.True(t, ok)
	assert.Zero(t, calls)

	r = &ConfigResolver{NewLoader: loader}
	for i := 0; i < 2; i++ {
		_, err = r.LoadABI(context.Background(), "0x00")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestConfigResolverErrors(t *testing.T) {
	_, err := (&ConfigResolver{}).LoadABI(context.Background(), "0x00")
	assert.ErrorContains(t, err, "no abi source")

	broken := errors.New("dial failed")
	r := &ConfigResolver{NewLoader: func(context.Context) (ABIResolver, error) { return nil, broken }}
	_, err = r.LoadABI(context.Background(), "0x00")
	assert.ErrorIs(t, err, broken)

	_, err = (&ConfigResolver{Standard: "erc1155"}).LoadABI(context.Background(), "0x00")
	assert.ErrorContains(t, err, "known: erc20, erc721, weth")
}

func TestReadCustomABIFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abi.json")
	require.NoError(t, os.WriteFile(path, []byte(inlineABI), 0o600))

	a, err := ReadCustomABI(path)
	require.NoError(t, err)
	assert.Len(t, a, 1)

	_, err = ReadCustomABI(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "couldn't read abi file")

	_, err = ReadCustomABI("[not json")
	assert.ErrorContains(t, err, "couldn't parse abi")
}

func TestParamArgsAndPrefills(t *testing.T) {
	params, err := ParseParamArgs([]string{"to=0xabc", "data=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"to": "0xabc", "data": "a=b"}, params)

	_, err = ParseParamArgs([]string{"=1"})
	assert.Error(t, err)

	assert.Nil(t, SplitPrefills("  "))
	assert.Equal(t, []string{"a", "?", "c"}, SplitPrefills(" a | ? |c "))

	fn, _ := catalog.ERC20().FindBySignature("transferFrom(address,address,uint256)")
	params = map[string]any{"to": "kept"}
	require.NoError(t, ApplyPrefills(fn, []string{"0xfrom", "0xto", "?"}, params))
	assert.Equal(t, map[string]any{"from": "0xfrom", "to": "kept"}, params)
}

func TestResolveFunction(t *testing.T) {
	a := catalog.ERC20()
	u := ui.NewRecordingUI()

	fn, err := ResolveFunction(u, a, "approve")
	require.NoError(t, err)
	assert.Equal(t, "approve(address,uint256)", fn.Signature())

	fn, err = ResolveFunction(u, a, "balanceOf(address)")
	require.NoError(t, err)
	assert.Equal(t, "balanceOf", fn.Name)

	_, err = ResolveFunction(u, a, "aprove(address,uint256)")
	assert.Equal(t, common.FunctionNotFound, common.KindOf(err))
	assert.ErrorContains(t, err, "approve(address,uint256)")

	_, err = ResolveFunction(u, codec.ABI{}, "zzz")
	assert.Equal(t, "FUNCTION_NOT_FOUND: Function zzz not found in ABI", err.Error())
}

func TestShowAction(t *testing.T) {
	act, err := action.BuildAction("0x1111111111111111111111111111111111111111", "transfer(address,uint256)",
		map[string]any{"to": "0x2222222222222222222222222222222222222222", "amount": "1"}, catalog.ERC20())
	require.NoError(t, err)

	u := ui.NewRecordingUI()
	ShowAction(u, act)
	assert.Contains(t, u.Values("KeyValue"), "Selector=0xa9059cbb")
	assert.True(t, u.HasMessage(act.Calldata))

	call, err := action.DecodeCalldata(act.Calldata, catalog.ERC20())
	require.NoError(t, err)
	ShowDecoded(u, call)
	assert.Equal(t, []string{"action", "decoded call"}, u.Values("Section"))
}
