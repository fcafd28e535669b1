package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/cmd/util"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/ui"
)

// PrefillStr holds positional values separated by "|", "?" leaves one to
// the prompt.
var PrefillStr string

type encodeRequest struct {
	Address  string
	Function string
	Args     []string
	Prefill  string
	Value    string
}

var encodeCmd = &cobra.Command{
	Use:   "encode <address> <function> [name=value...]",
	Short: "Validate parameters and encode a contract call",
	Long: `Encode validates every parameter of the function against its ABI type and
prints the resulting calldata. <function> is a signature such as
"transfer(address,uint256)" or a bare name. Parameters can be given as
name=value, positionally with --prefill, or answered at the prompt.

Unnamed parameters are addressed as arg0, arg1...`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		act, err := runEncode(cmd.Context(), appUI, resolver, newBuilder(), encodeRequest{
			Address:  args[0],
			Function: args[1],
			Args:     args[2:],
			Prefill:  PrefillStr,
			Value:    config.Value,
		})
		if err != nil {
			return err
		}
		if config.JSON {
			return util.PrintJSON(cmd.OutOrStdout(), act)
		}
		util.ShowAction(appUI, act)
		return nil
	},
}

func runEncode(ctx context.Context, u ui.UI, r util.ABIResolver, b *action.Builder, req encodeRequest) (*action.Action, error) {
	value, err := action.ParseValue(req.Value)
	if err != nil {
		return nil, err
	}
	a, err := loadABI(ctx, r, u, req.Address)
	if err != nil {
		return nil, err
	}
	fn, err := util.ResolveFunction(u, a, req.Function)
	if err != nil {
		return nil, err
	}
	params, err := util.ParseParamArgs(req.Args)
	if err != nil {
		return nil, err
	}
	if err := util.ApplyPrefills(fn, util.SplitPrefills(req.Prefill), params); err != nil {
		return nil, err
	}
	util.PromptMissingParams(u, fn, params)
	return b.Build(req.Address, fn.Signature(), params, a, action.WithValue(value))
}

func init() {
	addABIFlags(encodeCmd)
	encodeCmd.Flags().StringVarP(&config.Value, "value", "v", "", "native amount sent with the call, e.g. 0.5eth, 20gwei or 1000 (wei)")
	encodeCmd.Flags().StringVarP(&PrefillStr, "prefill", "I", "", "positional param values separated by |, use ? to be prompted for one")
	rootCmd.AddCommand(encodeCmd)
}
