package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/cmd/util"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/ui"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <address> <calldata>",
	Short: "Decode calldata sent to a contract into readable parameters",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		call, err := runDecode(cmd.Context(), appUI, resolver, args[0], args[1])
		if err != nil {
			return err
		}
		if config.JSON {
			return util.PrintJSON(cmd.OutOrStdout(), call)
		}
		util.ShowDecoded(appUI, call)
		return nil
	},
}

func runDecode(ctx context.Context, u ui.UI, r util.ABIResolver, address, calldata string) (*action.DecodedCall, error) {
	a, err := loadABI(ctx, r, u, address)
	if err != nil {
		return nil, err
	}
	return action.DecodeCalldata(calldata, a)
}

func init() {
	addABIFlags(decodeCmd)
	rootCmd.AddCommand(decodeCmd)
}
