package cmd

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/codec"
)

var selectorCmd = &cobra.Command{
	Use:   "selector <signature>",
	Short: "Print the 4 byte selector of a canonical function signature",
	Example: `  calldata selector 'transfer(address,uint256)'
  calldata selector 'fill((address,uint256),bytes)'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		appUI.Info("%s", hexutil.Encode(codec.Selector(args[0])))
	},
}

func init() {
	rootCmd.AddCommand(selectorCmd)
}
