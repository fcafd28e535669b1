package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/cmd/util"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Encode every call listed in a JSON file",
	Long: `The file holds a JSON array of calls:

	[{"address": "0x..", "signature": "transfer(address,uint256)",
	  "params": {"to": "0x..", "amount": "1000"}, "value": "0.1eth"}]

Calls are built concurrently. The first failing call aborts the batch.
Use "-" to read the array from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readBatchFile(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		actions, err := runBatch(cmd.Context(), appUI, resolver, newBuilder(), content)
		if err != nil {
			return err
		}
		if config.JSON {
			return util.PrintJSON(cmd.OutOrStdout(), actions)
		}
		for _, act := range actions {
			util.ShowAction(appUI, act)
		}
		appUI.Success("built %d calls", len(actions))
		return nil
	},
}

func readBatchFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// ParseBatch reads numbers as json.Number so that large integers in params
// keep every digit.
func ParseBatch(content []byte) ([]action.Request, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var requests []action.Request
	if err := dec.Decode(&requests); err != nil {
		return nil, fmt.Errorf("couldn't parse batch file: %w", err)
	}
	return requests, nil
}

func runBatch(ctx context.Context, u ui.UI, r util.ABIResolver, b *action.Builder, content []byte) ([]*action.Action, error) {
	requests, err := ParseBatch(content)
	if err != nil {
		return nil, err
	}
	stop := u.Spinner(fmt.Sprintf("building %d calls", len(requests)))
	defer stop()
	return b.BuildBatch(ctx, requests, r)
}

func init() {
	addABIFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
