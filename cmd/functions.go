package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/action"
	fnindex "github.com/tranvictor/calldata/bleve"
	"github.com/tranvictor/calldata/cmd/util"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/ui"
)

var functionsCmd = &cobra.Command{
	Use:     "functions <address>",
	Aliases: []string{"funcs"},
	Short:   "List the state changing functions of a contract",
	Long: `List the functions a transaction can call on the contract. View and pure
functions are hidden unless --all is given. --search ranks functions by how
well their name and parameters match a free text query.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fns, err := runFunctions(cmd.Context(), appUI, resolver, args[0], config.Search, config.AllFuncs)
		if err != nil {
			return err
		}
		if config.JSON {
			return util.PrintJSON(cmd.OutOrStdout(), fns)
		}
		rows := make([][]string, len(fns))
		for i, fn := range fns {
			rows[i] = []string{fmt.Sprint(i + 1), fn.Signature(), fn.StateMutability, fmt.Sprintf("%x", codec.Selector(fn.Signature()))}
		}
		appUI.Table([]string{"#", "Signature", "Mutability", "Selector"}, rows)
		return nil
	},
}

func runFunctions(ctx context.Context, u ui.UI, r util.ABIResolver, address, search string, all bool) (codec.ABI, error) {
	a, err := loadABI(ctx, r, u, address)
	if err != nil {
		return nil, err
	}
	if !all {
		a = action.FilterStateChanging(a)
	}
	if search == "" {
		return a, nil
	}

	index, err := fnindex.NewFunctionIndex(a)
	if err != nil {
		return nil, err
	}
	defer index.Close()
	hits, err := index.Search(search, fnindex.DefaultLimit)
	if err != nil {
		return nil, err
	}
	result := make(codec.ABI, 0, len(hits))
	for _, h := range hits {
		if fn, ok := a.FindBySignature(h.Signature); ok {
			result = append(result, fn)
		}
	}
	return result, nil
}

func init() {
	addABIFlags(functionsCmd)
	functionsCmd.Flags().StringVarP(&config.Search, "search", "s", "", "free text query over function names and params")
	functionsCmd.Flags().BoolVar(&config.AllFuncs, "all", false, "include view and pure functions")
	rootCmd.AddCommand(functionsCmd)
}
