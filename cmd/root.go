// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/catalog"
	"github.com/tranvictor/calldata/cmd/util"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/log"
	"github.com/tranvictor/calldata/networks"
	"github.com/tranvictor/calldata/ui"
)

var (
	appUI     ui.UI      = ui.NewTerminalUI()
	appLogger log.Logger = log.NewNopLogger()
	resolver  util.ABIResolver

	useERC20 bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calldata",
	Short: "Validate parameters and build ethereum contract calldata",
	Long: fmt.Sprintf(`calldata checks human written parameters against the Solidity ABI types
of a contract function and encodes them into transaction calldata. It can also
decode calldata back into readable parameters.

ABIs are taken, in this order, from:
	1. --abi: an ABI JSON file or inline JSON
	2. --erc20 / --standard: a bundled standard ABI (%s)
	3. the chain explorer of --network, following EIP-1967 proxies to
	their implementation unless --no-proxy is given

Environment (a .env file in the working directory is read too):
	%s: explorer API key
	%s: RPC node overriding the network default
	%s: explorer API url overriding the network default

Supported networks: %s.`,
		strings.Join(catalog.Names(), ", "),
		config.APIKeyVariable,
		config.RPCURLVariable,
		config.ExplorerURLVariable,
		strings.Join(networks.Names(), ", "),
	),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup builds the logger and the ABI resolver from flags and environment.
func setup(cmd *cobra.Command, args []string) error {
	logger, err := log.NewZapLogger(config.LogLevel)
	if err != nil {
		return err
	}
	appLogger = logger

	env, err := config.Load()
	if err != nil {
		return fmt.Errorf("couldn't read .env: %w", err)
	}
	network, err := env.Resolve(config.Network)
	if err != nil {
		return err
	}
	appLogger.Debug("resolved network", "network", network.Name, "chainID", network.ChainID)

	standard := config.Standard
	if useERC20 && standard == "" {
		standard = "erc20"
	}
	resolver = &util.ConfigResolver{
		CustomABI: config.CustomABI,
		Standard:  standard,
		NewLoader: func(ctx context.Context) (util.ABIResolver, error) {
			return util.NetworkLoader(ctx, network, env, config.NoProxy, config.CacheFile, appLogger)
		},
	}
	return nil
}

// loadABI resolves the ABI of address behind a spinner.
func loadABI(ctx context.Context, r util.ABIResolver, u ui.UI, address string) (codec.ABI, error) {
	stop := u.Spinner(fmt.Sprintf("loading abi of %s", address))
	defer stop()
	return r.LoadABI(ctx, address)
}

func newBuilder() *action.Builder {
	return action.NewBuilder(appLogger)
}

// addABIFlags binds the flags choosing where an ABI comes from.
func addABIFlags(c *cobra.Command) {
	c.Flags().StringVarP(&config.CustomABI, "abi", "a", "", "ABI JSON file or inline ABI JSON. Takes precedence over every other source")
	c.Flags().StringVar(&config.Standard, "standard", "", "use a bundled ABI: "+strings.Join(catalog.Names(), ", "))
	c.Flags().BoolVar(&config.NoProxy, "no-proxy", false, "don't follow proxy contracts to their implementation ABI")
	c.Flags().BoolVar(&useERC20, "erc20", false, "shorthand for --standard erc20")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "mainnet", "network to resolve ABIs and proxies on. Valid values: "+strings.Join(networks.Names(), ", "))
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&config.JSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&config.CacheFile, "cache-file", "", "persist fetched ABIs to this JSON file instead of memory")

	if err := rootCmd.Execute(); err != nil {
		appUI.Error("%s", err)
		os.Exit(1)
	}
}
