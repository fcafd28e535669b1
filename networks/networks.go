// Package networks lists the chains calldata can resolve ABIs and proxies on.
package networks

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// EtherscanV2 serves every chain below, selected by chain id.
const EtherscanV2 = "https://api.etherscan.io/v2"

type Network struct {
	Name             string
	AlternativeNames []string
	ChainID          uint64
	NativeSymbol     string
	// NodeVariableName overrides DefaultNode when set in the environment.
	NodeVariableName string
	DefaultNode      string
	ExplorerAPIURL   string
}

// Node returns the RPC url from the environment or the default.
func (n Network) Node() string {
	if v := strings.TrimSpace(os.Getenv(n.NodeVariableName)); v != "" {
		return v
	}
	return n.DefaultNode
}

var supported = []Network{
	{Name: "mainnet", AlternativeNames: []string{"ethereum", "eth"}, ChainID: 1, NativeSymbol: "ETH",
		NodeVariableName: "ETHEREUM_MAINNET_NODE", DefaultNode: "https://ethereum-rpc.publicnode.com"},
	{Name: "sepolia", ChainID: 11155111, NativeSymbol: "ETH",
		NodeVariableName: "SEPOLIA_NODE", DefaultNode: "https://ethereum-sepolia-rpc.publicnode.com"},
	{Name: "bsc", AlternativeNames: []string{"bnb"}, ChainID: 56, NativeSymbol: "BNB",
		NodeVariableName: "BSC_MAINNET_NODE", DefaultNode: "https://bsc-dataseed.binance.org"},
	{Name: "polygon", AlternativeNames: []string{"matic"}, ChainID: 137, NativeSymbol: "POL",
		NodeVariableName: "MATIC_MAINNET_NODE", DefaultNode: "https://polygon-rpc.com"},
	{Name: "arbitrum", ChainID: 42161, NativeSymbol: "ETH",
		NodeVariableName: "ARBITRUM_MAINNET_NODE", DefaultNode: "https://arb1.arbitrum.io/rpc"},
	{Name: "optimism", AlternativeNames: []string{"op"}, ChainID: 10, NativeSymbol: "ETH",
		NodeVariableName: "OPTIMISM_MAINNET_NODE", DefaultNode: "https://mainnet.optimism.io"},
	{Name: "base", ChainID: 8453, NativeSymbol: "ETH",
		NodeVariableName: "BASE_MAINNET_NODE", DefaultNode: "https://mainnet.base.org"},
}

var (
	byName = map[string]Network{}
	byID   = map[uint64]Network{}
)

func init() {
	for _, n := range supported {
		if n.ExplorerAPIURL == "" {
			n.ExplorerAPIURL = EtherscanV2
		}
		byID[n.ChainID] = n
		byName[n.Name] = n
		for _, alt := range n.AlternativeNames {
			byName[alt] = n
		}
	}
}

var ErrNetworkNotFound = fmt.Errorf("network not found")

// Get looks a network up by name, alternative name or decimal chain id.
func Get(name string) (Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, found := byName[key]; found {
		return n, nil
	}
	var id uint64
	if _, err := fmt.Sscanf(key, "%d", &id); err == nil && fmt.Sprint(id) == key {
		if n, found := byID[id]; found {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("network '%s': %w (supported: %s)", name, ErrNetworkNotFound, strings.Join(Names(), ", "))
}

func Names() []string {
	names := make([]string, 0, len(supported))
	for _, n := range supported {
		names = append(names, n.Name)
	}
	sort.Strings(names)
	return names
}
