// Package config holds the process wide settings of the calldata commands.
// Flag values are bound by cmd; environment values are read by Load.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tranvictor/calldata/networks"
)

const (
	APIKeyVariable      = "ETHERSCAN_API_KEY"
	RPCURLVariable      = "CALLDATA_RPC_URL"
	ExplorerURLVariable = "CALLDATA_EXPLORER_URL"
)

var (
	Network   string
	CustomABI string
	Standard  string
	NoProxy   bool
	Value     string
	JSON      bool
	LogLevel  string
	CacheFile string
	Search    string
	AllFuncs  bool
)

// Env is the part of the configuration that comes from the environment.
type Env struct {
	APIKey      string
	RPCURL      string
	ExplorerURL string
}

// Load reads envFiles (".env" when none are given) into the process
// environment without overriding variables already set, then collects the
// values calldata uses. Missing files are not an error.
func Load(envFiles ...string) (Env, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}
	return Env{
		APIKey:      strings.TrimSpace(os.Getenv(APIKeyVariable)),
		RPCURL:      strings.TrimSpace(os.Getenv(RPCURLVariable)),
		ExplorerURL: strings.TrimSpace(os.Getenv(ExplorerURLVariable)),
	}, nil
}

// Resolve picks the network named by the --network flag and applies the
// environment overrides for its RPC and explorer urls.
func (e Env) Resolve(network string) (networks.Network, error) {
	n, err := networks.Get(network)
	if err != nil {
		return networks.Network{}, err
	}
	if e.RPCURL != "" {
		n.DefaultNode = e.RPCURL
		n.NodeVariableName = RPCURLVariable
	}
	if e.ExplorerURL != "" {
		n.ExplorerAPIURL = e.ExplorerURL
	}
	return n, nil
}
