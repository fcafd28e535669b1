package util

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tranvictor/calldata/abicache"
	"github.com/tranvictor/calldata/abiloader"
	"github.com/tranvictor/calldata/catalog"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/explorers"
	"github.com/tranvictor/calldata/log"
	"github.com/tranvictor/calldata/networks"
	"github.com/tranvictor/calldata/proxy"
)

// ABIResolver abstracts where a contract's ABI comes from so that command
// Run functions can be exercised offline with a stub.
type ABIResolver interface {
	LoadABI(ctx context.Context, address string) (codec.ABI, error)
}

// ConfigResolver serves --abi, then --erc20/--standard, and only then builds
// the network loader, on first use.
type ConfigResolver struct {
	CustomABI string
	Standard  string
	NewLoader func(ctx context.Context) (ABIResolver, error)

	once   sync.Once
	loader ABIResolver
	err    error
}

func (r *ConfigResolver) LoadABI(ctx context.Context, address string) (codec.ABI, error) {
	if r.CustomABI != "" {
		return ReadCustomABI(r.CustomABI)
	}
	if r.Standard != "" {
		return catalog.Lookup(r.Standard)
	}
	if r.NewLoader == nil {
		return nil, fmt.Errorf("no abi source configured, pass --abi or --erc20")
	}
	r.once.Do(func() {
		r.loader, r.err = r.NewLoader(ctx)
	})
	if r.err != nil {
		return nil, r.err
	}
	return r.loader.LoadABI(ctx, address)
}

// ReadCustomABI accepts inline ABI JSON or a path to a file holding it.
func ReadCustomABI(source string) (codec.ABI, error) {
	text := strings.TrimSpace(source)
	if !strings.HasPrefix(text, "[") {
		content, err := os.ReadFile(text)
		if err != nil {
			return nil, fmt.Errorf("couldn't read abi file: %w", err)
		}
		text = string(content)
	}
	a, err := codec.ParseABIString(text)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse abi: %w", err)
	}
	return a, nil
}

// NetworkLoader wires cache, explorer and proxy detection for network n.
func NetworkLoader(ctx context.Context, n networks.Network, env config.Env, noProxy bool, cacheFile string, logger log.Logger) (*abiloader.Loader, error) {
	var cache abicache.Cache
	if cacheFile != "" {
		cache = abicache.NewFileCache(cacheFile)
	} else {
		mem, err := abicache.NewMemoryCache(ctx, abicache.DefaultTTL, logger)
		if err != nil {
			return nil, err
		}
		cache = mem
	}

	explorer := explorers.NewEtherscanLikeExplorer(n.ExplorerAPIURL, env.APIKey, n.ChainID, explorers.WithLogger(logger))

	var detector abiloader.ImplementationFinder
	if !noProxy {
		d, err := proxy.Dial(ctx, n.Node(), logger)
		if err != nil {
			return nil, err
		}
		detector = d
	}
	return abiloader.New(cache, explorer, detector, logger), nil
}
