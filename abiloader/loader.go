// Package abiloader resolves the ABI of a contract from a cache, a block
// explorer and, for proxies, the implementation behind them.
package abiloader

import (
	"context"

	"github.com/tranvictor/calldata/abicache"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/explorers"
	"github.com/tranvictor/calldata/log"
	"github.com/tranvictor/calldata/validate"
)

// ImplementationFinder reports the implementation behind a proxy.
type ImplementationFinder interface {
	Implementation(ctx context.Context, address string) (string, bool, error)
}

type Loader struct {
	cache    abicache.Cache
	fetcher  explorers.ABIFetcher
	detector ImplementationFinder
	logger   log.Logger
}

// New builds a Loader. cache and detector may be nil; without a detector
// proxies resolve to their own ABI only.
func New(cache abicache.Cache, fetcher explorers.ABIFetcher, detector ImplementationFinder, logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loader{cache: cache, fetcher: fetcher, detector: detector, logger: logger}
}

// LoadABI returns the ABI of address. For a proxy the implementation's
// functions come first, followed by the proxy's own functions that the
// implementation does not declare. The result is cached under address.
// Concurrent calls for the same address are not coalesced.
func (l *Loader) LoadABI(ctx context.Context, address string) (codec.ABI, error) {
	if outcome := validate.ValidateAddress(address); !outcome.Valid {
		return nil, common.NewError(common.InvalidAddress, "%s", outcome.Error)
	}
	logger := l.logger.With("address", abicache.Key(address))
	if l.cache != nil {
		if a, found := l.cache.Get(address); found {
			logger.Debug("abi cache hit")
			return a, nil
		}
	}

	a, err := l.fetcher.GetABI(ctx, address)
	if err != nil {
		return nil, err
	}

	if l.detector != nil {
		impl, found, err := l.detector.Implementation(ctx, address)
		if err != nil {
			return nil, err
		}
		if found && impl != abicache.Key(address) {
			logger.Info("resolving proxy implementation", "implementation", impl)
			implABI, err := l.fetcher.GetABI(ctx, impl)
			if err != nil {
				return nil, err
			}
			a = implABI.Merge(a)
		}
	}

	if l.cache != nil {
		if err := l.cache.Set(address, a); err != nil {
			logger.Warn("couldn't cache abi", "err", err)
		}
	}
	return a, nil
}
