package abicache

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/log"
)

const DefaultTTL = 30 * time.Minute

// MemoryCache holds ABI JSON in a bigcache with a fixed entry lifetime.
type MemoryCache struct {
	cache  *bigcache.BigCache
	logger log.Logger
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(ctx context.Context, ttl time.Duration, logger log.Logger) (*MemoryCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	config := bigcache.DefaultConfig(ttl)
	config.Shards = 64
	config.MaxEntriesInWindow = 1024
	config.Verbose = false
	cache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: cache, logger: logger}, nil
}

func (m *MemoryCache) Get(address string) (codec.ABI, bool) {
	data, err := m.cache.Get(Key(address))
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			m.logger.Warn("abi cache read failed", "address", address, "err", err)
		}
		return nil, false
	}
	a, err := codec.ParseABIString(string(data))
	if err != nil {
		m.logger.Warn("dropping corrupt abi cache entry", "address", address, "err", err)
		_ = m.cache.Delete(Key(address))
		return nil, false
	}
	return a, true
}

func (m *MemoryCache) Set(address string, a codec.ABI) error {
	data, err := a.JSON()
	if err != nil {
		return err
	}
	return m.cache.Set(Key(address), []byte(data))
}

func (m *MemoryCache) Len() int {
	return m.cache.Len()
}

func (m *MemoryCache) Close() error {
	return m.cache.Close()
}
