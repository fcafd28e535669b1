package abiloader

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/calldata/abicache"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
)

const (
	proxyAddr = "0x1111111111111111111111111111111111111111"
	implAddr  = "0x2222222222222222222222222222222222222222"
)

type fakeExplorer struct {
	mu    sync.Mutex
	abis  map[string]string
	calls map[string]int
}

func (f *fakeExplorer) GetABI(ctx context.Context, address string) (codec.ABI, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[strings.ToLower(address)]++
	text, ok := f.abis[strings.ToLower(address)]
	if !ok {
		return nil, common.NewError(common.ContractNotFound, "%s is not verified", address)
	}
	return codec.ParseABIString(text)
}

type fakeDetector map[string]string

func (f fakeDetector) Implementation(ctx context.Context, address string) (string, bool, error) {
	impl, ok := f[strings.ToLower(address)]
	return impl, ok, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]codec.ABI
}

func (m *memCache) Get(address string) (codec.ABI, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.data[abicache.Key(address)]
	return a, ok
}

func (m *memCache) Set(address string, a codec.ABI) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[abicache.Key(address)] = a
	return nil
}

const (
	proxyABI = `[{"type":"function","name":"upgradeTo","inputs":[{"name":"impl","type":"address"}],"outputs":[]},
		{"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}]`
	implABI = `[{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}]`
)

func TestLoadABIMergesProxyImplementation(t *testing.T) {
	explorer := &fakeExplorer{abis: map[string]string{proxyAddr: proxyABI, implAddr: implABI}}
	cache := &memCache{data: map[string]codec.ABI{}}
	l := New(cache, explorer, fakeDetector{proxyAddr: implAddr}, nil)

	a, err := l.LoadABI(context.Background(), strings.ToUpper("0x")+proxyAddr[2:])
	require.NoError(t, err)
	assert.Equal(t, []string{"transfer(address,uint256)", "admin()", "upgradeTo(address)"}, a.Signatures())

	_, err = l.LoadABI(context.Background(), proxyAddr)
	require.NoError(t, err)
	assert.Equal(t, 1, explorer.calls[proxyAddr])
	assert.Equal(t, 1, explorer.calls[implAddr])
}

func TestLoadABIWithoutProxy(t *testing.T) {
	explorer := &fakeExplorer{abis: map[string]string{implAddr: implABI}}
	a, err := New(nil, explorer, fakeDetector{}, nil).LoadABI(context.Background(), implAddr)
	require.NoError(t, err)
	assert.Len(t, a, 2)
}

func TestLoadABIErrors(t *testing.T) {
	explorer := &fakeExplorer{abis: map[string]string{proxyAddr: proxyABI}}

	_, err := New(nil, explorer, nil, nil).LoadABI(context.Background(), "0x1234")
	assert.True(t, errors.Is(err, common.ErrInvalidAddress))

	_, err = New(nil, explorer, nil, nil).LoadABI(context.Background(), implAddr)
	assert.True(t, errors.Is(err, common.ErrContractNotFound))

	_, err = New(nil, explorer, fakeDetector{proxyAddr: implAddr}, nil).LoadABI(context.Background(), proxyAddr)
	assert.True(t, errors.Is(err, common.ErrContractNotFound))
}

func TestLoadABIConcurrentCallsAreNotCoalesced(t *testing.T) {
	explorer := &fakeExplorer{abis: map[string]string{implAddr: implABI}}
	cache := &memCache{data: map[string]codec.ABI{}}
	l := New(cache, explorer, nil, nil)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := l.LoadABI(context.Background(), implAddr)
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	explorer.mu.Lock()
	defer explorer.mu.Unlock()
	assert.GreaterOrEqual(t, explorer.calls[implAddr], 1)
	_, found := cache.Get(implAddr)
	assert.True(t, found)
}
