// Package abicache keeps resolved ABIs keyed by lowercased contract address.
//
// Caches are explicit objects handed to the loader. Concurrent loads of one
// address are not deduplicated; the last Set wins, which is harmless since the
// ABI behind an address does not change.
package abicache

import (
	"strings"

	"github.com/tranvictor/calldata/codec"
)

type Cache interface {
	Get(address string) (codec.ABI, bool)
	Set(address string, a codec.ABI) error
}

// Key is the cache key of address.
func Key(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
