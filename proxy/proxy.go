// Package proxy finds the implementation behind upgradeable proxy contracts
// by reading their storage slots.
package proxy

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/log"
)

// StorageReader is the subset of ethclient.Client the detector needs.
type StorageReader interface {
	StorageAt(ctx context.Context, account gethcommon.Address, key gethcommon.Hash, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var (
	// bytes32(uint256(keccak256('eip1967.proxy.implementation')) - 1)
	ImplementationSlot = eip1967Slot("eip1967.proxy.implementation")
	// bytes32(uint256(keccak256('eip1967.proxy.beacon')) - 1)
	BeaconSlot = eip1967Slot("eip1967.proxy.beacon")
	// keccak256('org.zeppelinos.proxy.implementation')
	ZeppelinSlot = crypto.Keccak256Hash([]byte("org.zeppelinos.proxy.implementation"))
	// bytes32(uint256(keccak256('matic.network.proxy.implementation')) - 1)
	MaticSlot = eip1967Slot("matic.network.proxy.implementation")
)

func eip1967Slot(label string) gethcommon.Hash {
	slot := new(big.Int).Sub(crypto.Keccak256Hash([]byte(label)).Big(), big.NewInt(1))
	return gethcommon.BigToHash(slot)
}

type Detector struct {
	reader StorageReader
	logger log.Logger
}

func NewDetector(reader StorageReader, logger log.Logger) *Detector {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Detector{reader: reader, logger: logger}
}

// Dial connects a Detector to a JSON-RPC node.
func Dial(ctx context.Context, rpcURL string, logger log.Logger) (*Detector, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, common.WrapError(common.RPCError, err, "couldn't connect to %s", rpcURL)
	}
	return NewDetector(client, logger), nil
}

// Implementation returns the lowercased implementation address behind
// address. found is false when address is not a recognized proxy.
func (d *Detector) Implementation(ctx context.Context, address string) (impl string, found bool, err error) {
	contract := gethcommon.HexToAddress(address)

	addr, err := d.slotAddress(ctx, contract, ImplementationSlot)
	if err != nil || addr != (gethcommon.Address{}) {
		return d.result(address, "eip1967", addr, err)
	}

	beacon, err := d.slotAddress(ctx, contract, BeaconSlot)
	if err != nil {
		return "", false, err
	}
	if beacon != (gethcommon.Address{}) {
		addr, err = d.beaconImplementation(ctx, beacon)
		return d.result(address, "eip1967 beacon", addr, err)
	}

	for _, legacy := range []struct {
		name string
		slot gethcommon.Hash
	}{{"zeppelinos", ZeppelinSlot}, {"matic", MaticSlot}} {
		addr, err = d.slotAddress(ctx, contract, legacy.slot)
		if err != nil || addr != (gethcommon.Address{}) {
			return d.result(address, legacy.name, addr, err)
		}
	}
	return "", false, nil
}

func (d *Detector) result(proxy, standard string, addr gethcommon.Address, err error) (string, bool, error) {
	if err != nil {
		return "", false, err
	}
	if addr == (gethcommon.Address{}) {
		return "", false, nil
	}
	impl := strings.ToLower(addr.Hex())
	d.logger.Debug("found proxy implementation", "proxy", proxy, "standard", standard, "implementation", impl)
	return impl, true, nil
}

func (d *Detector) slotAddress(ctx context.Context, contract gethcommon.Address, slot gethcommon.Hash) (gethcommon.Address, error) {
	raw, err := d.reader.StorageAt(ctx, contract, slot, nil)
	if err != nil {
		return gethcommon.Address{}, common.WrapError(common.RPCError, err, "couldn't read slot %s of %s", slot.Hex(), contract.Hex())
	}
	return gethcommon.BytesToAddress(raw), nil
}

func (d *Detector) beaconImplementation(ctx context.Context, beacon gethcommon.Address) (gethcommon.Address, error) {
	out, err := d.reader.CallContract(ctx, ethereum.CallMsg{
		To:   &beacon,
		Data: codec.Selector("implementation()"),
	}, nil)
	if err != nil {
		return gethcommon.Address{}, common.WrapError(common.RPCError, err, "couldn't call implementation() on beacon %s", beacon.Hex())
	}
	if len(out) < 32 {
		return gethcommon.Address{}, common.NewError(common.RPCError, "beacon %s returned %d bytes for implementation()", beacon.Hex(), len(out))
	}
	return gethcommon.BytesToAddress(out[:32]), nil
}
