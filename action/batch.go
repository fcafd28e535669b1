package action

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/calldata/codec"
)

// BatchConcurrency bounds the requests resolved at the same time.
const BatchConcurrency = 8

// Request is one entry of a batch file.
type Request struct {
	Address   string         `json:"address"`
	Signature string         `json:"signature"`
	Params    map[string]any `json:"params"`
	Value     string         `json:"value,omitempty"`
}

// ABISource resolves the ABI of a contract.
type ABISource interface {
	LoadABI(ctx context.Context, address string) (codec.ABI, error)
}

// StaticABI serves the same ABI for every address.
type StaticABI codec.ABI

func (s StaticABI) LoadABI(ctx context.Context, address string) (codec.ABI, error) {
	return codec.ABI(s), nil
}

// BuildBatch builds every request concurrently. Results keep request order;
// the first failure cancels the rest and is returned.
func (b *Builder) BuildBatch(ctx context.Context, requests []Request, source ABISource) ([]*Action, error) {
	actions := make([]*Action, len(requests))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(BatchConcurrency)

	for i, req := range requests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := source.LoadABI(ctx, req.Address)
			if err != nil {
				return fmt.Errorf("request %d (%s): %w", i, req.Address, err)
			}
			value, err := ParseValue(req.Value)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			act, err := b.Build(req.Address, req.Signature, req.Params, a, WithValue(value))
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			actions[i] = act
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	b.logger.Info("built batch", "actions", len(actions))
	return actions, nil
}
