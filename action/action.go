// Package action assembles contract calls: it resolves a function in an ABI,
// validates and normalizes the caller's parameters and encodes them into
// calldata.
package action

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/tranvictor/calldata/abitype"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/log"
	"github.com/tranvictor/calldata/normalize"
	"github.com/tranvictor/calldata/validate"
)

// MaxSuggestions caps the "did you mean" list of a FUNCTION_NOT_FOUND error.
const MaxSuggestions = 3

// Action is a fully encoded contract call.
type Action struct {
	ID                uuid.UUID      `json:"id"`
	ContractAddress   string         `json:"contractAddress"`
	FunctionSignature string         `json:"functionSignature"`
	FunctionName      string         `json:"functionName"`
	Calldata          string         `json:"calldata"`
	ABI               codec.Function `json:"abi"`
	Value             *big.Int       `json:"value,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
}

type options struct {
	value *big.Int
}

type Option func(*options)

// WithValue attaches a native currency amount in wei.
func WithValue(value *big.Int) Option {
	return func(o *options) {
		if value != nil {
			o.value = new(big.Int).Set(value)
		}
	}
}

type Builder struct {
	logger log.Logger
}

func NewBuilder(logger log.Logger) *Builder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Builder{logger: logger}
}

// BuildAction is Builder.Build without logging.
func BuildAction(address, signature string, params map[string]any, a codec.ABI, opts ...Option) (*Action, error) {
	return NewBuilder(nil).Build(address, signature, params, a, opts...)
}

// ParamKey is the key the value of the i-th input is looked up under.
// Unnamed inputs use arg0, arg1...
func ParamKey(p abitype.Parameter, i int) string {
	if p.Name == "" {
		return fmt.Sprintf("arg%d", i)
	}
	return p.Name
}

// Build validates params against the function of a matching signature and
// encodes them. The first failing step decides the returned error.
func (b *Builder) Build(address, signature string, params map[string]any, a codec.ABI, opts ...Option) (*Action, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	addr := validate.ValidateAddress(address)
	if !addr.Valid {
		return nil, common.NewError(common.InvalidAddress, "%s", addr.Error)
	}

	fn, ok := a.FindBySignature(signature)
	if !ok {
		return nil, notFound(signature, a)
	}
	logger := b.logger.With("contract", addr.Value, "function", signature)

	for i, input := range fn.Inputs {
		key := ParamKey(input, i)
		if _, present := params[key]; !present {
			return nil, common.ParamError(key, "Missing parameter: %s", key)
		}
	}

	var warnings []string
	args := make([]any, len(fn.Inputs))
	for i, input := range fn.Inputs {
		key := ParamKey(input, i)
		raw := params[key]
		outcome := validate.ValidateParameterType(raw, input.Type, input.Components)
		if !outcome.Valid {
			return nil, common.ParamError(key, "Invalid value for %s (%s): %s", key, input.Type, outcome.Error)
		}
		if outcome.Warning != "" {
			logger.Warn("accepted parameter without validation", "param", key, "type", input.Type, "warning", outcome.Warning)
			warnings = append(warnings, fmt.Sprintf("%s: %s", key, outcome.Warning))
		}
		normalized, err := normalize.Normalize(raw, input.Type, input.Components)
		if err != nil {
			return nil, common.WrapError(common.EncodingFailed, err, "couldn't normalize %s", key)
		}
		args[i] = normalized
	}

	data, err := codec.Encode(fn, args)
	if err != nil {
		return nil, common.WrapError(common.EncodingFailed, err, "couldn't encode %s", signature)
	}
	logger.Debug("encoded calldata", "bytes", len(data))

	return &Action{
		ID:                uuid.New(),
		ContractAddress:   addr.Value.(string),
		FunctionSignature: signature,
		FunctionName:      fn.Name,
		Calldata:          hexutil.Encode(data),
		ABI:               fn,
		Value:             o.value,
		Warnings:          warnings,
	}, nil
}

func notFound(signature string, a codec.ABI) error {
	name := signature
	if i := strings.IndexByte(signature, '('); i >= 0 {
		name = signature[:i]
	}
	msg := fmt.Sprintf("Function %s not found in ABI", signature)
	if suggestions := Suggest(name, a); len(suggestions) > 0 {
		msg = fmt.Sprintf("%s (did you mean %s?)", msg, strings.Join(suggestions, ", "))
	}
	return common.NewError(common.FunctionNotFound, "%s", msg)
}

// Suggest returns up to MaxSuggestions signatures of a that fuzzily match
// pattern, best first.
func Suggest(pattern string, a codec.ABI) []string {
	if pattern == "" {
		return nil
	}
	sigs := a.Signatures()
	matches := fuzzy.Find(pattern, sigs)
	result := []string{}
	for _, m := range matches {
		if len(result) == MaxSuggestions {
			break
		}
		result = append(result, m.Str)
	}
	return result
}

// FilterStateChanging drops the pure and view functions of a.
func FilterStateChanging(a codec.ABI) codec.ABI {
	return a.StateChanging()
}
