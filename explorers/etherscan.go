// Package explorers fetches verified contract ABIs from Etherscan-alike
// block explorers.
package explorers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/log"
)

const (
	// EtherscanV2 serves every supported chain, selected by chainid.
	EtherscanV2 = "https://api.etherscan.io/v2"

	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = 500 * time.Millisecond
	maxBodySize       = 4 << 20
)

// ABIFetcher returns the verified ABI of a contract.
type ABIFetcher interface {
	GetABI(ctx context.Context, address string) (codec.ABI, error)
}

type EtherscanLikeExplorer struct {
	Domain  string
	APIKey  string
	ChainID uint64

	client     *http.Client
	retries    int
	retryDelay time.Duration
	logger     log.Logger
}

var _ ABIFetcher = (*EtherscanLikeExplorer)(nil)

type Option func(*EtherscanLikeExplorer)

func WithHTTPClient(client *http.Client) Option {
	return func(ee *EtherscanLikeExplorer) { ee.client = client }
}

// WithRetry sets how often a transient failure is attempted and the delay
// before the first retry. The delay doubles after every attempt.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(ee *EtherscanLikeExplorer) {
		if attempts > 0 {
			ee.retries = attempts
		}
		ee.retryDelay = delay
	}
}

func WithLogger(logger log.Logger) Option {
	return func(ee *EtherscanLikeExplorer) { ee.logger = logger }
}

func NewEtherscanLikeExplorer(domain string, apiKey string, chainID uint64, opts ...Option) *EtherscanLikeExplorer {
	ee := &EtherscanLikeExplorer{
		Domain:     strings.TrimRight(domain, "/"),
		APIKey:     apiKey,
		ChainID:    chainID,
		client:     &http.Client{Timeout: DefaultTimeout},
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(ee)
	}
	return ee
}

func (ee *EtherscanLikeExplorer) GetABIStringAPIURL(address string) string {
	q := url.Values{}
	q.Set("chainid", fmt.Sprint(ee.ChainID))
	q.Set("module", "contract")
	q.Set("action", "getabi")
	q.Set("address", address)
	q.Set("apikey", ee.APIKey)
	return fmt.Sprintf("%s/api?%s", ee.Domain, q.Encode())
}

type abiresponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (ar *abiresponse) IsOK() bool {
	return ar.Status == "1"
}

// retryable marks failures worth another attempt.
type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }

func (ee *EtherscanLikeExplorer) GetABIString(ctx context.Context, address string) (string, error) {
	if ee.APIKey == "" {
		return "", common.NewError(common.InvalidAPIKey, "no explorer API key configured")
	}
	delay := ee.retryDelay
	var lastErr error
	for attempt := 1; attempt <= ee.retries; attempt++ {
		result, err := ee.fetch(ctx, address)
		if err == nil {
			return result, nil
		}
		r, transient := err.(retryable)
		if !transient {
			return "", err
		}
		lastErr = r.err
		if attempt == ee.retries {
			break
		}
		ee.logger.Warnf("abi fetch attempt %d/%d for %s failed: %v, retrying in %v", attempt, ee.retries, address, r.err, delay)
		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return "", common.WrapError(common.NetworkError, ctx.Err(), "abi fetch for %s cancelled", address)
		}
	}
	return "", common.WrapError(common.NetworkError, lastErr, "couldn't reach %s after %d attempts", ee.Domain, ee.retries)
}

func (ee *EtherscanLikeExplorer) fetch(ctx context.Context, address string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ee.GetABIStringAPIURL(address), nil)
	if err != nil {
		return "", common.WrapError(common.ABIFetchFailed, err, "couldn't build explorer request")
	}
	resp, err := ee.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", common.WrapError(common.NetworkError, err, "abi fetch for %s cancelled", address)
		}
		return "", retryable{err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", retryable{err}
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", retryable{fmt.Errorf("explorer responded %s", resp.Status)}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", common.NewError(common.InvalidAPIKey, "explorer rejected the API key: %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return "", common.NewError(common.ABIFetchFailed, "explorer responded %s", resp.Status)
	}

	abiresp := abiresponse{}
	if err := json.Unmarshal(body, &abiresp); err != nil {
		return "", common.WrapError(common.ABIFetchFailed, err, "couldn't unmarshal explorer response %q", truncate(string(body)))
	}
	if abiresp.IsOK() {
		return abiresp.Result, nil
	}
	reason := abiresp.Result
	if reason == "" {
		reason = abiresp.Message
	}
	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "rate limit"):
		return "", retryable{fmt.Errorf("%s", reason)}
	case strings.Contains(lower, "api key"):
		return "", common.NewError(common.InvalidAPIKey, "%s", reason)
	case strings.Contains(lower, "not verified"):
		return "", common.NewError(common.ContractNotFound, "contract %s is not verified: %s", address, reason)
	}
	return "", common.NewError(common.ABIFetchFailed, "error from %s: %s", ee.Domain, reason)
}

// GetABI fetches and parses the ABI of address.
func (ee *EtherscanLikeExplorer) GetABI(ctx context.Context, address string) (codec.ABI, error) {
	ee.logger.Debug("fetching abi", "address", address, "chain", ee.ChainID)
	text, err := ee.GetABIString(ctx, address)
	if err != nil {
		return nil, err
	}
	a, err := codec.ParseABIString(text)
	if err != nil {
		return nil, common.WrapError(common.ABIFetchFailed, err, "explorer returned an unreadable abi for %s", address)
	}
	return a, nil
}

func truncate(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
