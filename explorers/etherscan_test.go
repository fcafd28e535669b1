package explorers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/calldata/common"
)

const token = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"

const transferABI = `[{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}]`

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func newExplorer(url string) *EtherscanLikeExplorer {
	return NewEtherscanLikeExplorer(url, "key", 1, WithRetry(3, time.Millisecond))
}

func TestGetABI(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		body, _ := jsonString(transferABI)
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":` + body + `}`))
	}))
	defer srv.Close()

	a, err := NewEtherscanLikeExplorer(srv.URL+"/", "key", 137).GetABI(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, []string{"transfer(address,uint256)"}, a.Signatures())
	assert.Contains(t, query, "chainid=137")
	assert.Contains(t, query, "action=getabi")
	assert.Contains(t, query, "address="+token)
}

func TestGetABIErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind common.Kind
	}{
		{"not verified", `{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`, common.ContractNotFound},
		{"bad key", `{"status":"0","message":"NOTOK","result":"Invalid API Key"}`, common.InvalidAPIKey},
		{"other", `{"status":"0","message":"NOTOK","result":"Invalid Address format"}`, common.ABIFetchFailed},
		{"garbage", `<html>`, common.ABIFetchFailed},
		{"unreadable abi", `{"status":"1","message":"OK","result":"not an abi"}`, common.ABIFetchFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(respond(tc.body))
			defer srv.Close()
			_, err := newExplorer(srv.URL).GetABI(context.Background(), token)
			assert.Equal(t, tc.kind, common.KindOf(err))
		})
	}
}

func TestGetABIRequiresKey(t *testing.T) {
	_, err := NewEtherscanLikeExplorer("http://unused", "", 1).GetABI(context.Background(), token)
	assert.True(t, errors.Is(err, common.ErrInvalidAPIKey))
}

func TestGetABIRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusBadGateway)
		case 2:
			_, _ = w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Max rate limit reached"}`))
		default:
			body, _ := jsonString(transferABI)
			_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":` + body + `}`))
		}
	}))
	defer srv.Close()

	a, err := newExplorer(srv.URL).GetABI(context.Background(), token)
	require.NoError(t, err)
	assert.Len(t, a, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetABINetworkErrorAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newExplorer(srv.URL).GetABI(context.Background(), token)
	assert.True(t, errors.Is(err, common.ErrNetwork))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetABIUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newExplorer(srv.URL).GetABI(context.Background(), token)
	assert.True(t, errors.Is(err, common.ErrInvalidAPIKey))
}

func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}
