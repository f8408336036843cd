package portfolio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
)

func TestHoldings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/v1/bsc-mainnet/address/0xwallet/balances_v2/"
		if r.URL.Path != wantPath {
			t.Errorf("path = %q, want %q", r.URL.Path, wantPath)
		}
		if r.URL.Query().Get("nft") != "true" {
			t.Error("nft=true missing from query")
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		fmt.Fprint(w, `{"data":{"items":[
			{"type":"cryptocurrency","contract_address":"0xaaa","contract_name":"Good Token","contract_ticker_symbol":"GOOD","contract_decimals":18,"balance":"1000","quote":12.5,"is_spam":false},
			{"type":"cryptocurrency","contract_address":"0xbbb","contract_name":"Visit-Site.xyz","contract_ticker_symbol":"CLAIM","balance":"999999","is_spam":true},
			{"type":"nft","contract_address":"0xccc","contract_name":"Ape Pics","balance":"1","is_spam":false}
		]},"error":false}`)
	}))
	defer srv.Close()

	f := New(srv.URL, "test-key", 2*time.Second)
	holdings, err := f.Holdings(context.Background(), "0xwallet", chains.ChainBSC)
	if err != nil {
		t.Fatalf("Holdings: %v", err)
	}
	if len(holdings) != 3 {
		t.Fatalf("len = %d, want 3", len(holdings))
	}

	if holdings[0].IsNFT() || holdings[0].IsSpam || holdings[0].Symbol != "GOOD" {
		t.Errorf("holdings[0] = %+v", holdings[0])
	}
	if !holdings[1].IsSpam {
		t.Error("holdings[1] should be provider-flagged spam")
	}
	if !holdings[2].IsNFT() {
		t.Error("holdings[2] should be an NFT")
	}
}

func TestHoldingsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"items":[]},"error":true,"error_message":"invalid api key"}`)
	}))
	defer srv.Close()

	f := New(srv.URL, "bad-key", time.Second)
	if _, err := f.Holdings(context.Background(), "0xwallet", chains.ChainEthereum); err == nil {
		t.Fatal("want error when the provider reports one")
	}
}

func TestHoldingsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", 429)
	}))
	defer srv.Close()

	f := New(srv.URL, "key", time.Second)
	if _, err := f.Holdings(context.Background(), "0xwallet", chains.ChainEthereum); err == nil {
		t.Fatal("want error for HTTP 429")
	}
}
