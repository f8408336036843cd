package honeypot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
)

func TestSimulateEVM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("chainID"); got != "56" {
			t.Errorf("chainID = %q, want 56", got)
		}
		fmt.Fprint(w, `{
			"token": {"name": "Rug Token", "symbol": "RUG", "totalHolders": 42},
			"summary": {"risk": "very_high"},
			"honeypotResult": {"isHoneypot": true, "honeypotReason": "sell reverts"},
			"simulationResult": {"buyTax": 2.5, "sellTax": 99.0, "transferTax": 0},
			"contractCode": {"openSource": false},
			"flags": ["high_sell_tax"]
		}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "http://unused.invalid", "http://unused.invalid", 2*time.Second)
	res, err := c.Simulate(context.Background(), "0xdead", chains.ChainBSC)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if !res.IsHoneypot || res.HoneypotReason != "sell reverts" {
		t.Errorf("honeypot result = %+v", res)
	}
	if res.TokenName != "Rug Token" || res.TokenSymbol != "RUG" || res.HolderCount != 42 {
		t.Errorf("token fields = %+v", res)
	}
	if res.SellTax != 99.0 || res.BuyTax != 2.5 {
		t.Errorf("taxes = buy %.1f sell %.1f", res.BuyTax, res.SellTax)
	}
	if res.Risk != RiskVeryHigh || res.ContractVerified {
		t.Errorf("risk=%q verified=%t", res.Risk, res.ContractVerified)
	}
}

func TestSimulateEVMUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", 503)
	}))
	defer srv.Close()

	c := New(srv.URL, "http://unused.invalid", "http://unused.invalid", time.Second)
	_, err := c.Simulate(context.Background(), "0xdead", chains.ChainEthereum)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("want ErrUpstreamUnavailable, got %v", err)
	}
}

func TestNormalizeRisk(t *testing.T) {
	tests := []struct {
		in   string
		want RiskLevel
	}{
		{"low", RiskLow},
		{"very_high", RiskVeryHigh},
		{"", RiskLow},
		{"banana", RiskMedium},
		{"unknown", RiskMedium},
	}
	for _, tt := range tests {
		if got := normalizeRisk(tt.in); got != tt.want {
			t.Errorf("normalizeRisk(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// solanaFixture builds an RPC + DexScreener pair serving one mint account.
func solanaFixture(t *testing.T, owner, mintAuth, freezeAuth string, liquidity float64, liquidityUp bool) *Client {
	t.Helper()

	rpc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":{"value":{
			"owner": %q,
			"data": {"parsed": {"type": "mint", "info": {
				"decimals": 9, "supply": "1000000",
				"mintAuthority": %q, "freezeAuthority": %q
			}}}}}}`, owner, mintAuth, freezeAuth)
	}))
	t.Cleanup(rpc.Close)

	dex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !liquidityUp {
			http.Error(w, "down", 500)
			return
		}
		fmt.Fprintf(w, `{"pairs":[{"liquidity":{"usd":%f}},{"liquidity":{"usd":1.0}}]}`, liquidity)
	}))
	t.Cleanup(dex.Close)

	return New("http://unused.invalid", rpc.URL, dex.URL, 2*time.Second)
}

func TestSimulateSolanaDecisionTable(t *testing.T) {
	auth := "AuthorityPubkey1111111111111111111111111111"

	tests := []struct {
		name         string
		owner        string
		mintAuth     string
		freezeAuth   string
		liquidity    float64
		liquidityUp  bool
		wantHoneypot bool
		wantRisk     RiskLevel
		wantFlag     string
	}{
		{"nonstandard program", "SomeOtherProgram1111111111111111111111111111", "", "", 0, true, true, RiskHigh, "nonstandard_token_program"},
		{"freeze and mint", tokenProgramID, auth, auth, 0, true, true, RiskHigh, ""},
		{"freeze only", tokenProgramID, "", auth, 0, true, false, RiskMedium, "freeze_authority_present"},
		{"mint only", tokenProgramID, auth, "", 0, true, false, RiskMedium, "mint_authority_present"},
		{"renounced with liquidity", token2022ProgramID, "", "", 50000, true, false, RiskLow, ""},
		{"renounced thin liquidity", tokenProgramID, "", "", 200, true, false, RiskMedium, "insufficient_liquidity"},
		{"renounced liquidity unknown", tokenProgramID, "", "", 0, false, false, RiskMedium, "insufficient_data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := solanaFixture(t, tt.owner, tt.mintAuth, tt.freezeAuth, tt.liquidity, tt.liquidityUp)
			res, err := c.Simulate(context.Background(), "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", chains.ChainSolana)
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}
			if res.IsHoneypot != tt.wantHoneypot {
				t.Errorf("IsHoneypot = %t, want %t", res.IsHoneypot, tt.wantHoneypot)
			}
			if res.Risk != tt.wantRisk {
				t.Errorf("Risk = %q, want %q", res.Risk, tt.wantRisk)
			}
			if tt.wantFlag != "" && !hasFlag(res.Flags, tt.wantFlag) {
				t.Errorf("flags %v missing %q", res.Flags, tt.wantFlag)
			}
		})
	}
}

func TestSimulateSolanaNotAMint(t *testing.T) {
	rpc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{"value":{
			"owner": "11111111111111111111111111111111",
			"data": {"parsed": {"type": "account", "info": {}}}}}}`)
	}))
	defer rpc.Close()

	c := New("http://unused.invalid", rpc.URL, "http://unused.invalid", time.Second)
	if _, err := c.Simulate(context.Background(), "someaddr", chains.ChainSolana); err == nil {
		t.Fatal("want error for non-mint account")
	}
}

func TestSimulateSolanaMissingAccount(t *testing.T) {
	rpc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{"value":null}}`)
	}))
	defer rpc.Close()

	c := New("http://unused.invalid", rpc.URL, "http://unused.invalid", time.Second)
	_, err := c.Simulate(context.Background(), "someaddr", chains.ChainSolana)
	if !errors.Is(err, ErrNotFoundOnChain) {
		t.Fatalf("want ErrNotFoundOnChain, got %v", err)
	}
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
