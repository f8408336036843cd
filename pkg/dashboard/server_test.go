package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/db"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/engine"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/honeypot"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/portfolio"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/spamlist"
)

const testAddr = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

type fixedSpam struct{}

func (fixedSpam) IsSpam(ctx context.Context, address string, chain chains.Chain) (*spamlist.Hit, error) {
	return nil, nil
}
func (fixedSpam) FindAcrossAllChains(ctx context.Context, address string) (chains.Chain, *spamlist.Hit, bool) {
	return "", nil, false
}
func (fixedSpam) Checkable(chain chains.Chain) bool { return chain == chains.ChainEthereum }

type fixedSim struct{}

func (fixedSim) Simulate(ctx context.Context, address string, chain chains.Chain) (*honeypot.SimulationResult, error) {
	return &honeypot.SimulationResult{TokenSymbol: "OK", Risk: honeypot.RiskLow}, nil
}

type fixedWallet struct{}

func (fixedWallet) Holdings(ctx context.Context, walletAddress string, chain chains.Chain) ([]portfolio.Holding, error) {
	return nil, nil
}

type fixedProber struct{}

func (fixedProber) Detect(ctx context.Context, address string) (chains.Chain, bool) {
	return chains.ChainBSC, true
}

func newTestDashboard(t *testing.T) *Dashboard {
	t.Helper()
	store, err := db.NewStore(filepath.Join(t.TempDir(), "dash.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	eng := engine.New(fixedSpam{}, fixedSim{}, fixedWallet{}, fixedProber{}, engine.Options{})
	return New(eng, store, 0)
}

func TestHandleAnalyze(t *testing.T) {
	d := newTestDashboard(t)

	body := `{"address":"` + testAddr + `","chain":"ethereum","intent":"honeypot-check"}`
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	d.handleAnalyze(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var v engine.Verdict
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.Category != engine.CategoryLowRisk || v.Chain != chains.ChainEthereum {
		t.Errorf("verdict = %+v", v)
	}

	// The scan must land in history.
	scans, err := d.store.GetRecentScans(10)
	if err != nil || len(scans) != 1 {
		t.Fatalf("history len=%d err=%v", len(scans), err)
	}
}

func TestHandleAnalyzeRejectsBadInput(t *testing.T) {
	d := newTestDashboard(t)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"GET not allowed", "GET", "", 405},
		{"broken json", "POST", "{", 400},
		{"bad address", "POST", `{"address":"junk"}`, 400},
		{"unknown intent", "POST", `{"address":"` + testAddr + `","intent":"steal"}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/analyze", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			d.handleAnalyze(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestHandleDetect(t *testing.T) {
	d := newTestDashboard(t)

	req := httptest.NewRequest("GET", "/api/detect?address="+testAddr, nil)
	w := httptest.NewRecorder()
	d.handleDetect(w, req)

	var resp struct {
		Detected bool   `json:"detected"`
		Chain    string `json:"chain"`
		ChainID  string `json:"chain_id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Detected || resp.Chain != "bsc" || resp.ChainID != "56" {
		t.Errorf("resp = %+v", resp)
	}

	w = httptest.NewRecorder()
	d.handleDetect(w, httptest.NewRequest("GET", "/api/detect", nil))
	if w.Code != 400 {
		t.Errorf("missing address: status = %d, want 400", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := cors(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for OPTIONS")
	})
	req := httptest.NewRequest("OPTIONS", "/api/stats", nil)
	w := httptest.NewRecorder()
	h(w, req)

	if w.Code != 200 {
		t.Errorf("status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}
