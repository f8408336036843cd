package honeypot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
)

// ErrUpstreamUnavailable marks a failed call to the external simulation
// backend. ErrNotFoundOnChain means the backend answered but the token
// does not exist there.
var (
	ErrUpstreamUnavailable = errors.New("simulation backend unavailable")
	ErrNotFoundOnChain     = errors.New("token not found on chain")
)

// RiskLevel is the simulator's coarse risk classification.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "very_low"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// SimulationResult is what a honeypot check produces, whichever backend
// answered it.
type SimulationResult struct {
	TokenName        string    `json:"token_name"`
	TokenSymbol      string    `json:"token_symbol"`
	IsHoneypot       bool      `json:"is_honeypot"`
	HoneypotReason   string    `json:"honeypot_reason,omitempty"`
	BuyTax           float64   `json:"buy_tax"`
	SellTax          float64   `json:"sell_tax"`
	TransferTax      float64   `json:"transfer_tax"`
	Risk             RiskLevel `json:"risk"`
	ContractVerified bool      `json:"contract_verified"`
	HolderCount      int       `json:"holder_count"`
	Flags            []string  `json:"flags,omitempty"`
}

// Client runs honeypot checks. EVM chains go through the external
// simulation API; Solana has no equivalent simulator, so mints are scored
// locally from on-chain authority flags (see solana.go).
type Client struct {
	apiURL         string
	solanaRPCURL   string
	dexScreenerURL string
	client         *http.Client
}

func New(apiURL, solanaRPCURL, dexScreenerURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:         apiURL,
		solanaRPCURL:   solanaRPCURL,
		dexScreenerURL: dexScreenerURL,
		client:         &http.Client{Timeout: timeout},
	}
}

// Simulate checks whether the token at address can be sold after being
// bought, and at what tax. Upstream failures are returned as errors; the
// caller decides how to degrade.
func (c *Client) Simulate(ctx context.Context, address string, chain chains.Chain) (*SimulationResult, error) {
	if chain == chains.ChainSolana {
		return c.simulateSolana(ctx, address)
	}
	return c.simulateEVM(ctx, address, chain)
}

func (c *Client) simulateEVM(ctx context.Context, address string, chain chains.Chain) (*SimulationResult, error) {
	url := fmt.Sprintf("%s/v2/IsHoneypot?address=%s&chainID=%s", c.apiURL, address, chain.NumericID())

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	var apiResp struct {
		Token struct {
			Name         string `json:"name"`
			Symbol       string `json:"symbol"`
			TotalHolders int    `json:"totalHolders"`
		} `json:"token"`
		Summary struct {
			Risk string `json:"risk"`
		} `json:"summary"`
		HoneypotResult struct {
			IsHoneypot     bool   `json:"isHoneypot"`
			HoneypotReason string `json:"honeypotReason"`
		} `json:"honeypotResult"`
		SimulationResult struct {
			BuyTax      float64 `json:"buyTax"`
			SellTax     float64 `json:"sellTax"`
			TransferTax float64 `json:"transferTax"`
		} `json:"simulationResult"`
		ContractCode struct {
			OpenSource bool `json:"openSource"`
		} `json:"contractCode"`
		Flags []string `json:"flags"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("honeypot API decode: %w", err)
	}

	result := &SimulationResult{
		TokenName:        apiResp.Token.Name,
		TokenSymbol:      apiResp.Token.Symbol,
		IsHoneypot:       apiResp.HoneypotResult.IsHoneypot,
		HoneypotReason:   apiResp.HoneypotResult.HoneypotReason,
		BuyTax:           apiResp.SimulationResult.BuyTax,
		SellTax:          apiResp.SimulationResult.SellTax,
		TransferTax:      apiResp.SimulationResult.TransferTax,
		Risk:             normalizeRisk(apiResp.Summary.Risk),
		ContractVerified: apiResp.ContractCode.OpenSource,
		HolderCount:      apiResp.Token.TotalHolders,
		Flags:            apiResp.Flags,
	}

	log.Debug().Str("addr", address).Str("chain", string(chain)).
		Bool("honeypot", result.IsHoneypot).Str("risk", string(result.Risk)).
		Msg("simulation complete")
	return result, nil
}

// normalizeRisk maps the API's free-form risk strings onto our enum.
// Unrecognized values land on medium rather than low: an unknown signal
// should not read as reassurance.
func normalizeRisk(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskVeryLow, RiskLow, RiskMedium, RiskHigh, RiskVeryHigh:
		return RiskLevel(s)
	case "":
		return RiskLow
	default:
		return RiskMedium
	}
}

func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 10<<20))
}
