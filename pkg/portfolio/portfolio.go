package portfolio

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

// ErrUpstreamUnavailable marks a failed call to the balance provider.
var ErrUpstreamUnavailable = errors.New("portfolio backend unavailable")

// Holding is one token or NFT position in a wallet, as reported by the
// balance aggregation provider. IsSpam is the provider's own
// classification; the engine may still overrule "safe" via the local list.
type Holding struct {
	Type         string  `json:"type"` // "cryptocurrency" | "nft"
	Address      string  `json:"contract_address"`
	Name         string  `json:"contract_name"`
	Symbol       string  `json:"contract_ticker_symbol"`
	Decimals     int     `json:"contract_decimals"`
	Balance      string  `json:"balance"`
	QuoteUSD     float64 `json:"quote"`
	PrettyQuote  string  `json:"pretty_quote"`
	IsSpam       bool    `json:"is_spam"`
}

// IsNFT reports whether the holding is an NFT position.
func (h Holding) IsNFT() bool { return h.Type == "nft" }

// Fetcher queries the balance aggregation API for a wallet's holdings on
// one chain. The API is addressed by chain slug, not numeric ID.
type Fetcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Holdings lists every fungible token and NFT the wallet holds on the
// chain, in provider order.
func (f *Fetcher) Holdings(ctx context.Context, walletAddress string, chain chains.Chain) ([]Holding, error) {
	url := fmt.Sprintf("%s/v1/%s/address/%s/balances_v2/?nft=true&key=%s",
		f.baseURL, chain.Slug(), walletAddress, f.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}

	var apiResp struct {
		Data struct {
			Items []Holding `json:"items"`
		} `json:"data"`
		Error        bool   `json:"error"`
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("portfolio API decode: %w", err)
	}
	if apiResp.Error {
		return nil, fmt.Errorf("portfolio API: %s", apiResp.ErrorMessage)
	}

	log.Debug().Str("wallet", walletAddress).Str("chain", string(chain)).
		Int("holdings", len(apiResp.Data.Items)).Msg("portfolio fetched")
	return apiResp.Data.Items, nil
}
