package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/config"
)

// Detector figures out which chain a bare address lives on. Solana-form
// addresses are decided by syntax alone; EVM addresses are probed against
// each chain's explorer in priority order, first for a verified contract,
// then, failing that, for mere existence.
type Detector struct {
	explorerURL func(chains.Chain) string
	explorerKey func(chains.Chain) string
	avaxURL     string
	client      *http.Client
	timeout     time.Duration
}

func New(cfg *config.Config) *Detector {
	return &Detector{
		explorerURL: cfg.GetExplorerURL,
		explorerKey: cfg.GetExplorerKey,
		avaxURL:     cfg.AvaxIndexerURL,
		client:      &http.Client{Timeout: cfg.HTTPTimeout},
		timeout:     cfg.HTTPTimeout,
	}
}

// NewCustom builds a detector against explicit endpoints. Used by tests
// and by callers that bring their own explorer mirrors.
func NewCustom(explorerURL func(chains.Chain) string, avaxURL string, timeout time.Duration) *Detector {
	return &Detector{
		explorerURL: explorerURL,
		explorerKey: func(chains.Chain) string { return "" },
		avaxURL:     avaxURL,
		client:      &http.Client{Timeout: timeout},
		timeout:     timeout,
	}
}

// Detect returns the chain the address most likely belongs to. ok=false
// means no probe produced a positive signal; the caller applies its own
// default.
func (d *Detector) Detect(ctx context.Context, address string) (chains.Chain, bool) {
	form, err := chains.ParseAddress(address)
	if err != nil {
		return "", false
	}
	if form == chains.FormSolana {
		// Form alone settles it; no probing.
		return chains.ChainSolana, true
	}

	order := chains.DetectionOrder()

	// Pass 1: verified contract. Pass 2: address existence (weaker
	// signal: unverified contract or plain EOA).
	for _, probe := range []func(context.Context, chains.Chain, string) bool{d.probeVerified, d.probeExists} {
		if chain, ok := d.fanOut(ctx, order, address, probe); ok {
			return chain, true
		}
	}

	log.Debug().Str("addr", address).Msg("no chain claimed the address")
	return "", false
}

// fanOut issues one probe per chain concurrently, then walks the results
// in priority order. The winner is the lowest-index positive, never the
// first to respond.
func (d *Detector) fanOut(ctx context.Context, order []chains.Chain, address string, probe func(context.Context, chains.Chain, string) bool) (chains.Chain, bool) {
	results := make([]bool, len(order))

	var wg sync.WaitGroup
	for i, chain := range order {
		wg.Add(1)
		go func(i int, chain chains.Chain) {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()
			results[i] = probe(probeCtx, chain, address)
		}(i, chain)
	}
	wg.Wait()

	for i, positive := range results {
		if positive {
			return order[i], true
		}
	}
	return "", false
}

// probeVerified asks whether the address is a verified, non-empty contract
// on the chain. Any probe failure counts as a negative for that chain only.
func (d *Detector) probeVerified(ctx context.Context, chain chains.Chain, address string) bool {
	if chain == chains.ChainAvalanche {
		return d.avaxProbe(ctx, address, true)
	}

	apiURL := d.explorerURL(chain)
	if apiURL == "" {
		return false
	}
	url := fmt.Sprintf("%s?module=contract&action=getsourcecode&address=%s&apikey=%s",
		apiURL, address, d.explorerKey(chain))

	body, err := d.getJSON(ctx, url)
	if err != nil {
		log.Debug().Err(err).Str("chain", string(chain)).Msg("verified-contract probe failed")
		return false
	}

	var result struct {
		Status string `json:"status"`
		Result []struct {
			SourceCode string `json:"SourceCode"`
			ABI        string `json:"ABI"`
		} `json:"result"`
	}
	if json.Unmarshal(body, &result) != nil || result.Status != "1" || len(result.Result) == 0 {
		return false
	}
	first := result.Result[0]
	return first.SourceCode != "" && first.ABI != "Contract source code not verified"
}

// probeExists asks whether the address has any footprint on the chain
// (non-zero balance).
func (d *Detector) probeExists(ctx context.Context, chain chains.Chain, address string) bool {
	if chain == chains.ChainAvalanche {
		return d.avaxProbe(ctx, address, false)
	}

	apiURL := d.explorerURL(chain)
	if apiURL == "" {
		return false
	}
	url := fmt.Sprintf("%s?module=account&action=balance&address=%s&tag=latest&apikey=%s",
		apiURL, address, d.explorerKey(chain))

	body, err := d.getJSON(ctx, url)
	if err != nil {
		log.Debug().Err(err).Str("chain", string(chain)).Msg("existence probe failed")
		return false
	}

	var result struct {
		Status string `json:"status"`
		Result string `json:"result"`
	}
	if json.Unmarshal(body, &result) != nil || result.Status != "1" {
		return false
	}
	return result.Result != "" && result.Result != "0"
}

// avaxProbe hits the Avalanche indexing service, whose response shape has
// nothing in common with the etherscan family.
func (d *Detector) avaxProbe(ctx context.Context, address string, wantVerified bool) bool {
	url := fmt.Sprintf("%s/v1/chains/%s/addresses/%s",
		d.avaxURL, chains.ChainAvalanche.NumericID(), address)

	body, err := d.getJSON(ctx, url)
	if err != nil {
		log.Debug().Err(err).Msg("avalanche indexer probe failed")
		return false
	}

	var result struct {
		Address struct {
			IsContract bool   `json:"isContract"`
			Verified   bool   `json:"verified"`
			Balance    string `json:"balance"`
		} `json:"address"`
	}
	if json.Unmarshal(body, &result) != nil {
		return false
	}
	if wantVerified {
		return result.Address.IsContract && result.Address.Verified
	}
	return result.Address.Balance != "" && result.Address.Balance != "0"
}

func (d *Detector) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 10<<20))
}
