package honeypot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SPL token programs. A mint owned by anything else is not a token we can
// reason about and is treated as a sell trap outright.
const (
	tokenProgramID     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	token2022ProgramID = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
)

// minLiquidityUSD is the floor below which a Solana token is considered to
// have no real exit liquidity.
const minLiquidityUSD = 1000.0

// mintInfo holds the authority flags parsed from a mint account.
type mintInfo struct {
	OwnerProgram    string
	MintAuthority   string
	FreezeAuthority string
	Decimals        int
	Supply          string
}

// simulateSolana scores a mint from on-chain authority flags. No
// third-party simulator exists for Solana, so the rules are local: the
// first matching row of the decision table wins.
func (c *Client) simulateSolana(ctx context.Context, address string) (*SimulationResult, error) {
	mint, err := c.fetchMint(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("solana mint fetch: %w", err)
	}

	result := &SimulationResult{Risk: RiskLow}

	hasMint := mint.MintAuthority != ""
	hasFreeze := mint.FreezeAuthority != ""
	if hasMint {
		result.Flags = append(result.Flags, "mint_authority_present")
	}
	if hasFreeze {
		result.Flags = append(result.Flags, "freeze_authority_present")
	}

	switch {
	case mint.OwnerProgram != tokenProgramID && mint.OwnerProgram != token2022ProgramID:
		result.IsHoneypot = true
		result.Risk = RiskHigh
		result.HoneypotReason = "mint is not owned by the standard token program"
		result.Flags = append(result.Flags, "nonstandard_token_program")
	case hasFreeze && hasMint:
		result.IsHoneypot = true
		result.Risk = RiskHigh
		result.HoneypotReason = "authorities can freeze transfers and mint supply"
	case hasFreeze:
		result.Risk = RiskMedium
	case hasMint:
		result.Risk = RiskMedium
	default:
		liquidity, known := c.fetchLiquidity(ctx, address)
		switch {
		case !known:
			// No random fallback here: unknown liquidity is reported
			// as insufficient data and scored like insufficient
			// liquidity.
			result.Risk = RiskMedium
			result.Flags = append(result.Flags, "insufficient_data")
		case liquidity < minLiquidityUSD:
			result.Risk = RiskMedium
			result.Flags = append(result.Flags, "insufficient_liquidity")
		}
	}

	log.Debug().Str("mint", address).Bool("honeypot", result.IsHoneypot).
		Str("risk", string(result.Risk)).Msg("solana mint scored")
	return result, nil
}

// fetchMint reads the mint account via getAccountInfo with jsonParsed
// encoding.
func (c *Client) fetchMint(ctx context.Context, address string) (*mintInfo, error) {
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "getAccountInfo",
		"params": []interface{}{
			address,
			map[string]string{"encoding": "jsonParsed", "commitment": "finalized"},
		},
	}
	reqBody, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", c.solanaRPCURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d from solana RPC", resp.StatusCode)
	}

	var rpcResp struct {
		Result struct {
			Value *struct {
				Owner string `json:"owner"`
				Data  struct {
					Parsed struct {
						Type string `json:"type"`
						Info struct {
							Decimals        int    `json:"decimals"`
							Supply          string `json:"supply"`
							MintAuthority   string `json:"mintAuthority"`
							FreezeAuthority string `json:"freezeAuthority"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"value"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, err
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if rpcResp.Result.Value == nil {
		return nil, fmt.Errorf("%w: account %s", ErrNotFoundOnChain, address)
	}
	if rpcResp.Result.Value.Data.Parsed.Type != "mint" {
		return nil, fmt.Errorf("account %s is not a token mint", address)
	}

	info := rpcResp.Result.Value.Data.Parsed.Info
	return &mintInfo{
		OwnerProgram:    rpcResp.Result.Value.Owner,
		MintAuthority:   info.MintAuthority,
		FreezeAuthority: info.FreezeAuthority,
		Decimals:        info.Decimals,
		Supply:          info.Supply,
	}, nil
}

// fetchLiquidity returns the best-pair liquidity in USD from DexScreener.
// known=false means the signal could not be fetched at all.
func (c *Client) fetchLiquidity(ctx context.Context, address string) (float64, bool) {
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", c.dexScreenerURL, address)
	body, err := c.getJSON(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("mint", address).Msg("liquidity fetch failed")
		return 0, false
	}

	var result struct {
		Pairs []struct {
			Liquidity struct {
				USD float64 `json:"usd"`
			} `json:"liquidity"`
		} `json:"pairs"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, false
	}

	best := 0.0
	for _, p := range result.Pairs {
		if p.Liquidity.USD > best {
			best = p.Liquidity.USD
		}
	}
	return best, true
}
