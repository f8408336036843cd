package engine

import (
	"time"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
)

// Category is the final risk classification of an analysis. Categories are
// strictly ordered: a spam-list hit beats any live simulation result
// (the static list is audited, simulation is heuristic), and within
// simulation results honeypot beats high risk beats medium beats clean.
type Category string

const (
	CategorySpam       Category = "SPAM"
	CategoryHoneypot   Category = "HONEYPOT"
	CategoryHighRisk   Category = "HIGH_RISK"
	CategoryMediumRisk Category = "MEDIUM_RISK"
	CategoryLowRisk    Category = "LOW_RISK"
	CategorySafe       Category = "SAFE"
	CategoryError      Category = "ERROR"
)

// Intent is what the caller wants to know about the address.
type Intent string

const (
	IntentWallet         Intent = "wallet"
	IntentTokenSpamCheck Intent = "token-spam-check"
	IntentHoneypotCheck  Intent = "honeypot-check"
)

// Verdict is the immutable output of one analysis. A verdict is produced
// for every request that passes address validation; failures surface as
// CategoryError, never as a dropped request.
type Verdict struct {
	Category       Category     `json:"category"`
	Intent         Intent       `json:"intent"`
	Address        string       `json:"address"`
	Chain          chains.Chain `json:"chain"`
	Evidence       Evidence     `json:"evidence"`
	Recommendation string       `json:"recommendation"`
	Summary        string       `json:"summary"`
	AnalyzedAt     time.Time    `json:"analyzed_at"`
}

// Evidence carries the structured facts backing a verdict. Only the
// fields relevant to the verdict's path are populated.
type Evidence struct {
	TokenName   string `json:"token_name,omitempty"`
	TokenSymbol string `json:"token_symbol,omitempty"`

	// Spam list
	SpamListKind  string `json:"spam_list_kind,omitempty"`
	SpamListScore int    `json:"spam_list_score,omitempty"`

	// Simulation
	HoneypotReason   string   `json:"honeypot_reason,omitempty"`
	BuyTax           float64  `json:"buy_tax,omitempty"`
	SellTax          float64  `json:"sell_tax,omitempty"`
	TransferTax      float64  `json:"transfer_tax,omitempty"`
	Risk             string   `json:"risk,omitempty"`
	ContractVerified bool     `json:"contract_verified,omitempty"`
	HolderCount      int      `json:"holder_count,omitempty"`
	Flags            []string `json:"flags,omitempty"`

	// Wallet analysis
	Portfolio *PortfolioSummary `json:"portfolio,omitempty"`

	// Degradations worth telling the user about ("local list not
	// available for this chain", etc.)
	Notes []string `json:"notes,omitempty"`
}

// PortfolioSummary is the wallet-analysis breakdown. The counts always
// satisfy Total == SpamTokens + SafeTokens + NFTs, and the two percentage
// pairs are computed against fungible and NFT counts independently.
type PortfolioSummary struct {
	Total      int `json:"total"`
	SpamTokens int `json:"spam_tokens"`
	SafeTokens int `json:"safe_tokens"`
	NFTs       int `json:"nfts"`
	SpamNFTs   int `json:"spam_nfts"`
	SafeNFTs   int `json:"safe_nfts"`

	SpamTokenPct float64 `json:"spam_token_pct"`
	SafeTokenPct float64 `json:"safe_token_pct"`
	SpamNFTPct   float64 `json:"spam_nft_pct"`
	SafeNFTPct   float64 `json:"safe_nft_pct"`

	// Tokens the provider called safe but the local list flagged.
	LocalListHits int `json:"local_list_hits"`
}
