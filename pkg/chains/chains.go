package chains

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

// Chain is the canonical identifier for one blockchain network.
type Chain string

const (
	ChainEthereum  Chain = "ethereum"
	ChainBSC       Chain = "bsc"
	ChainPolygon   Chain = "polygon"
	ChainAvalanche Chain = "avalanche"
	ChainArbitrum  Chain = "arbitrum"
	ChainOptimism  Chain = "optimism"
	ChainGnosis    Chain = "gnosis"
	ChainBase      Chain = "base"
	ChainSolana    Chain = "solana"
)

// Every upstream API speaks one of two encodings for the same network:
// explorers and the honeypot simulator want numeric chain IDs, the
// portfolio API wants slugs. The table below is the single source of
// truth for both.
type chainIDs struct {
	numeric string
	slug    string
}

var idTable = map[Chain]chainIDs{
	ChainEthereum:  {"1", "eth-mainnet"},
	ChainBSC:       {"56", "bsc-mainnet"},
	ChainPolygon:   {"137", "matic-mainnet"},
	ChainAvalanche: {"43114", "avalanche-mainnet"},
	ChainArbitrum:  {"42161", "arbitrum-mainnet"},
	ChainOptimism:  {"10", "optimism-mainnet"},
	ChainGnosis:    {"100", "gnosis-mainnet"},
	ChainBase:      {"8453", "base-mainnet"},
	ChainSolana:    {"101", "solana-mainnet"},
}

// All returns every supported chain.
func All() []Chain {
	return []Chain{
		ChainEthereum, ChainBSC, ChainPolygon, ChainAvalanche,
		ChainArbitrum, ChainOptimism, ChainGnosis, ChainBase, ChainSolana,
	}
}

// DetectionOrder is the probe priority for chain auto-detection. The order
// reflects usage frequency, not the alphabet, and winners are picked by
// position in this list.
func DetectionOrder() []Chain {
	return []Chain{
		ChainEthereum, ChainBSC, ChainPolygon,
		ChainAvalanche, ChainArbitrum, ChainOptimism,
	}
}

// SpamListChains lists the chains the static spam datasets cover. Chains
// outside this set cannot be checked against the list at all.
func SpamListChains() []Chain {
	return []Chain{
		ChainEthereum, ChainBSC, ChainPolygon,
		ChainOptimism, ChainGnosis, ChainBase,
	}
}

// NumericID returns the chain's numeric encoding ("1", "56", ...).
func (c Chain) NumericID() string {
	if ids, ok := idTable[c]; ok {
		return ids.numeric
	}
	return idTable[ChainEthereum].numeric
}

// Slug returns the chain's slug encoding ("eth-mainnet", ...).
func (c Chain) Slug() string {
	if ids, ok := idTable[c]; ok {
		return ids.slug
	}
	return idTable[ChainEthereum].slug
}

// IsEVM reports whether the chain belongs to the EVM family.
func (c Chain) IsEVM() bool {
	return c != ChainSolana && c != ""
}

// FromNumeric resolves a numeric chain ID. Unknown IDs resolve to Ethereum
// mainnet; that fallback is deliberate, not an error.
func FromNumeric(id string) Chain {
	for c, ids := range idTable {
		if ids.numeric == id {
			return c
		}
	}
	return ChainEthereum
}

// FromSlug resolves a chain slug, falling back to Ethereum mainnet.
func FromSlug(slug string) Chain {
	for c, ids := range idTable {
		if ids.slug == slug {
			return c
		}
	}
	return ChainEthereum
}

// Parse accepts a chain name, numeric ID, or slug. Empty input means
// "auto" and is returned as the zero Chain.
func Parse(s string) Chain {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return ""
	}
	for c, ids := range idTable {
		if string(c) == s || ids.numeric == s || ids.slug == s {
			return c
		}
	}
	return ChainEthereum
}

// Verify checks the ID table for totality: every chain must round-trip
// through both encodings. Called once at startup.
func Verify() error {
	for _, c := range All() {
		ids, ok := idTable[c]
		if !ok {
			return fmt.Errorf("chain %s missing from ID table", c)
		}
		if ids.numeric == "" || ids.slug == "" {
			return fmt.Errorf("chain %s has an incomplete ID mapping", c)
		}
		if FromNumeric(ids.numeric) != c || FromSlug(ids.slug) != c {
			return fmt.Errorf("chain %s does not round-trip through its IDs", c)
		}
	}
	return nil
}

// AddressForm is the syntactic family of an address. Form alone decides
// which chain family is even eligible, so it is resolved before any
// network call.
type AddressForm int

const (
	FormInvalid AddressForm = iota
	FormEVM
	FormSolana
)

// ErrInvalidAddress is returned for input matching neither address form.
var ErrInvalidAddress = errors.New("address matches neither EVM nor Solana form")

// ParseAddress classifies an address string by form.
func ParseAddress(addr string) (AddressForm, error) {
	addr = strings.TrimSpace(addr)
	if common.IsHexAddress(addr) {
		return FormEVM, nil
	}
	if len(addr) >= 32 && len(addr) <= 44 {
		if _, err := solana.PublicKeyFromBase58(addr); err == nil {
			return FormSolana, nil
		}
	}
	return FormInvalid, fmt.Errorf("%w: %q", ErrInvalidAddress, abbrev(addr))
}

func abbrev(addr string) string {
	if len(addr) > 12 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}
