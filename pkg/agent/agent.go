package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/engine"
)

var (
	evmAddrRe    = regexp.MustCompile(`0x[0-9a-fA-F]{40}`)
	base58AddrRe = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]{32,44}`)
)

// chainWords maps chain names as users type them onto chain hints.
// Checked longest-match-first so "arbitrum one" beats nothing shorter.
var chainWords = []struct {
	word  string
	chain chains.Chain
}{
	{"ethereum", chains.ChainEthereum},
	{"avalanche", chains.ChainAvalanche},
	{"arbitrum", chains.ChainArbitrum},
	{"optimism", chains.ChainOptimism},
	{"polygon", chains.ChainPolygon},
	{"gnosis", chains.ChainGnosis},
	{"matic", chains.ChainPolygon},
	{"base", chains.ChainBase},
	{"avax", chains.ChainAvalanche},
	{"bsc", chains.ChainBSC},
	{"bnb", chains.ChainBSC},
	{"eth", chains.ChainEthereum},
}

const usage = `I check crypto addresses for risk. Paste an address and tell me what you want:
  - "check wallet 0x..." scans holdings for spam tokens and NFTs
  - "is 0x... a honeypot" simulates a buy and sell
  - "check token 0x... for spam" looks it up in the spam database
Add a chain name ("on bsc", "on polygon") to skip auto-detection.`

// Agent turns free-text chat messages into engine calls. It is the shared
// brain of the TUI and the Telegram bot.
type Agent struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Agent {
	return &Agent{engine: e}
}

// Respond handles one chat message and returns the reply text. It never
// returns an error: anything that goes wrong becomes a readable reply.
func (a *Agent) Respond(ctx context.Context, text string) string {
	addr := ExtractAddress(text)
	if addr == "" {
		return usage
	}

	intent := engine.InferIntent(text)
	hint := extractChainHint(text, addr)

	v, err := a.engine.Analyze(ctx, addr, hint, intent)
	if err != nil {
		return fmt.Sprintf("That doesn't look like a valid address: %s. Paste a full EVM (0x...) or Solana address.", addr)
	}
	return v.Summary
}

// ExtractAddress pulls the first plausible address out of free text. EVM
// addresses are unambiguous so they win; a base58 run is only accepted if
// it actually parses as a Solana key.
func ExtractAddress(text string) string {
	if m := evmAddrRe.FindString(text); m != "" {
		return m
	}
	for _, m := range base58AddrRe.FindAllString(text, -1) {
		if form, err := chains.ParseAddress(m); err == nil && form == chains.FormSolana {
			return m
		}
	}
	return ""
}

// extractChainHint scans the message for a chain name, skipping the
// address itself. Whole-word matches only, so "database" never reads as
// a Base hint.
func extractChainHint(text, addr string) chains.Chain {
	t := strings.ToLower(strings.Replace(text, addr, "", 1))
	words := strings.FieldsFunc(t, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, cw := range chainWords {
		for _, w := range words {
			if w == cw.word {
				return cw.chain
			}
		}
	}
	return ""
}
