package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/honeypot"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/portfolio"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/spamlist"
)

// The engine talks to its data sources through these interfaces so that
// every frontend shares one pipeline and tests can swap in stubs.

// SpamLookup answers queries against the static spam datasets.
type SpamLookup interface {
	IsSpam(ctx context.Context, address string, chain chains.Chain) (*spamlist.Hit, error)
	FindAcrossAllChains(ctx context.Context, address string) (chains.Chain, *spamlist.Hit, bool)
	Checkable(chain chains.Chain) bool
}

// Simulator runs a honeypot check for a token contract.
type Simulator interface {
	Simulate(ctx context.Context, address string, chain chains.Chain) (*honeypot.SimulationResult, error)
}

// PortfolioAPI lists a wallet's holdings on one chain.
type PortfolioAPI interface {
	Holdings(ctx context.Context, walletAddress string, chain chains.Chain) ([]portfolio.Holding, error)
}

// ChainProber auto-detects the chain a bare address lives on.
type ChainProber interface {
	Detect(ctx context.Context, address string) (chains.Chain, bool)
}

// Options tune the wallet risk tiers and the local re-check fan-out.
type Options struct {
	MediumRiskThreshold float64
	HighRiskThreshold   float64
	RecheckConcurrency  int
}

func (o *Options) applyDefaults() {
	if o.MediumRiskThreshold <= 0 {
		o.MediumRiskThreshold = 0.1
	}
	if o.HighRiskThreshold <= 0 {
		o.HighRiskThreshold = 0.3
	}
	if o.RecheckConcurrency <= 0 {
		o.RecheckConcurrency = 8
	}
}

// Engine is the risk aggregation pipeline shared by the web UI, the chat
// agent, and the Telegram bot. One Analyze call is one request-scoped
// pass; the engine itself holds no per-request state.
type Engine struct {
	spam   SpamLookup
	sim    Simulator
	wallet PortfolioAPI
	prober ChainProber
	opts   Options
}

func New(spam SpamLookup, sim Simulator, wallet PortfolioAPI, prober ChainProber, opts Options) *Engine {
	opts.applyDefaults()
	return &Engine{spam: spam, sim: sim, wallet: wallet, prober: prober, opts: opts}
}

// DetectChain exposes chain auto-detection for UI affordances.
func (e *Engine) DetectChain(ctx context.Context, address string) (chains.Chain, bool) {
	return e.prober.Detect(ctx, address)
}

// Analyze runs the full pipeline for one user query. The returned error is
// non-nil only for invalid input (bad address form); every other failure
// mode ends in a well-formed verdict, ERROR category included.
func (e *Engine) Analyze(ctx context.Context, address string, chainHint chains.Chain, intent Intent) (*Verdict, error) {
	form, err := chains.ParseAddress(address)
	if err != nil {
		return nil, err
	}

	chain := e.resolveChain(ctx, address, form, chainHint, intent)

	v := &Verdict{
		Intent:     intent,
		Address:    address,
		Chain:      chain,
		AnalyzedAt: time.Now().UTC(),
	}

	switch intent {
	case IntentWallet:
		e.analyzeWallet(ctx, v)
	case IntentTokenSpamCheck:
		e.analyzeTokenSpam(ctx, v)
	default:
		e.analyzeHoneypot(ctx, v)
	}

	v.Summary = Render(v)
	log.Info().Str("addr", v.Address).Str("chain", string(v.Chain)).
		Str("intent", string(v.Intent)).Str("category", string(v.Category)).
		Msg("analysis complete")
	return v, nil
}

// resolveChain picks the chain for the request. Auto-detection only runs
// for honeypot checks: the portfolio and spam-list APIs want an explicit
// chain, so the other intents take the hint or the Ethereum default.
func (e *Engine) resolveChain(ctx context.Context, address string, form chains.AddressForm, hint chains.Chain, intent Intent) chains.Chain {
	if form == chains.FormSolana {
		return chains.ChainSolana
	}
	if hint != "" {
		return hint
	}
	if intent == IntentHoneypotCheck {
		if detected, ok := e.prober.Detect(ctx, address); ok {
			return detected
		}
		log.Debug().Str("addr", address).Msg("chain detection came up empty, defaulting to ethereum")
	}
	return chains.ChainEthereum
}

// checkLocalList consults the spam datasets. The bool reports whether the
// chain could be checked at all.
func (e *Engine) checkLocalList(ctx context.Context, v *Verdict) (*spamlist.Hit, bool) {
	if !e.spam.Checkable(v.Chain) {
		v.Evidence.Notes = append(v.Evidence.Notes,
			fmt.Sprintf("spam list coverage does not include %s; local check skipped", v.Chain))
		return nil, false
	}
	hit, err := e.spam.IsSpam(ctx, v.Address, v.Chain)
	if err != nil {
		return nil, false
	}
	return hit, true
}

func (e *Engine) markSpam(v *Verdict, hit *spamlist.Hit) {
	v.Category = CategorySpam
	v.Evidence.SpamListKind = string(hit.Kind)
	v.Evidence.SpamListScore = hit.Entry.Score
	v.Recommendation = "This contract is on a maintained blocklist of confirmed spam. Do not interact with it."
}

// analyzeHoneypot is the honeypot-check path: local list first (a hit
// short-circuits, the simulator is never called), then live simulation.
func (e *Engine) analyzeHoneypot(ctx context.Context, v *Verdict) {
	hit, _ := e.checkLocalList(ctx, v)
	if hit != nil {
		e.markSpam(v, hit)
		return
	}

	sim, err := e.sim.Simulate(ctx, v.Address, v.Chain)
	if err != nil {
		// No cheaper signal left: the local list already missed.
		log.Warn().Err(err).Str("addr", v.Address).Msg("simulation failed")
		v.Category = CategoryError
		v.Recommendation = "The analysis could not be completed: the simulation service was unavailable. Try again later."
		return
	}

	v.Evidence.TokenName = sim.TokenName
	v.Evidence.TokenSymbol = sim.TokenSymbol
	v.Evidence.BuyTax = sim.BuyTax
	v.Evidence.SellTax = sim.SellTax
	v.Evidence.TransferTax = sim.TransferTax
	v.Evidence.Risk = string(sim.Risk)
	v.Evidence.ContractVerified = sim.ContractVerified
	v.Evidence.HolderCount = sim.HolderCount
	v.Evidence.Flags = sim.Flags
	v.Evidence.HoneypotReason = sim.HoneypotReason

	switch {
	case sim.IsHoneypot:
		v.Category = CategoryHoneypot
		v.Recommendation = "Simulation indicates this token cannot be sold after buying. Avoid it."
	case sim.Risk == honeypot.RiskVeryHigh || sim.Risk == honeypot.RiskHigh:
		v.Category = CategoryHighRisk
		v.Recommendation = "Simulation flags serious risk signals. Avoid unless you fully understand the contract."
	case sim.Risk == honeypot.RiskMedium:
		v.Category = CategoryMediumRisk
		v.Recommendation = "Some risk signals present. Proceed with caution and small amounts."
	default:
		v.Category = CategoryLowRisk
		v.Recommendation = "No immediate issues found in simulation. This is not a guarantee of safety."
	}
}

// analyzeTokenSpam is the cheap path: local list only, never the
// simulator. A miss on the resolved chain falls back to a search across
// every covered chain, so a token listed elsewhere still gets flagged.
func (e *Engine) analyzeTokenSpam(ctx context.Context, v *Verdict) {
	hit, checkable := e.checkLocalList(ctx, v)
	if hit != nil {
		e.markSpam(v, hit)
		return
	}
	if listed, xhit, found := e.spam.FindAcrossAllChains(ctx, v.Address); found {
		e.markSpam(v, xhit)
		v.Evidence.Notes = append(v.Evidence.Notes,
			fmt.Sprintf("listed in the %s spam dataset, not the requested %s one", listed, v.Chain))
		return
	}
	if !checkable {
		v.Category = CategoryError
		v.Recommendation = fmt.Sprintf("The spam database has no dataset for %s, so this address cannot be checked there. Absence of a result is not a safety signal.", v.Chain)
		return
	}
	v.Category = CategoryLowRisk
	v.Recommendation = "Not found in the spam database. That only rules out known spam; do further research before interacting."
}
