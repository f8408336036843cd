package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/portfolio"
)

// analyzeWallet fetches the wallet's holdings, re-checks provider-safe
// fungible tokens against the local spam list, and derives the overall
// risk tier from the spam fractions.
func (e *Engine) analyzeWallet(ctx context.Context, v *Verdict) {
	holdings, err := e.wallet.Holdings(ctx, v.Address, v.Chain)
	if err != nil {
		log.Warn().Err(err).Str("wallet", v.Address).Msg("portfolio fetch failed")
		v.Category = CategoryError
		v.Recommendation = "The analysis could not be completed: the balance provider was unavailable. Try again later."
		return
	}

	summary := e.summarize(ctx, v, holdings)
	v.Evidence.Portfolio = summary

	fungible := summary.Total - summary.NFTs
	spamTokenFrac := 0.0
	if fungible > 0 {
		spamTokenFrac = float64(summary.SpamTokens) / float64(fungible)
	}
	spamNFTFrac := 0.0
	if summary.NFTs > 0 {
		spamNFTFrac = float64(summary.SpamNFTs) / float64(summary.NFTs)
	}

	worst := spamTokenFrac
	if spamNFTFrac > worst {
		worst = spamNFTFrac
	}

	switch {
	case summary.SpamTokens == 0 && summary.SpamNFTs == 0:
		v.Category = CategorySafe
		v.Recommendation = "No spam holdings detected in this wallet."
	case worst > e.opts.HighRiskThreshold:
		v.Category = CategoryHighRisk
		v.Recommendation = "A large share of this wallet's holdings is spam. Treat unknown tokens here as hostile and never approve or interact with them."
	case worst >= e.opts.MediumRiskThreshold:
		v.Category = CategoryMediumRisk
		v.Recommendation = "A notable share of this wallet's holdings is spam. Hide or ignore the flagged tokens; do not interact with them."
	default:
		v.Category = CategoryLowRisk
		v.Recommendation = "A small number of spam holdings were found. Ignore them; do not attempt to sell or approve them."
	}
}

// summarize counts holdings and applies the local-list re-check to every
// fungible token the provider marked safe. Provider-flagged spam is taken
// at face value, re-checking it would change nothing.
func (e *Engine) summarize(ctx context.Context, v *Verdict, holdings []portfolio.Holding) *PortfolioSummary {
	s := &PortfolioSummary{Total: len(holdings)}

	localHits := e.recheckSafeTokens(ctx, v, holdings)

	for i, h := range holdings {
		if h.IsNFT() {
			s.NFTs++
			if h.IsSpam {
				s.SpamNFTs++
			} else {
				s.SafeNFTs++
			}
			continue
		}
		if h.IsSpam || localHits[i] {
			s.SpamTokens++
			if localHits[i] {
				s.LocalListHits++
			}
		} else {
			s.SafeTokens++
		}
	}

	fungible := s.Total - s.NFTs
	if fungible > 0 {
		s.SpamTokenPct = 100 * float64(s.SpamTokens) / float64(fungible)
		s.SafeTokenPct = 100 * float64(s.SafeTokens) / float64(fungible)
	}
	if s.NFTs > 0 {
		s.SpamNFTPct = 100 * float64(s.SpamNFTs) / float64(s.NFTs)
		s.SafeNFTPct = 100 * float64(s.SafeNFTs) / float64(s.NFTs)
	}
	return s
}

// recheckSafeTokens fans out local-list lookups for provider-safe fungible
// tokens, bounded so a large wallet doesn't stampede the dataset cache.
// Returns a per-index hit map.
func (e *Engine) recheckSafeTokens(ctx context.Context, v *Verdict, holdings []portfolio.Holding) map[int]bool {
	hits := make(map[int]bool)
	if !e.spam.Checkable(v.Chain) {
		return hits
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.RecheckConcurrency)

	for i, h := range holdings {
		if h.IsNFT() || h.IsSpam || h.Address == "" {
			continue
		}
		i, addr := i, h.Address
		g.Go(func() error {
			hit, err := e.spam.IsSpam(gctx, addr, v.Chain)
			if err == nil && hit != nil {
				mu.Lock()
				hits[i] = true
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return hits
}
