package engine

import (
	"fmt"
	"strings"
)

// Render produces the fixed human-readable template for a verdict. Each
// category has one template; the evidence fields it carries are part of
// the contract with the frontends.
func Render(v *Verdict) string {
	var b strings.Builder

	switch v.Category {
	case CategorySpam:
		fmt.Fprintf(&b, "🚨 SPAM: %s is a known spam contract on %s (%s list", v.Address, v.Chain, v.Evidence.SpamListKind)
		if v.Evidence.SpamListScore > 0 {
			fmt.Fprintf(&b, ", score %d", v.Evidence.SpamListScore)
		}
		b.WriteString(").")
	case CategoryHoneypot:
		fmt.Fprintf(&b, "🍯 HONEYPOT: %s on %s cannot be sold after buying.", tokenLabel(v), v.Chain)
		if v.Evidence.HoneypotReason != "" {
			fmt.Fprintf(&b, " Reason: %s.", v.Evidence.HoneypotReason)
		}
		writeSimFacts(&b, v)
	case CategoryHighRisk:
		fmt.Fprintf(&b, "⛔ HIGH RISK: %s on %s shows serious risk signals (%s).", tokenLabel(v), v.Chain, v.Evidence.Risk)
		writeSimFacts(&b, v)
	case CategoryMediumRisk:
		if v.Evidence.Portfolio != nil {
			writeWalletSummary(&b, "⚠️ MEDIUM RISK", v)
		} else {
			fmt.Fprintf(&b, "⚠️ MEDIUM RISK: %s on %s has some risk signals.", tokenLabel(v), v.Chain)
			writeSimFacts(&b, v)
		}
	case CategoryLowRisk:
		if v.Evidence.Portfolio != nil {
			writeWalletSummary(&b, "✅ LOW RISK", v)
		} else if v.Intent == IntentTokenSpamCheck {
			fmt.Fprintf(&b, "✅ %s was not found in the %s spam database.", v.Address, v.Chain)
		} else {
			fmt.Fprintf(&b, "✅ LOW RISK: no immediate issues found for %s on %s.", tokenLabel(v), v.Chain)
			writeSimFacts(&b, v)
		}
	case CategorySafe:
		writeWalletSummary(&b, "✅ SAFE", v)
	case CategoryError:
		fmt.Fprintf(&b, "❌ ERROR: analysis of %s on %s could not be completed.", v.Address, v.Chain)
	}

	for _, note := range v.Evidence.Notes {
		fmt.Fprintf(&b, "\nNote: %s.", note)
	}
	if v.Recommendation != "" {
		fmt.Fprintf(&b, "\n%s", v.Recommendation)
	}
	return b.String()
}

func tokenLabel(v *Verdict) string {
	if v.Evidence.TokenName != "" && v.Evidence.TokenSymbol != "" {
		return fmt.Sprintf("%s (%s)", v.Evidence.TokenName, v.Evidence.TokenSymbol)
	}
	if v.Evidence.TokenSymbol != "" {
		return v.Evidence.TokenSymbol
	}
	return v.Address
}

func writeSimFacts(b *strings.Builder, v *Verdict) {
	fmt.Fprintf(b, "\nTaxes: buy %.1f%% / sell %.1f%% / transfer %.1f%%.",
		v.Evidence.BuyTax, v.Evidence.SellTax, v.Evidence.TransferTax)
	if v.Evidence.ContractVerified {
		b.WriteString(" Contract source is verified.")
	} else {
		b.WriteString(" Contract source is NOT verified.")
	}
	if v.Evidence.HolderCount > 0 {
		fmt.Fprintf(b, " Holders: %d.", v.Evidence.HolderCount)
	}
	if len(v.Evidence.Flags) > 0 {
		fmt.Fprintf(b, " Flags: %s.", strings.Join(v.Evidence.Flags, ", "))
	}
}

func writeWalletSummary(b *strings.Builder, banner string, v *Verdict) {
	p := v.Evidence.Portfolio
	fmt.Fprintf(b, "%s: wallet %s on %s holds %d assets: %d tokens (%d spam, %.1f%%) and %d NFTs (%d spam, %.1f%%).",
		banner, v.Address, v.Chain, p.Total,
		p.Total-p.NFTs, p.SpamTokens, p.SpamTokenPct,
		p.NFTs, p.SpamNFTs, p.SpamNFTPct)
	if p.LocalListHits > 0 {
		fmt.Fprintf(b, " %d of the spam tokens were caught by the local blocklist only.", p.LocalListHits)
	}
}
