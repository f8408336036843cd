package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/engine"
)

var categoryColors = map[engine.Category]*color.Color{
	engine.CategorySpam:       color.New(color.FgRed, color.Bold),
	engine.CategoryHoneypot:   color.New(color.FgRed, color.Bold),
	engine.CategoryHighRisk:   color.New(color.FgRed),
	engine.CategoryMediumRisk: color.New(color.FgYellow),
	engine.CategoryLowRisk:    color.New(color.FgGreen),
	engine.CategorySafe:       color.New(color.FgGreen, color.Bold),
	engine.CategoryError:      color.New(color.FgMagenta),
}

// Print renders a verdict for the terminal: a colored banner, an evidence
// table, and the recommendation.
func Print(w io.Writer, v *engine.Verdict) {
	c, ok := categoryColors[v.Category]
	if !ok {
		c = color.New(color.FgWhite)
	}

	fmt.Fprintln(w)
	c.Fprintf(w, "  %s\n", v.Category)
	fmt.Fprintf(w, "  %s on %s (%s)\n\n", v.Address, v.Chain, v.Intent)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetBorder(false)
	table.SetColumnSeparator(" ")

	for _, row := range evidenceRows(v) {
		table.Append(row)
	}
	table.Render()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", v.Recommendation)
	for _, note := range v.Evidence.Notes {
		fmt.Fprintf(w, "  note: %s\n", note)
	}
	fmt.Fprintln(w)
}

func evidenceRows(v *engine.Verdict) [][]string {
	var rows [][]string
	add := func(k, val string) {
		if val != "" {
			rows = append(rows, []string{k, val})
		}
	}

	ev := v.Evidence
	add("Token", strings.TrimSpace(ev.TokenName+" "+ev.TokenSymbol))
	add("Spam list", ev.SpamListKind)
	if ev.SpamListScore > 0 {
		add("List score", fmt.Sprintf("%d", ev.SpamListScore))
	}
	add("Honeypot reason", ev.HoneypotReason)
	if ev.Risk != "" {
		add("Risk level", ev.Risk)
		add("Buy tax", fmt.Sprintf("%.1f%%", ev.BuyTax))
		add("Sell tax", fmt.Sprintf("%.1f%%", ev.SellTax))
		add("Transfer tax", fmt.Sprintf("%.1f%%", ev.TransferTax))
		add("Verified source", fmt.Sprintf("%t", ev.ContractVerified))
	}
	if ev.HolderCount > 0 {
		add("Holders", fmt.Sprintf("%d", ev.HolderCount))
	}
	if len(ev.Flags) > 0 {
		add("Flags", strings.Join(ev.Flags, ", "))
	}

	if p := ev.Portfolio; p != nil {
		add("Holdings", fmt.Sprintf("%d", p.Total))
		add("Tokens", fmt.Sprintf("%d safe / %d spam (%.1f%% spam)", p.SafeTokens, p.SpamTokens, p.SpamTokenPct))
		add("NFTs", fmt.Sprintf("%d safe / %d spam (%.1f%% spam)", p.SafeNFTs, p.SpamNFTs, p.SpamNFTPct))
		if p.LocalListHits > 0 {
			add("Local list hits", fmt.Sprintf("%d", p.LocalListHits))
		}
	}
	return rows
}
