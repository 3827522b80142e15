package notifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Dev9710/bot-market/internal/calculator"
	"github.com/Dev9710/bot-market/internal/model"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders a magnitude with a K or M suffix.
func FormatNumber(num float64, decimals int) string {
	switch {
	case num >= 1_000_000:
		return fmt.Sprintf("%.*fM", decimals, num/1_000_000)
	case num >= 1_000:
		return fmt.Sprintf("%.*fK", decimals, num/1_000)
	default:
		return fmt.Sprintf("%.*f", decimals, num)
	}
}

// FormatPrice renders a token price in dollars. Cheaper tokens get more decimals.
func FormatPrice(price float64) string {
	decimals := 8
	if price >= 1 {
		decimals = 4
	} else if price >= 0.01 {
		decimals = 6
	}
	return "$" + printer.Sprintf("%.*f", decimals, price)
}

// FormatAmount renders a capital amount with thousands separators and at most two decimals.
func FormatAmount(amount float64) string {
	return humanize.CommafWithDigits(math.Round(amount*100)/100, 2)
}

// FormatScore formats a score breakdown and its recommendation.
func FormatScore(res model.ScoreResult, rec model.Recommendation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 Score: %d/100\n", res.Score))
	for _, it := range res.Breakdown {
		mark := "  "
		if it.Highlight {
			mark = "⭐"
		}
		b.WriteString(fmt.Sprintf("%s %-32s +%d\n", mark, it.Label, it.Points))
	}
	b.WriteString(fmt.Sprintf("\n💡 %s | %.0f%% of capital | confidence %s\n", rec.Action, rec.PositionPct, rec.Confidence))
	b.WriteString(fmt.Sprintf("   %s\n", rec.Note))
	return b.String()
}

// FormatZone formats an optimal-zone verdict. A nil zone means the network has none.
func FormatZone(z *model.ZoneResult) string {
	if z == nil {
		return "🗺  No optimal zone for this network\n"
	}
	var b strings.Builder
	status := "outside"
	if z.IsOptimal {
		status = "INSIDE"
	}
	b.WriteString(fmt.Sprintf("🗺  %s: %s (%d/%d)\n", z.Name, status, z.PassedCount, z.TotalCount))
	for _, c := range z.Criteria {
		mark := "❌"
		if c.Passed {
			mark = "✅"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, c.Name))
	}
	b.WriteString(fmt.Sprintf("  history: %s | win rate %s | avg gain %s\n", z.Performance, z.WinRate, z.AvgGain))
	return b.String()
}

// FormatPlan formats a trade plan.
func FormatPlan(p model.TradePlan) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 Entry: %s | multiplier ×%.2f | risk %s | trend %s\n",
		FormatPrice(p.Entry), p.Multiplier, p.RiskLevel, p.Trend))

	for i, tp := range []model.TakeProfit{p.TP1, p.TP2, p.TP3} {
		b.WriteString(fmt.Sprintf("  TP%d: %s (%+.1f%%) sell %.0f%%\n", i+1, FormatPrice(tp.Price), tp.Percent, tp.ExitAmount))
	}
	b.WriteString(fmt.Sprintf("  SL:  %s (%.0f%%)\n", FormatPrice(p.StopLoss.Price), p.StopLoss.Percent))
	b.WriteString(fmt.Sprintf("  Trail: %.0f%% %s\n", p.TrailStop.Percent, p.TrailStop.Activation))
	b.WriteString(fmt.Sprintf("  Position: %.1f%% of capital\n", p.PositionSize))

	if p.Retracement != nil {
		b.WriteString(fmt.Sprintf("  🔁 Retracement %.1f%% then recovery, expected gain +%.1f%% (%s)\n",
			p.Retracement.RetracePct, p.Retracement.ExpectedGain, p.Retracement.Confidence))
	}
	if len(p.Signals) > 0 {
		b.WriteString(fmt.Sprintf("  🚀 %s\n", strings.Join(p.Signals, " | ")))
	}
	if len(p.Reasoning) > 0 {
		b.WriteString("  Reasoning:\n")
		for _, r := range p.Reasoning {
			b.WriteString(fmt.Sprintf("   - %s\n", r))
		}
	}
	return b.String()
}

// FormatAllocation formats the capital amounts of a plan.
func FormatAllocation(a model.Allocation) string {
	if a.Capital <= 0 {
		return ""
	}
	return fmt.Sprintf("💰 %s of %s (%.1f%%) → TP1 %s | TP2 %s | TP3 %s\n",
		FormatAmount(a.Amount), FormatAmount(a.Capital), a.SizePct,
		FormatAmount(a.ExitAmounts[0]), FormatAmount(a.ExitAmounts[1]), FormatAmount(a.ExitAmounts[2]))
}

// FormatReport formats every verdict for one alert.
func FormatReport(r model.Report, alloc model.Allocation) string {
	var b strings.Builder
	token := r.Alert.Token
	if token == "" {
		token = "alert"
	}
	b.WriteString(fmt.Sprintf("📊 %s on %s | vol %s | liq %s | age %.1fh\n\n",
		token, strings.ToUpper(string(r.Alert.NetworkID())),
		FormatNumber(r.Alert.Volume24h, 2), FormatNumber(r.Alert.Liquidity, 2), r.Alert.AgeHours))
	b.WriteString(FormatScore(r.Score, r.Recommendation))
	b.WriteString("\n")
	b.WriteString(FormatZone(r.Zone))
	b.WriteString("\n")
	b.WriteString(FormatPlan(r.Plan))
	if s := FormatAllocation(alloc); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
	}
	return b.String()
}

// FormatHistory lists a token's alerts oldest first with the price change from the first one.
func FormatHistory(h model.History) string {
	if len(h) == 0 {
		return "no alerts\n"
	}
	sorted := h.Sorted()
	first := sorted[0].PriceAtAlert

	var b strings.Builder
	for _, a := range sorted {
		change := "   n/a"
		if pct, ok := calculator.PercentChange(first, a.PriceAtAlert); ok {
			change = fmt.Sprintf("%+6.1f%%", pct)
		}
		b.WriteString(fmt.Sprintf("%s  %-14s %s  score %3.0f  liq %s\n",
			a.CreatedAt.Format("2006-01-02 15:04"), FormatPrice(a.PriceAtAlert), change, a.Score, FormatNumber(a.Liquidity, 1)))
	}
	return b.String()
}
