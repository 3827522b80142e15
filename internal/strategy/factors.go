package strategy

import (
	"fmt"
	"strings"

	"github.com/Dev9710/bot-market/internal/model"
)

// volumeBands rewards each network's historically best 24h volume window (max 20).
var volumeBands = map[model.Network][]Band{
	model.NetworkSolana: {
		{Match: between(1_000_000, 5_000_000), Points: 20, Label: "Volume OPTIMAL (1M-5M)"},
		{Match: above(5_000_000), Points: 15, Label: "Volume >5M"},
		{Match: atLeast(100_000), Points: 10, Label: "Volume 100K-1M"},
	},
	model.NetworkBase: {
		{Match: between(100_000, 500_000), Points: 20, Label: "Volume OPTIMAL (100K-500K)"},
		{Match: aboveUpTo(500_000, 1_000_000), Points: 15, Label: "Volume 500K-1M"},
	},
	model.NetworkETH: {
		{Match: between(200_000, 500_000), Points: 20, Label: "Volume OPTIMAL (200K-500K)"},
		{Match: above(500_000), Points: 15, Label: "Volume >500K"},
	},
	model.NetworkOther: {
		{Match: atLeast(100_000), Points: 15, Label: "Volume ≥100K"},
	},
}

// Solana winners sit on thin pools, so its liquidity ladder is inverted.
var solanaLiquidityBands = []Band{
	{Match: below(200_000), Points: 15, Label: "Liquidity <200K (optimal)"},
	{Match: from(200_000, 500_000), Points: 10, Label: "Liquidity 200K-500K"},
}

var midLiquidityBands = []Band{
	{Match: between(100_000, 500_000), Points: 15, Label: "Liquidity 100K-500K (optimal)"},
	{Match: aboveUpTo(500_000, 2_000_000), Points: 12, Label: "Liquidity 500K-2M"},
	{Match: above(2_000_000), Points: 10, Label: "Liquidity >2M"},
}

// liquidityBands scores pool depth (max 15).
var liquidityBands = map[model.Network][]Band{
	model.NetworkSolana: solanaLiquidityBands,
	model.NetworkBase:   midLiquidityBands,
	model.NetworkBSC:    midLiquidityBands,
	model.NetworkETH:    midLiquidityBands,
	model.NetworkOther: {
		{Match: atLeast(100_000), Points: 12, Label: "Liquidity ≥100K"},
	},
}

// freshnessBands are keyed on age in minutes (max 15).
var freshnessBands = []Band{
	{Match: below(5), Points: 15, Label: "ULTRA-FRESH (<5min)", Highlight: true},
	{Match: below(30), Points: 12, Label: "FRESH (<30min)"},
	{Match: below(60), Points: 8, Label: "Recent (<1h)"},
	{Match: below(360), Points: 5, Label: "Active (<6h)"},
}

// baseScoreBands tier the scanner's own quality score (max 10).
var baseScoreBands = []Band{
	{Match: atLeast(95), Points: 10, Label: "Score ULTRA_HIGH (≥95)"},
	{Match: atLeast(85), Points: 8, Label: "Score HIGH (≥85)"},
	{Match: atLeast(75), Points: 6, Label: "Score MEDIUM (≥75)"},
	{Match: atLeast(60), Points: 4, Label: "Score acceptable (≥60)"},
}

// accelerationBands use the 1h/6h volume ratio (max 10).
var accelerationBands = []Band{
	{Match: atLeast(6), Points: 10, Label: "Acceleration ≥6x", Highlight: true},
	{Match: atLeast(5), Points: 8, Label: "Acceleration ≥5x"},
	{Match: atLeast(2), Points: 5, Label: "Acceleration ≥2x"},
	{Match: atLeast(1), Points: 3, Label: "Acceleration normal"},
}

// alertCountBands are a bonus for tokens that keep firing (max 15). Labels take the count.
var alertCountBands = []Band{
	{Match: atLeast(10), Points: 15, Label: "MULTIPLE ALERTS (x%d)", Highlight: true},
	{Match: atLeast(5), Points: 12, Label: "Multiple alerts (x%d)", Highlight: true},
	{Match: atLeast(2), Points: 8, Label: "Multiple alerts (x%d)"},
}

func bandsFor(table map[model.Network][]Band, n model.Network) []Band {
	if bands, ok := table[n]; ok {
		return bands
	}
	return table[model.NetworkOther]
}

func item(b Band) model.BreakdownItem {
	return model.BreakdownItem{Label: b.Label, Points: b.Points, Highlight: b.Highlight}
}

// scoreNetwork always emits a line, even for unrecognized networks.
func (e *Engine) scoreNetwork(a model.Alert) model.BreakdownItem {
	name := strings.ToUpper(strings.TrimSpace(a.Network))
	return model.BreakdownItem{
		Label:  fmt.Sprintf("Network %s", name),
		Points: e.rules.networkPoints(a.NetworkID()),
	}
}

func scoreVolume(a model.Alert) (model.BreakdownItem, bool) {
	b, ok := evaluate(a.Volume24h, bandsFor(volumeBands, a.NetworkID()))
	return item(b), ok
}

func scoreLiquidity(a model.Alert) (model.BreakdownItem, bool) {
	b, ok := evaluate(a.Liquidity, bandsFor(liquidityBands, a.NetworkID()))
	return item(b), ok
}

func scoreFreshness(a model.Alert) (model.BreakdownItem, bool) {
	b, ok := evaluate(a.AgeMinutes(), freshnessBands)
	return item(b), ok
}

func scoreBaseScore(a model.Alert) (model.BreakdownItem, bool) {
	b, ok := evaluate(a.Score, baseScoreBands)
	return item(b), ok
}

func scoreAcceleration(a model.Alert) (model.BreakdownItem, bool) {
	b, ok := evaluate(a.VolumeAcceleration, accelerationBands)
	return item(b), ok
}

func scoreAlertCount(a model.Alert) (model.BreakdownItem, bool) {
	n := a.Count()
	b, ok := evaluate(float64(n), alertCountBands)
	if !ok {
		return model.BreakdownItem{}, false
	}
	it := item(b)
	it.Label = fmt.Sprintf(b.Label, n)
	return it, true
}
