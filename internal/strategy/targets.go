package strategy

import (
	"fmt"
	"math"

	"github.com/Dev9710/bot-market/internal/calculator"
	"github.com/Dev9710/bot-market/internal/model"
)

const (
	lowLiquidity = 100_000

	baseStopLossPct  = -10.0
	tightStopLossPct = -7.0

	baseTrailPct  = -5.0
	wideTrailPct  = -7.0
	tightTrailPct = -3.0
)

// planSignals is the subset of an alert the multiplier rules look at.
type planSignals struct {
	network    model.Network
	score      float64
	liquidity  float64
	volume     float64
	ageMinutes float64
	accel      float64
	alertCount int
}

func newPlanSignals(a model.Alert, alertCount int) planSignals {
	return planSignals{
		network:    a.NetworkID(),
		score:      a.Score,
		liquidity:  a.Liquidity,
		volume:     a.Volume24h,
		ageMinutes: a.AgeMinutes(),
		accel:      a.VolumeAcceleration,
		alertCount: alertCount,
	}
}

// volLiqRatio is 24h volume as a percentage of liquidity; 0 without liquidity.
func (s planSignals) volLiqRatio() float64 {
	if s.liquidity <= 0 {
		return 0
	}
	return s.volume / s.liquidity * 100
}

type factorStep struct {
	when   func(planSignals) bool
	factor float64
	reason func(planSignals) string
}

// multiplierRule is a ladder of steps; the first matching step applies.
type multiplierRule struct {
	name  string
	steps []factorStep
}

func (r multiplierRule) apply(s planSignals) (factor float64, reason string, ok bool) {
	for _, st := range r.steps {
		if st.when(s) {
			return st.factor, st.reason(s), true
		}
	}
	return 1, "", false
}

func because(text string) func(planSignals) string {
	return func(planSignals) string { return text }
}

func isSolana(s planSignals) bool { return s.network == model.NetworkSolana }

// multiplierRules are folded left to right. Every factor is positive, so the
// running multiplier stays positive.
var multiplierRules = []multiplierRule{
	{
		name: "score",
		steps: []factorStep{
			{func(s planSignals) bool { return s.score >= 95 }, 1.3, because("Score ≥95: ×1.3")},
			{func(s planSignals) bool { return s.score >= 85 }, 1.2, because("Score ≥85: ×1.2")},
			{func(s planSignals) bool { return s.score >= 75 }, 1.1, because("Score ≥75: ×1.1")},
			{func(s planSignals) bool { return s.score < 60 }, 0.8, because("Score <60: ×0.8")},
		},
	},
	{
		name: "liquidity",
		steps: []factorStep{
			{func(s planSignals) bool { return isSolana(s) && s.liquidity >= 200_000 }, 1.15, because("Liq ≥200K: ×1.15")},
			{func(s planSignals) bool { return isSolana(s) && s.liquidity < lowLiquidity }, 0.9, because("Liq <100K: ×0.9 (risk)")},
			{func(s planSignals) bool { return !isSolana(s) && s.liquidity >= 500_000 }, 1.2, because("Liq ≥500K: ×1.2")},
			{func(s planSignals) bool { return !isSolana(s) && s.liquidity < lowLiquidity }, 0.85, because("Liq <100K: ×0.85 (risk)")},
		},
	},
	{
		name: "volume_liquidity_ratio",
		steps: []factorStep{
			{func(s planSignals) bool { return s.volLiqRatio() > 500 }, 1.25, because("Vol/Liq >500%: ×1.25")},
			{func(s planSignals) bool { return s.volLiqRatio() > 200 }, 1.1, because("Vol/Liq >200%: ×1.1")},
			{func(s planSignals) bool { return s.volLiqRatio() < 50 }, 0.9, because("Vol/Liq <50%: ×0.9")},
		},
	},
	{
		name: "acceleration",
		steps: []factorStep{
			{func(s planSignals) bool { return s.accel >= 6 }, 1.2, because("Accel ≥6x: ×1.2")},
			{func(s planSignals) bool { return s.accel >= 4 }, 1.1, because("Accel ≥4x: ×1.1")},
			{func(s planSignals) bool { return s.accel < 1 }, 0.95, because("Accel <1x: ×0.95")},
		},
	},
	{
		name: "freshness",
		steps: []factorStep{
			{func(s planSignals) bool { return s.ageMinutes < 5 }, 1.15, because("Fresh <5min: ×1.15")},
			{func(s planSignals) bool { return s.ageMinutes < 30 }, 1.05, because("Fresh <30min: ×1.05")},
			{func(s planSignals) bool { return s.ageMinutes > 360 }, 0.9, because("Age >6h: ×0.9")},
		},
	},
	{
		name: "alert_count",
		steps: []factorStep{
			{func(s planSignals) bool { return s.alertCount >= 10 }, 1.4, alertsReason(1.4)},
			{func(s planSignals) bool { return s.alertCount >= 5 }, 1.25, alertsReason(1.25)},
			{func(s planSignals) bool { return s.alertCount >= 2 }, 1.15, alertsReason(1.15)},
		},
	},
}

func alertsReason(factor float64) func(planSignals) string {
	return func(s planSignals) string {
		return fmt.Sprintf("x%d alerts: ×%g", s.alertCount, factor)
	}
}

// foldMultiplier applies every rule in order starting from 1.0.
func foldMultiplier(s planSignals) (float64, []string) {
	multiplier := 1.0
	var reasoning []string
	for _, r := range multiplierRules {
		if f, reason, ok := r.apply(s); ok {
			multiplier *= f
			reasoning = append(reasoning, reason)
		}
	}
	return multiplier, reasoning
}

type exitSplit struct{ tp1, tp2, tp3 float64 }

var (
	defaultSplit  = exitSplit{50, 30, 20}
	holdMoreSplit = exitSplit{30, 40, 30}
	fastExitSplit = exitSplit{70, 20, 10}
)

// PlanTargets turns an alert and the earlier alerts of the same token into
// take-profit levels, stops, an exit distribution and a position size.
func (e *Engine) PlanTargets(a model.Alert, previous model.History) model.TradePlan {
	a = a.Normalized()
	alertCount := len(previous) + 1
	s := newPlanSignals(a, alertCount)

	base := e.rules.baseTargets(s.network)
	multiplier, reasoning := foldMultiplier(s)

	tp1Pct := base.TP1 * multiplier
	tp2Pct := base.TP2 * multiplier
	tp3Pct := base.TP3 * multiplier

	trend := calculator.TrendOf(previous)

	stopPct := baseStopLossPct
	if s.liquidity < lowLiquidity || (len(previous) > 0 && trend == model.TrendDown) {
		stopPct = tightStopLossPct
		reasoning = append(reasoning, "Tight SL: -7% (risk detected)")
	}

	trail, trailNotes := trailStop(alertCount, multiplier, s.liquidity)
	reasoning = append(reasoning, trailNotes...)

	split, splitNote := exitDistribution(multiplier)
	if splitNote != "" {
		reasoning = append(reasoning, splitNote)
	}

	price := a.PriceAtAlert
	plan := model.TradePlan{
		Entry: price,
		TP1:   model.TakeProfit{Price: priceAt(price, tp1Pct), Percent: tp1Pct, ExitAmount: split.tp1},
		TP2:   model.TakeProfit{Price: priceAt(price, tp2Pct), Percent: tp2Pct, ExitAmount: split.tp2},
		TP3:   model.TakeProfit{Price: priceAt(price, tp3Pct), Percent: tp3Pct, ExitAmount: split.tp3},
		StopLoss: model.StopLoss{
			Price:   priceAt(price, stopPct),
			Percent: stopPct,
		},
		TrailStop:    trail,
		Multiplier:   round2(multiplier),
		PositionSize: PositionSize(a, alertCount, multiplier),
		Reasoning:    reasoning,
		RiskLevel:    riskLevel(multiplier, s),
		Trend:        trend,
		Signals:      BullishSignals(a, alertCount),
	}

	if r, ok := calculator.DetectRetracement(withCurrent(previous, a)); ok {
		plan.Retracement = &r
	}
	return plan
}

// trailStop starts at -5% after TP1. The wide-trail check runs first and the
// low-liquidity check second, so low liquidity overrides the percent.
func trailStop(alertCount int, multiplier, liquidity float64) (model.TrailStop, []string) {
	var notes []string
	trail := model.TrailStop{Percent: baseTrailPct, Activation: model.AfterTP1}
	if alertCount >= 5 && multiplier > 3 {
		trail = model.TrailStop{Percent: wideTrailPct, Activation: model.AfterTP2}
		notes = append(notes, "Wide trail: -7% after TP2 (very bullish)")
	}
	if liquidity < lowLiquidity {
		trail.Percent = tightTrailPct
		notes = append(notes, "Tight trail: -3% (low liquidity)")
	}
	return trail, notes
}

func exitDistribution(multiplier float64) (exitSplit, string) {
	switch {
	case multiplier >= 4:
		return holdMoreSplit, "Distribution: 30/40/30 (hold more)"
	case multiplier < 1:
		return fastExitSplit, "Distribution: 70/20/10 (fast exit)"
	default:
		return defaultSplit, ""
	}
}

// PositionSize returns the suggested share of capital in percent, within [3, 10].
func PositionSize(a model.Alert, alertCount int, multiplier float64) float64 {
	size := 5.0
	switch {
	case a.Score >= 95:
		size = 10
	case a.Score >= 85:
		size = 7
	case a.Score < 70:
		size = 3
	}

	switch {
	case alertCount >= 5:
		size = math.Min(10, size*1.5)
	case alertCount >= 2:
		size = math.Min(10, size*1.2)
	}

	if multiplier < 1 {
		size *= 0.7
	}

	size = math.Round(size*10) / 10
	return math.Min(10, math.Max(3, size))
}

// riskLevel checks LOW before HIGH; LOW wins when both hold.
func riskLevel(multiplier float64, s planSignals) model.RiskLevel {
	switch {
	case multiplier >= 3 && s.score >= 85:
		return model.RiskLow
	case multiplier < 1 || s.liquidity < lowLiquidity:
		return model.RiskHigh
	default:
		return model.RiskMedium
	}
}

func priceAt(entry, pct float64) float64 {
	return entry * (1 + pct/100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// withCurrent appends the current alert to its history when it carries a timestamp.
func withCurrent(previous model.History, a model.Alert) model.History {
	if a.CreatedAt.IsZero() {
		return previous
	}
	out := make(model.History, 0, len(previous)+1)
	out = append(out, previous...)
	return append(out, a)
}
