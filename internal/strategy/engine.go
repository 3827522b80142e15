package strategy

import "github.com/Dev9710/bot-market/internal/model"

const maxScore = 100

// Tiers defines the 5-level recommendation mapping, walked top-down.
var Tiers = []struct {
	MinScore       int
	Recommendation model.Recommendation
}{
	{85, model.Recommendation{Action: model.ActionStrongBuy, PositionPct: 10, Confidence: "95%+", Note: "10% of capital (max)"}},
	{70, model.Recommendation{Action: model.ActionBuy, PositionPct: 7, Confidence: "85%+", Note: "7% of capital"}},
	{55, model.Recommendation{Action: model.ActionConsider, PositionPct: 5, Confidence: "70%+", Note: "5% of capital"}},
	{40, model.Recommendation{Action: model.ActionWatch, PositionPct: 3, Confidence: "50%+", Note: "3% of capital (cautious)"}},
}

// DefaultRecommendation is the lowest tier for scores < 40.
var DefaultRecommendation = model.Recommendation{Action: model.ActionSkip, PositionPct: 0, Confidence: "<50%", Note: "0% - do not trade"}

// Recommend maps a final score to a recommendation.
func Recommend(score int) model.Recommendation {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Recommendation
		}
	}
	return DefaultRecommendation
}

// Engine evaluates alerts against a fixed set of rule tables.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules *Rules
}

// NewEngine creates an Engine. A nil rules value selects DefaultRules.
func NewEngine(rules *Rules) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Rules exposes the tables the engine was built with.
func (e *Engine) Rules() *Rules { return e.rules }

var defaultEngine = NewEngine(nil)

// ComputeScore scores an alert with the default rules.
func ComputeScore(a model.Alert) model.ScoreResult { return defaultEngine.ComputeScore(a) }

// ClassifyZone checks an alert against the default optimal zones.
func ClassifyZone(a model.Alert) (model.ZoneResult, bool) { return defaultEngine.ClassifyZone(a) }

// PlanTargets builds a trade plan with the default rules.
func PlanTargets(a model.Alert, previous model.History) model.TradePlan {
	return defaultEngine.PlanTargets(a, previous)
}

// ComputeScore sums seven independent factors and caps the total at 100.
// Breakdown order: network, volume, liquidity, freshness, base score,
// acceleration, alert count.
func (e *Engine) ComputeScore(a model.Alert) model.ScoreResult {
	a = a.Normalized()

	network := e.scoreNetwork(a)
	total := network.Points
	breakdown := []model.BreakdownItem{network}

	for _, factor := range []func(model.Alert) (model.BreakdownItem, bool){
		scoreVolume,
		scoreLiquidity,
		scoreFreshness,
		scoreBaseScore,
		scoreAcceleration,
		scoreAlertCount,
	} {
		if it, ok := factor(a); ok {
			total += it.Points
			breakdown = append(breakdown, it)
		}
	}

	if total > maxScore {
		total = maxScore
	}
	if total < 0 {
		total = 0
	}
	return model.ScoreResult{Score: total, Breakdown: breakdown}
}

// Evaluate computes every verdict for a snapshot. With a history, the alert
// count is len(Previous)+1 for the score as well as the plan.
func (e *Engine) Evaluate(snap model.Snapshot) model.Report {
	scored := snap.Current
	if len(snap.Previous) > 0 {
		scored.AlertCount = len(snap.Previous) + 1
	}
	score := e.ComputeScore(scored)
	report := model.Report{
		Alert:          snap.Current,
		Score:          score,
		Recommendation: Recommend(score.Score),
		Plan:           e.PlanTargets(snap.Current, snap.Previous),
	}
	if zone, ok := e.ClassifyZone(snap.Current); ok {
		report.Zone = &zone
	}
	return report
}
