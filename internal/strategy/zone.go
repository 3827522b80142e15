package strategy

import "github.com/Dev9710/bot-market/internal/model"

// Criterion names, in the order they are reported.
const (
	CriterionVolume       = "volume"
	CriterionLiquidity    = "liquidity"
	CriterionScore        = "score"
	CriterionFreshness    = "freshness"
	CriterionAcceleration = "acceleration"
)

// ClassifyZone checks the alert against its network's optimal zone.
// ok is false for networks without a zone; there is no generic fallback.
func (e *Engine) ClassifyZone(a model.Alert) (model.ZoneResult, bool) {
	network := a.NetworkID()
	if !network.Known() {
		return model.ZoneResult{}, false
	}
	zone, ok := e.rules.Zones[network]
	if !ok {
		return model.ZoneResult{}, false
	}
	a = a.Normalized()

	criteria := []model.Criterion{
		{Name: CriterionVolume, Passed: zone.Volume.Contains(a.Volume24h)},
		{Name: CriterionLiquidity, Passed: zone.Liquidity.Contains(a.Liquidity)},
		{Name: CriterionScore, Passed: a.Score >= zone.MinScore},
		{Name: CriterionFreshness, Passed: a.AgeMinutes() < zone.MaxAgeMinutes},
		{Name: CriterionAcceleration, Passed: a.VolumeAcceleration >= zone.MinAcceleration},
	}

	passed := 0
	for _, c := range criteria {
		if c.Passed {
			passed++
		}
	}

	return model.ZoneResult{
		Network:     network,
		Name:        zone.Name,
		Criteria:    criteria,
		PassedCount: passed,
		TotalCount:  len(criteria),
		IsOptimal:   passed == len(criteria),
		Performance: zone.Performance,
		WinRate:     zone.WinRate,
		AvgGain:     zone.AvgGain,
	}, true
}
