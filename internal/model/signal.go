package model

// BreakdownItem is one contribution to an alert score.
// Highlight is a display hint only.
type BreakdownItem struct {
	Label     string `json:"label"`
	Points    int    `json:"points"`
	Highlight bool   `json:"highlight,omitempty"`
}

// ScoreResult is the 0-100 alert score and the factors that produced it.
type ScoreResult struct {
	Score     int             `json:"score"`
	Breakdown []BreakdownItem `json:"breakdown"`
}

// Action is the recommended handling of an alert.
type Action string

const (
	ActionStrongBuy Action = "STRONG_BUY"
	ActionBuy       Action = "BUY"
	ActionConsider  Action = "CONSIDER"
	ActionWatch     Action = "WATCH"
	ActionSkip      Action = "SKIP"
)

// Recommendation maps a score range to an action and a capital share.
type Recommendation struct {
	Action      Action  `json:"action"`
	PositionPct float64 `json:"position_pct"`
	Confidence  string  `json:"confidence"`
	Note        string  `json:"note"`
}

// Report bundles every verdict computed for one snapshot.
type Report struct {
	Alert          Alert          `json:"alert"`
	Score          ScoreResult    `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	Zone           *ZoneResult    `json:"zone,omitempty"`
	Plan           TradePlan      `json:"plan"`
}
