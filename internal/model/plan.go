package model

// Trend is the direction of price across a token's alerts.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// RiskLevel grades a trade plan.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// TrailActivation names the milestone after which the trailing stop is armed.
type TrailActivation string

const (
	AfterTP1 TrailActivation = "after_tp1"
	AfterTP2 TrailActivation = "after_tp2"
)

// TakeProfit is one exit level. ExitAmount is the percent of the position sold there.
type TakeProfit struct {
	Price      float64 `json:"price"`
	Percent    float64 `json:"percent"`
	ExitAmount float64 `json:"exit_amount"`
}

type StopLoss struct {
	Price   float64 `json:"price"`
	Percent float64 `json:"percent"`
}

type TrailStop struct {
	Percent    float64         `json:"percent"`
	Activation TrailActivation `json:"activation"`
}

// Retracement is a drop of more than 10% followed by a return near the start price.
type Retracement struct {
	RetracePct   float64 `json:"retrace_pct"`
	ExpectedGain float64 `json:"expected_gain"`
	Confidence   string  `json:"confidence"`
}

// TradePlan is the advisory output of the target planner.
type TradePlan struct {
	Entry        float64      `json:"entry"`
	TP1          TakeProfit   `json:"tp1"`
	TP2          TakeProfit   `json:"tp2"`
	TP3          TakeProfit   `json:"tp3"`
	StopLoss     StopLoss     `json:"stop_loss"`
	TrailStop    TrailStop    `json:"trail_stop"`
	Multiplier   float64      `json:"multiplier"`
	PositionSize float64      `json:"position_size"`
	Reasoning    []string     `json:"reasoning"`
	RiskLevel    RiskLevel    `json:"risk_level"`
	Trend        Trend        `json:"trend"`
	Retracement  *Retracement `json:"retracement,omitempty"`
	Signals      []string     `json:"signals,omitempty"`
}

// ExitTotal sums the exit distribution across the three levels.
func (p TradePlan) ExitTotal() float64 {
	return p.TP1.ExitAmount + p.TP2.ExitAmount + p.TP3.ExitAmount
}

// Allocation expresses a plan's position size in capital units.
type Allocation struct {
	Capital     float64    `json:"capital"`
	SizePct     float64    `json:"size_pct"`
	Amount      float64    `json:"amount"`
	ExitAmounts [3]float64 `json:"exit_amounts"`
}
