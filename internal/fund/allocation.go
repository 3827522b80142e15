package fund

import (
	"math"

	"github.com/Dev9710/bot-market/internal/model"
)

// Allocate converts a plan's position size into capital amounts. ExitAmounts
// are the capital sold at TP1, TP2 and TP3 and sum to Amount. A non-positive
// capital yields a zero allocation.
func Allocate(capital float64, plan model.TradePlan) model.Allocation {
	if capital <= 0 || math.IsNaN(capital) {
		return model.Allocation{SizePct: plan.PositionSize}
	}

	amount := round2(capital * plan.PositionSize / 100)
	a := model.Allocation{
		Capital: capital,
		SizePct: plan.PositionSize,
		Amount:  amount,
	}

	total := plan.ExitTotal()
	if total <= 0 {
		return a
	}
	a.ExitAmounts[0] = round2(amount * plan.TP1.ExitAmount / total)
	a.ExitAmounts[1] = round2(amount * plan.TP2.ExitAmount / total)
	// The last level takes the rounding remainder.
	a.ExitAmounts[2] = round2(amount - a.ExitAmounts[0] - a.ExitAmounts[1])
	return a
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
