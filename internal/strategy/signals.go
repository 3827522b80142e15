package strategy

import (
	"fmt"

	"github.com/Dev9710/bot-market/internal/model"
)

// BullishSignals lists the momentum hints worth surfacing next to a plan.
func BullishSignals(a model.Alert, alertCount int) []string {
	var signals []string
	if alertCount >= 2 {
		signals = append(signals, fmt.Sprintf("Multiple alerts (x%d)", alertCount))
	}
	if a.Score >= 85 {
		signals = append(signals, "Score high/stable")
	}
	if a.AgeMinutes() < 15 {
		signals = append(signals, "New alert <15min")
	}
	if a.VolumeAcceleration > 5 {
		signals = append(signals, "Acceleration >5x")
	}
	return signals
}
