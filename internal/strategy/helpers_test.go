package strategy

import (
	"time"

	"github.com/Dev9710/bot-market/internal/model"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// exampleAlert is a strong solana alert that maxes out most factors.
func exampleAlert() model.Alert {
	return model.Alert{
		Token:              "PEPE2",
		Network:            "solana",
		Volume24h:          2_000_000,
		Liquidity:          150_000,
		Score:              96,
		AgeHours:           0.05,
		VolumeAcceleration: 7,
		AlertCount:         12,
		PriceAtAlert:       1.0,
	}
}

// flatHistory returns n hourly alerts at the same price.
func flatHistory(n int, price float64) model.History {
	return pricedHistory(repeat(price, n)...)
}

func pricedHistory(prices ...float64) model.History {
	h := make(model.History, len(prices))
	for i, p := range prices {
		h[i] = model.Alert{Network: "solana", PriceAtAlert: p, CreatedAt: t0.Add(time.Duration(i) * time.Hour)}
	}
	return h
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
