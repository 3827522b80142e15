package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev9710/bot-market/internal/model"
)

func labels(items []model.BreakdownItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestComputeScore_StrongSolanaClamped(t *testing.T) {
	res := ComputeScore(exampleAlert())

	assert.Equal(t, 100, res.Score)
	require.Len(t, res.Breakdown, 7)

	points := []int{25, 20, 15, 15, 10, 10, 15}
	for i, p := range points {
		assert.Equal(t, p, res.Breakdown[i].Points, "item %d (%s)", i, res.Breakdown[i].Label)
	}
	assert.Equal(t, []string{
		"Network SOLANA",
		"Volume OPTIMAL (1M-5M)",
		"Liquidity <200K (optimal)",
		"ULTRA-FRESH (<5min)",
		"Score ULTRA_HIGH (≥95)",
		"Acceleration ≥6x",
		"MULTIPLE ALERTS (x12)",
	}, labels(res.Breakdown))

	assert.True(t, res.Breakdown[3].Highlight)
	assert.True(t, res.Breakdown[5].Highlight)
	assert.True(t, res.Breakdown[6].Highlight)
	assert.False(t, res.Breakdown[0].Highlight)

	assert.Equal(t, model.ActionStrongBuy, Recommend(res.Score).Action)
}

func TestComputeScore_UnknownNetwork(t *testing.T) {
	a := model.Alert{
		Network:            "unknown_chain",
		Volume24h:          50_000,
		Liquidity:          50_000,
		Score:              50,
		AgeHours:           10,
		VolumeAcceleration: 0.5,
		AlertCount:         1,
	}
	res := ComputeScore(a)

	assert.Equal(t, 10, res.Score)
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Network UNKNOWN_CHAIN", res.Breakdown[0].Label)
	assert.Equal(t, 10, res.Breakdown[0].Points)
}

func TestComputeScore_Networks(t *testing.T) {
	tests := []struct {
		name  string
		alert model.Alert
		want  int
	}{
		{
			name: "base mid-range",
			// 20 + 20 + 15 + 12 + 8 + 5 + 8
			alert: model.Alert{Network: "base", Volume24h: 300_000, Liquidity: 200_000, Score: 88, AgeHours: 0.25, VolumeAcceleration: 3, AlertCount: 3},
			want:  88,
		},
		{
			name: "eth deep pool",
			// 18 + 15 + 10 + 5 + 4 + 3
			alert: model.Alert{Network: "ETH", Volume24h: 600_000, Liquidity: 3_000_000, Score: 70, AgeHours: 2, VolumeAcceleration: 1},
			want:  55,
		},
		{
			name: "bsc uses generic volume bands",
			// 15 + 15 + 12 + 4 + 12
			alert: model.Alert{Network: "bsc", Volume24h: 150_000, Liquidity: 600_000, Score: 60, AgeHours: 7, AlertCount: 5},
			want:  58,
		},
		{
			name: "arbitrum uses generic liquidity bands",
			// 12 + 12
			alert: model.Alert{Network: "arbitrum", Volume24h: 90_000, Liquidity: 120_000, AgeHours: 100},
			want:  24,
		},
		{
			name: "solana deep pool scores nothing for liquidity",
			// 25 + 15 + 5
			alert: model.Alert{Network: "solana", Volume24h: 6_000_000, Liquidity: 600_000, AgeHours: 3},
			want:  45,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(tt.alert).Score)
		})
	}
}

func TestComputeScore_VolumeEdges(t *testing.T) {
	tests := []struct {
		network string
		volume  float64
		points  int
	}{
		{"base", 100_000, 20},
		{"base", 500_000, 20},
		{"base", 500_001, 15},
		{"base", 1_000_000, 15},
		{"base", 1_000_001, 0},
		{"solana", 5_000_000, 20},
		{"solana", 5_000_001, 15},
		{"solana", 999_999, 10},
		{"solana", 99_999, 0},
		{"eth", 199_999, 0},
		{"eth", 500_001, 15},
	}
	for _, tt := range tests {
		it, ok := scoreVolume(model.Alert{Network: tt.network, Volume24h: tt.volume})
		if tt.points == 0 {
			assert.False(t, ok, "%s %.0f", tt.network, tt.volume)
			continue
		}
		require.True(t, ok, "%s %.0f", tt.network, tt.volume)
		assert.Equal(t, tt.points, it.Points, "%s %.0f", tt.network, tt.volume)
	}
}

func TestComputeScore_LiquidityInvertedOnSolana(t *testing.T) {
	tests := []struct {
		network   string
		liquidity float64
		points    int
	}{
		{"solana", 0, 15},
		{"solana", 199_999, 15},
		{"solana", 200_000, 10},
		{"solana", 499_999, 10},
		{"solana", 500_000, 0},
		{"base", 99_999, 0},
		{"base", 100_000, 15},
		{"base", 500_000, 15},
		{"bsc", 2_000_000, 12},
		{"eth", 2_000_001, 10},
		{"arbitrum", 100_000, 12},
		{"other", 99_999, 0},
	}
	for _, tt := range tests {
		it, ok := scoreLiquidity(model.Alert{Network: tt.network, Liquidity: tt.liquidity})
		if tt.points == 0 {
			assert.False(t, ok, "%s %.0f", tt.network, tt.liquidity)
			continue
		}
		require.True(t, ok, "%s %.0f", tt.network, tt.liquidity)
		assert.Equal(t, tt.points, it.Points, "%s %.0f", tt.network, tt.liquidity)
	}
}

func TestComputeScore_AlertCountLabel(t *testing.T) {
	it, ok := scoreAlertCount(model.Alert{AlertCount: 6})
	require.True(t, ok)
	assert.Equal(t, "Multiple alerts (x6)", it.Label)
	assert.Equal(t, 12, it.Points)

	_, ok = scoreAlertCount(model.Alert{})
	assert.False(t, ok, "a missing count defaults to a single alert")
}

func TestComputeScore_InvalidInputsCountAsZero(t *testing.T) {
	a := model.Alert{
		Network:            "base",
		Volume24h:          -1,
		Liquidity:          math.NaN(),
		Score:              -20,
		AgeHours:           -3,
		VolumeAcceleration: math.Inf(-1),
		AlertCount:         -4,
	}
	res := ComputeScore(a)
	// Network 20 plus ultra-fresh 15: a negative age is treated as zero.
	assert.Equal(t, 35, res.Score)
}

func TestComputeScore_BoundedAndDeterministic(t *testing.T) {
	networks := []string{"solana", "base", "eth", "bsc", "arbitrum", "other", "", "Polygon"}
	volumes := []float64{0, 99_999, 150_000, 750_000, 2_000_000, 9_000_000}
	liquidity := []float64{0, 50_000, 150_000, 300_000, 900_000, 5_000_000}
	scores := []float64{0, 59, 75, 90, 100}
	ages := []float64{0, 0.1, 0.9, 5, 48}
	accels := []float64{0, 1, 5, 12}
	counts := []int{0, 2, 7, 30}

	for _, n := range networks {
		for _, v := range volumes {
			for _, l := range liquidity {
				for _, s := range scores {
					for _, age := range ages {
						for _, acc := range accels {
							for _, c := range counts {
								a := model.Alert{Network: n, Volume24h: v, Liquidity: l, Score: s, AgeHours: age, VolumeAcceleration: acc, AlertCount: c}
								first := ComputeScore(a)
								if first.Score < 0 || first.Score > 100 {
									t.Fatalf("score %d out of range for %+v", first.Score, a)
								}
								if second := ComputeScore(a); !assert.ObjectsAreEqual(first, second) {
									t.Fatalf("non-deterministic result for %+v", a)
								}
							}
						}
					}
				}
			}
		}
	}
}
