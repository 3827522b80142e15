package model

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Network identifies the chain an alert was raised on.
type Network string

const (
	NetworkSolana   Network = "solana"
	NetworkBase     Network = "base"
	NetworkETH      Network = "eth"
	NetworkBSC      Network = "bsc"
	NetworkArbitrum Network = "arbitrum"
	NetworkOther    Network = "other"
)

// KnownNetworks lists the networks that carry their own rule rows.
var KnownNetworks = []Network{NetworkSolana, NetworkBase, NetworkETH, NetworkBSC, NetworkArbitrum}

// ParseNetwork is case-insensitive. Anything unrecognized maps to NetworkOther.
func ParseNetwork(s string) Network {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range KnownNetworks {
		if n == k {
			return n
		}
	}
	return NetworkOther
}

// Known reports whether n is one of the five recognized networks.
func (n Network) Known() bool {
	return n != NetworkOther && ParseNetwork(string(n)) == n
}

// Alert is one observed trading alert as produced by the scanner.
// Absent numeric fields decode to zero.
type Alert struct {
	Token              string    `json:"token,omitempty"`
	Network            string    `json:"network"`
	Volume24h          float64   `json:"volume_24h"`
	Liquidity          float64   `json:"liquidity"`
	Score              float64   `json:"score"`
	AgeHours           float64   `json:"age_hours"`
	VolumeAcceleration float64   `json:"volume_acceleration_1h_vs_6h"`
	AlertCount         int       `json:"alert_count"`
	PriceAtAlert       float64   `json:"price_at_alert"`
	CreatedAt          time.Time `json:"created_at"`
}

// NetworkID returns the parsed network of the alert.
func (a Alert) NetworkID() Network {
	return ParseNetwork(a.Network)
}

// AgeMinutes converts the alert age to minutes.
func (a Alert) AgeMinutes() float64 {
	return a.AgeHours * 60
}

// Count returns the alert count, defaulting to 1.
func (a Alert) Count() int {
	if a.AlertCount < 1 {
		return 1
	}
	return a.AlertCount
}

// Normalized returns a copy with negative numeric inputs reset to zero.
func (a Alert) Normalized() Alert {
	a.Volume24h = nonNegative(a.Volume24h)
	a.Liquidity = nonNegative(a.Liquidity)
	a.Score = nonNegative(a.Score)
	a.AgeHours = nonNegative(a.AgeHours)
	a.VolumeAcceleration = nonNegative(a.VolumeAcceleration)
	a.PriceAtAlert = nonNegative(a.PriceAtAlert)
	if a.AlertCount < 0 {
		a.AlertCount = 0
	}
	return a
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// History is a set of alerts for a single token.
type History []Alert

// Sorted returns a copy ordered by CreatedAt ascending. The receiver is left untouched.
func (h History) Sorted() History {
	out := make(History, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Snapshot is the newest alert of a token together with the ones before it.
type Snapshot struct {
	Current  Alert
	Previous History
}
