package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportBody = `{
  "exported_at": "2025-11-21T08:00:00",
  "total_alerts": 3,
  "alerts": [
    {"id": 1, "token_name": "Moon", "token_address": "So1aMoon", "network": "solana",
     "price_at_alert": 0.0012, "score": 88, "volume_24h": 1500000, "liquidity": 120000,
     "age_hours": 0.1, "created_at": "2025-11-20 14:00:00",
     "volume_acceleration_1h_vs_6h": 6.5},
    {"id": 2, "token_name": "Moon", "token_address": "So1aMoon", "network": "solana",
     "price_at_alert": 0.0015, "score": 91, "volume_24h": null, "liquidity": null,
     "age_hours": 1.1, "created_at": "2025-11-20T15:00:00.250000"},
    {"id": 3, "token_name": "Other", "token_address": "0xabc", "network": "base",
     "price_at_alert": 2, "score": 70, "created_at": "2025-11-20T16:00:00Z"}
  ]
}`

func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alerts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestJSONSource_Export(t *testing.T) {
	src := NewJSONSource(writeExport(t, exportBody))

	got, err := src.Alerts(context.Background(), "so1amoon")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "So1aMoon", got[0].Token)
	assert.Equal(t, 1_500_000.0, got[0].Volume24h)
	assert.Equal(t, 6.5, got[0].VolumeAcceleration)
	assert.Equal(t, time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC), got[0].CreatedAt)

	// null numerics decode to zero.
	assert.Zero(t, got[1].Volume24h)
	assert.Zero(t, got[1].Liquidity)
	assert.Equal(t, 250*time.Millisecond, got[1].CreatedAt.Sub(time.Date(2025, 11, 20, 15, 0, 0, 0, time.UTC)))

	byAddress, err := src.Alerts(context.Background(), "0xABC")
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "base", byAddress[0].Network)

	all, err := src.Alerts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJSONSource_SameNameDifferentAddress(t *testing.T) {
	src := NewJSONSource(writeExport(t, `[
	  {"token_name": "PEPE", "token_address": "So1aPepe", "network": "solana"},
	  {"token_name": "PEPE", "token_address": "0xpepe", "network": "base"},
	  {"token_name": "PEPE", "network": "eth"}
	]`))

	got, err := src.Alerts(context.Background(), "0XPEPE")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "base", got[0].Network)

	got, err = src.Alerts(context.Background(), "pepe")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "eth", got[0].Network)
	assert.Equal(t, "PEPE", got[0].Token)
}

func TestJSONSource_BareArray(t *testing.T) {
	src := NewJSONSource(writeExport(t, `[{"token": "T1", "network": "eth", "score": 80}, {"token": "T2"}]`))
	got, err := src.Alerts(context.Background(), "T1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 80.0, got[0].Score)
	assert.True(t, got[0].CreatedAt.IsZero())
}

func TestJSONSource_Errors(t *testing.T) {
	_, err := NewJSONSource(filepath.Join(t.TempDir(), "missing.json")).Alerts(context.Background(), "")
	assert.Error(t, err)

	_, err = NewJSONSource(writeExport(t, `{"alerts": [`)).Alerts(context.Background(), "")
	assert.Error(t, err)

	got, err := NewJSONSource(writeExport(t, "  ")).Alerts(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeAlert(t *testing.T) {
	a, err := DecodeAlert(strings.NewReader(`{"network": "SOLANA", "volume_24h": 2000000, "liquidity": 150000,
		"score": 96, "age_hours": 0.05, "volume_acceleration_1h_vs_6h": 7, "alert_count": 12}`))
	require.NoError(t, err)
	assert.Equal(t, "SOLANA", a.Network)
	assert.Equal(t, 12, a.AlertCount)
	assert.Equal(t, 7.0, a.VolumeAcceleration)

	_, err = DecodeAlert(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"2025-11-20", time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)},
		{"2025-11-20 14:32:10", time.Date(2025, 11, 20, 14, 32, 10, 0, time.UTC)},
		{"2025-11-20T14:32:10+02:00", time.Date(2025, 11, 20, 12, 32, 10, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}

	_, err := ParseTime("yesterday")
	assert.Error(t, err)
}
