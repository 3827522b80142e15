package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("ALERTS_JSON", "")
	cmd := newRootCmd(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const alertJSON = `{"network": "solana", "volume_24h": 2000000, "liquidity": 150000, "score": 96,
	"age_hours": 0.05, "volume_acceleration_1h_vs_6h": 7, "alert_count": 12}`

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "--file", writeTemp(t, "alert.json", alertJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 100/100")
	assert.Contains(t, out, "STRONG_BUY")
}

func TestScoreCommand_JSON(t *testing.T) {
	out, err := run(t, "score", "--json", "--file", writeTemp(t, "alert.json", alertJSON))
	require.NoError(t, err)

	var got struct {
		Score struct {
			Score int `json:"score"`
		} `json:"score"`
		Recommendation struct {
			Action string `json:"action"`
		} `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 100, got.Score.Score)
	assert.Equal(t, "STRONG_BUY", got.Recommendation.Action)
}

func TestZoneCommand_UnknownNetwork(t *testing.T) {
	out, err := run(t, "zone", "--file", writeTemp(t, "alert.json", `{"network": "unknown_chain"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "No optimal zone")
}

func TestPlanCommand(t *testing.T) {
	export := writeTemp(t, "export.json", `[
		{"token": "MOON", "network": "base", "price_at_alert": 1.0, "liquidity": 300000, "volume_24h": 300000, "score": 80, "created_at": "2025-11-20 14:00:00"},
		{"token": "MOON", "network": "base", "price_at_alert": 0.9, "liquidity": 300000, "volume_24h": 300000, "score": 86, "created_at": "2025-11-20 15:00:00"}
	]`)
	out, err := run(t, "plan", "--file", export, "--token", "moon", "--capital", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "MOON on BASE")
	assert.Contains(t, out, "of 2,000")
}

func TestPlanCommand_Errors(t *testing.T) {
	_, err := run(t, "plan", "--token", "MOON")
	assert.ErrorContains(t, err, "no alert source")

	_, err = run(t, "plan", "--file", writeTemp(t, "export.json", `[]`), "--token", "MOON")
	assert.ErrorContains(t, err, "no alerts")
}

func TestHistoryCommand(t *testing.T) {
	export := writeTemp(t, "export.json", `[
		{"token": "MOON", "price_at_alert": 1.0, "created_at": "2025-11-20 14:00:00"},
		{"token": "MOON", "price_at_alert": 0.8, "created_at": "2025-11-20 15:00:00"},
		{"token": "MOON", "price_at_alert": 0.95, "created_at": "2025-11-20 16:00:00"}
	]`)
	out, err := run(t, "history", "--file", export, "--token", "MOON")
	require.NoError(t, err)
	assert.Contains(t, out, "trend: stable")
	assert.Contains(t, out, "retracement: -20.0%")
}
