package collector

import (
	"context"

	"github.com/Dev9710/bot-market/internal/model"
)

// Source defines the interface for loading the alerts raised for a token.
// An empty token returns every alert the source holds.
type Source interface {
	Alerts(ctx context.Context, token string) ([]model.Alert, error)
	Name() string
}
