package collector

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Dev9710/bot-market/internal/model"
)

// ErrNoAlerts is returned when a token has no recorded alerts.
var ErrNoAlerts = errors.New("no alerts for token")

// MemorySource serves a fixed slice of alerts, for development and testing.
type MemorySource struct {
	Items []model.Alert
	Err   error
}

func (m *MemorySource) Name() string { return "memory" }

func (m *MemorySource) Alerts(ctx context.Context, token string) ([]model.Alert, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Alert
	for _, a := range m.Items {
		if matchToken(a.Token, token) {
			out = append(out, a)
		}
	}
	return out, nil
}

func matchToken(have, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(strings.TrimSpace(have), want)
}

// Collector turns the alerts of one token into an evaluation snapshot.
type Collector struct {
	Source Source
}

// NewCollector creates a new Collector.
func NewCollector(source Source) *Collector {
	return &Collector{Source: source}
}

// Collect loads every alert for token. The newest becomes the current alert and
// the rest its history. When the current alert carries no count, it is set to
// the number of alerts seen.
func (c *Collector) Collect(ctx context.Context, token string) (model.Snapshot, error) {
	alerts, err := c.Source.Alerts(ctx, token)
	if err != nil {
		return model.Snapshot{}, errors.Wrapf(err, "%s: load alerts for %q", c.Source.Name(), token)
	}
	if len(alerts) == 0 {
		return model.Snapshot{}, errors.Wrapf(ErrNoAlerts, "%s: %q", c.Source.Name(), token)
	}

	sorted := model.History(alerts).Sorted()
	last := len(sorted) - 1
	current := sorted[last]
	previous := sorted[:last:last]

	if current.AlertCount < 1 {
		current.AlertCount = len(previous) + 1
	}

	log.WithFields(log.Fields{
		"source":   c.Source.Name(),
		"token":    token,
		"network":  current.Network,
		"previous": len(previous),
	}).Debug("collected snapshot")

	return model.Snapshot{Current: current, Previous: previous}, nil
}
