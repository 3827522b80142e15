package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Dev9710/bot-market/internal/model"
)

// record is the scanner's export row. Exports name the token either by a
// single token field or by name and address.
type record struct {
	Token              string  `json:"token"`
	TokenName          string  `json:"token_name"`
	TokenAddress       string  `json:"token_address"`
	Network            string  `json:"network"`
	Volume24h          float64 `json:"volume_24h"`
	Liquidity          float64 `json:"liquidity"`
	Score              float64 `json:"score"`
	AgeHours           float64 `json:"age_hours"`
	VolumeAcceleration float64 `json:"volume_acceleration_1h_vs_6h"`
	AlertCount         int     `json:"alert_count"`
	PriceAtAlert       float64 `json:"price_at_alert"`
	CreatedAt          string  `json:"created_at"`
}

// export is the envelope written by the scanner's JSON export.
type export struct {
	ExportedAt  string   `json:"exported_at"`
	TotalAlerts int      `json:"total_alerts"`
	Alerts      []record `json:"alerts"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 and the SQLite text timestamp forms. Naive times are UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

// key identifies the row's token: the token field, else the address, else the
// name. Names are not unique across networks.
func (r record) key() string {
	for _, k := range []string{r.Token, r.TokenAddress, r.TokenName} {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}

func (r record) matches(token string) bool {
	return matchToken(r.key(), token)
}

func (r record) alert() model.Alert {
	a := model.Alert{
		Token:              r.key(),
		Network:            r.Network,
		Volume24h:          r.Volume24h,
		Liquidity:          r.Liquidity,
		Score:              r.Score,
		AgeHours:           r.AgeHours,
		VolumeAcceleration: r.VolumeAcceleration,
		AlertCount:         r.AlertCount,
		PriceAtAlert:       r.PriceAtAlert,
	}
	if t, err := ParseTime(r.CreatedAt); err != nil {
		log.WithField("token", a.Token).Warnf("skipping created_at: %v", err)
	} else {
		a.CreatedAt = t
	}
	return a
}

// decodeRecords reads either a bare array of rows or an export envelope.
func decodeRecords(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read alerts")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var rows []record
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrap(err, "decode alert array")
		}
		return rows, nil
	}
	var env export
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decode alert export")
	}
	return env.Alerts, nil
}

// DecodeAlert reads a single alert object.
func DecodeAlert(r io.Reader) (model.Alert, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return model.Alert{}, errors.Wrap(err, "decode alert")
	}
	return rec.alert(), nil
}

// JSONSource reads alerts from a scanner JSON export on every call.
type JSONSource struct {
	Path string
}

// NewJSONSource creates a source over the export file at path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{Path: path}
}

func (s *JSONSource) Name() string { return "json" }

func (s *JSONSource) Alerts(ctx context.Context, token string) ([]model.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "open alerts export")
	}
	defer f.Close()

	rows, err := decodeRecords(f)
	if err != nil {
		return nil, errors.Wrap(err, s.Path)
	}

	var out []model.Alert
	for _, r := range rows {
		if r.matches(token) {
			out = append(out, r.alert())
		}
	}
	log.WithFields(log.Fields{"path": s.Path, "token": token, "rows": len(rows), "matched": len(out)}).Debug("read alerts export")
	return out, nil
}
