package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/Dev9710/bot-market/internal/collector"
	"github.com/Dev9710/bot-market/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

var _ collector.Source = (*SQLiteStore)(nil)

// SQLiteStore reads scanner alerts from a SQLite database. The table layout is
// a subset of the scanner's own alerts table, so a scanner database can be
// opened directly.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// TokenSummary is one token and the number of alerts recorded for it.
type TokenSummary struct {
	Token  string
	Alerts int
	Last   time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// The scanner keeps writing while alerts are read.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	log.WithField("path", dbPath).Info("sqlite alert store opened")
	return s, nil
}

// NewFromDB wraps an already opened handle. No migrations are run.
func NewFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS alerts (
		id                           INTEGER PRIMARY KEY AUTOINCREMENT,
		token_name                   TEXT,
		token_address                TEXT,
		network                      TEXT,
		price_at_alert               REAL,
		score                        REAL,
		volume_24h                   REAL,
		liquidity                    REAL,
		age_hours                    REAL,
		volume_acceleration_1h_vs_6h REAL,
		created_at                   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_token ON alerts(token_address)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at)`,
}

func (s *SQLiteStore) migrate() error {
	return s.execAll(migrations)
}

func (s *SQLiteStore) execAll(stmts []string) error {
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrapf(err, "exec %q", stmt[:min(40, len(stmt))])
		}
	}
	return nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// InsertAlert records one alert under its token address.
func (s *SQLiteStore) InsertAlert(ctx context.Context, a model.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created any
	if !a.CreatedAt.IsZero() {
		created = a.CreatedAt.UTC().Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO alerts
		(token_address, network, price_at_alert, score, volume_24h, liquidity,
		 age_hours, volume_acceleration_1h_vs_6h, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		a.Token, a.Network, a.PriceAtAlert, a.Score, a.Volume24h, a.Liquidity,
		a.AgeHours, a.VolumeAcceleration, created,
	)
	return errors.Wrap(err, "insert alert")
}

// Alerts returns the alerts of token, oldest first. Rows are keyed by token
// address, or by name when the row has no address. An empty token returns every alert. NULL columns read as zero.
func (s *SQLiteStore) Alerts(ctx context.Context, token string) ([]model.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT
			token_name, token_address, network, price_at_alert, score,
			volume_24h, liquidity, age_hours, volume_acceleration_1h_vs_6h, created_at
		FROM alerts
		WHERE ? = '' OR COALESCE(NULLIF(token_address, ''), token_name) = ? COLLATE NOCASE
		ORDER BY created_at ASC, id ASC`,
		token, token,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query alerts")
	}
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		var (
			name, address, network, created sql.NullString
			price, score, volume, liquidity sql.NullFloat64
			age, accel                      sql.NullFloat64
		)
		if err := rows.Scan(&name, &address, &network, &price, &score,
			&volume, &liquidity, &age, &accel, &created); err != nil {
			return nil, errors.Wrap(err, "scan alert")
		}

		a := model.Alert{
			Token:              address.String,
			Network:            network.String,
			PriceAtAlert:       price.Float64,
			Score:              score.Float64,
			Volume24h:          volume.Float64,
			Liquidity:          liquidity.Float64,
			AgeHours:           age.Float64,
			VolumeAcceleration: accel.Float64,
		}
		if a.Token == "" {
			a.Token = name.String
		}
		if t, err := collector.ParseTime(created.String); err != nil {
			log.WithField("token", a.Token).Warnf("skipping created_at: %v", err)
		} else {
			a.CreatedAt = t
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "iterate alerts")
}

// Tokens lists every token with its alert count, most recently alerted first.
func (s *SQLiteStore) Tokens(ctx context.Context) ([]TokenSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT
			COALESCE(NULLIF(token_address, ''), token_name) AS token,
			COUNT(*),
			MAX(created_at)
		FROM alerts
		GROUP BY token
		ORDER BY MAX(created_at) DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "query tokens")
	}
	defer rows.Close()

	var out []TokenSummary
	for rows.Next() {
		var (
			token, last sql.NullString
			count       int
		)
		if err := rows.Scan(&token, &count, &last); err != nil {
			return nil, errors.Wrap(err, "scan token")
		}
		if !token.Valid {
			continue
		}
		ts := TokenSummary{Token: token.String, Alerts: count}
		ts.Last, _ = collector.ParseTime(last.String)
		out = append(out, ts)
	}
	return out, errors.Wrap(rows.Err(), "iterate tokens")
}

func (s *SQLiteStore) Close() error {
	log.Info("closing sqlite alert store")
	return s.db.Close()
}
