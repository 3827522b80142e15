package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dev9710/bot-market/internal/collector"
	"github.com/Dev9710/bot-market/internal/config"
	"github.com/Dev9710/bot-market/internal/store"
	"github.com/Dev9710/bot-market/internal/strategy"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgPath  string
	logLevel string
	file     string
	db       string
	rules    string
	capital  float64
	asJSON   bool

	cfg    *config.Config
	engine *strategy.Engine
}

func newRootCmd(ctx context.Context) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "alertplan",
		Short:         "Score scanner alerts and derive trade plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cfgDefault := "configs/config.yaml"
	if v := os.Getenv("ALERTPLAN_CONFIG"); v != "" {
		cfgDefault = v
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", cfgDefault, "config file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	pf.StringVar(&a.file, "file", "", "alert JSON file or scanner export")
	pf.StringVar(&a.db, "db", "", "scanner SQLite database")
	pf.StringVar(&a.rules, "rules", "", "rule table overrides (YAML)")
	pf.Float64Var(&a.capital, "capital", 0, "capital used to size positions")
	pf.BoolVar(&a.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(scoreCmd(ctx, a))
	root.AddCommand(zoneCmd(ctx, a))
	root.AddCommand(planCmd(ctx, a))
	root.AddCommand(historyCmd(ctx, a))
	root.AddCommand(watchCmd(ctx, a))
	return root
}

// setup loads config, applies flag overrides and builds the engine.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.rules != "" {
		cfg.RulesFile = a.rules
	}
	if a.capital > 0 {
		cfg.Capital = a.capital
	}
	if a.file != "" {
		cfg.Source.JSONPath, cfg.Source.SQLitePath = a.file, ""
	}
	if a.db != "" {
		cfg.Source.SQLitePath, cfg.Source.JSONPath = a.db, ""
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "config validation")
	}
	setupLogging(cfg.Log.Level)

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.engine = strategy.NewEngine(rules)
	log.WithFields(log.Fields{"config": a.cfgPath, "rules": cfg.RulesFile}).Debug("configured")
	return nil
}

func setupLogging(level string) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// source opens the configured alert source. The returned func releases it.
func (a *app) source() (collector.Source, func(), error) {
	switch {
	case a.cfg.Source.SQLitePath != "":
		s, err := store.NewSQLiteStore(a.cfg.Source.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case a.cfg.Source.JSONPath != "":
		return collector.NewJSONSource(a.cfg.Source.JSONPath), func() {}, nil
	default:
		return nil, nil, errors.New("no alert source: pass --file or --db")
	}
}
