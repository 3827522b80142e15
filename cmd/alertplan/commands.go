package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dev9710/bot-market/internal/calculator"
	"github.com/Dev9710/bot-market/internal/collector"
	"github.com/Dev9710/bot-market/internal/fund"
	"github.com/Dev9710/bot-market/internal/model"
	"github.com/Dev9710/bot-market/internal/notifier"
	"github.com/Dev9710/bot-market/internal/scheduler"
	"github.com/Dev9710/bot-market/internal/store"
	"github.com/Dev9710/bot-market/internal/strategy"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readAlert decodes a single alert from --file, or stdin when --file is "-".
func (a *app) readAlert() (model.Alert, error) {
	if a.file == "" || a.file == "-" {
		return collector.DecodeAlert(os.Stdin)
	}
	f, err := os.Open(a.file)
	if err != nil {
		return model.Alert{}, errors.Wrap(err, "open alert")
	}
	defer f.Close()
	return collector.DecodeAlert(f)
}

func scoreCmd(_ context.Context, a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Score one alert and print the recommendation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alert, err := a.readAlert()
			if err != nil {
				return err
			}
			res := a.engine.ComputeScore(alert)
			rec := strategy.Recommend(res.Score)
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					Score          model.ScoreResult    `json:"score"`
					Recommendation model.Recommendation `json:"recommendation"`
				}{res, rec})
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatScore(res, rec))
			return nil
		},
	}
}

func zoneCmd(_ context.Context, a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "zone",
		Short: "Check one alert against its network's optimal zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alert, err := a.readAlert()
			if err != nil {
				return err
			}
			var zone *model.ZoneResult
			if z, ok := a.engine.ClassifyZone(alert); ok {
				zone = &z
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), zone)
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatZone(zone))
			return nil
		},
	}
}

func planCmd(ctx context.Context, a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Evaluate the latest alert of a token against its history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, release, err := a.source()
			if err != nil {
				return err
			}
			defer release()

			snap, err := collector.NewCollector(src).Collect(ctx, token)
			if err != nil {
				return err
			}
			report := a.engine.Evaluate(snap)
			alloc := fund.Allocate(a.cfg.Capital, report.Plan)
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					model.Report
					Allocation model.Allocation `json:"allocation"`
				}{report, alloc})
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatReport(report, alloc))
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token address or name")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func historyCmd(ctx context.Context, a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List a token's alerts with trend and retracement, or every token in a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, release, err := a.source()
			if err != nil {
				return err
			}
			defer release()
			out := cmd.OutOrStdout()

			if token == "" {
				st, ok := src.(*store.SQLiteStore)
				if !ok {
					return errors.New("--token is required unless reading a database")
				}
				tokens, err := st.Tokens(ctx)
				if err != nil {
					return err
				}
				if a.asJSON {
					return printJSON(out, tokens)
				}
				for _, t := range tokens {
					fmt.Fprintf(out, "%-48s %5d  %s\n", t.Token, t.Alerts, t.Last.Format("2006-01-02 15:04"))
				}
				return nil
			}

			alerts, err := src.Alerts(ctx, token)
			if err != nil {
				return err
			}
			h := model.History(alerts)
			trend := calculator.TrendOf(h)
			retrace, found := calculator.DetectRetracement(h)
			log.WithFields(log.Fields{"token": token, "alerts": len(h)}).Debug("history loaded")

			if a.asJSON {
				var r *model.Retracement
				if found {
					r = &retrace
				}
				return printJSON(out, struct {
					Alerts      model.History      `json:"alerts"`
					Trend       model.Trend        `json:"trend"`
					Retracement *model.Retracement `json:"retracement,omitempty"`
				}{h.Sorted(), trend, r})
			}
			fmt.Fprint(out, notifier.FormatHistory(h))
			fmt.Fprintf(out, "trend: %s\n", trend)
			if found {
				fmt.Fprintf(out, "retracement: %.1f%% (expected gain +%.1f%%, %s)\n", retrace.RetracePct, retrace.ExpectedGain, retrace.Confidence)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token address or name")
	return cmd
}

func watchCmd(ctx context.Context, a *app) *cobra.Command {
	var (
		tokens []string
		every  string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate tokens on a schedule and print a report for each new alert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, release, err := a.source()
			if err != nil {
				return err
			}
			defer release()

			sched := scheduler.NewScheduler(ctx, collector.NewCollector(src), a.engine, a.cfg.Capital, cmd.OutOrStdout())
			if err := sched.Register(every, tokens); err != nil {
				return err
			}
			sched.RunNow()
			sched.Start()
			defer sched.Stop()

			log.WithFields(log.Fields{"tokens": len(tokens), "schedule": every}).Info("watching; press Ctrl+C to stop")
			<-ctx.Done()
			log.Info("shutdown signal received, stopping")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tokens, "token", nil, "token to watch (repeatable)")
	cmd.Flags().StringVar(&every, "every", "@every 1m", "cron schedule (seconds field first)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
