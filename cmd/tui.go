package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/forecast"
	"github.com/simonSlamka/wolter/internal/model"
	"github.com/simonSlamka/wolter/internal/pipeline"
	"github.com/simonSlamka/wolter/internal/tax"
	"github.com/simonSlamka/wolter/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, l, dailies, err := loadState()
	if err != nil {
		return err
	}

	now := time.Now()
	current := cycle.Of(now)
	records := l.Records()
	ytd := pipeline.YearToDateGross(records, now)
	summary := pipeline.BuildCycleSummary(dailies, current, cfg.Policy(), ytd)

	data := tui.Data{
		Summary:  summary,
		Dailies:  cycleDailies(dailies, current),
		NetSoFar: netSoFar(records, cfg.Policy(), ytd),
		Budget:   cfg.Budget,
	}

	fc, err := forecast.PredictCycle(dailies, current.Next())
	switch {
	case err == nil:
		data.Forecast = &fc
	case errors.Is(err, model.ErrInsufficientData):
		// Dashboard still renders; the forecast card shows a hint.
	default:
		return err
	}

	return tui.Run(data)
}

// cycleDailies narrows the full daily series to the given cycle for the
// dashboard's earnings chart.
func cycleDailies(dailies []model.DailyAggregate, c cycle.Cycle) []model.DailyAggregate {
	out := make([]model.DailyAggregate, 0, 16)
	for _, d := range dailies {
		if c.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

func netSoFar(records []model.Record, policy tax.Policy, ytd float64) float64 {
	gross := 0.0
	for _, r := range records {
		gross += r.Amount
	}
	net, _ := policy.Compute(gross, ytd)
	return net
}
