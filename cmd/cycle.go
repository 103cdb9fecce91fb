package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/pipeline"
)

var flagAllCycles bool

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Current pay-cycle summary",
	RunE:  runCycle,
}

func init() {
	cycleCmd.Flags().BoolVarP(&flagAllCycles, "all", "a", false, "Show every recorded cycle")
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(_ *cobra.Command, _ []string) error {
	cfg, l, dailies, err := loadState()
	if err != nil {
		return err
	}

	records := l.Records()
	if len(records) == 0 {
		fmt.Println("\n  No records yet. Run `wolter log` to get started.")
		return nil
	}

	now := time.Now()
	ytd := pipeline.YearToDateGross(records, now)

	cycles := []cycle.Cycle{cycle.Of(now)}
	if flagAllCycles {
		cycles = pipeline.CyclesOf(records)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PAY CYCLES"))
	fmt.Println()

	rows := make([][]string, 0, len(cycles))
	for _, c := range cycles {
		s := pipeline.BuildCycleSummary(dailies, c, cfg.Policy(), ytd)
		meanDay, meanSlot := "—", "—"
		if s.MeanPerDay != nil {
			meanDay = cli.FormatMoney(*s.MeanPerDay)
		}
		if s.MeanPerSlot != nil {
			meanSlot = cli.FormatMoney(*s.MeanPerSlot)
		}
		rows = append(rows, []string{
			s.Cycle.String(),
			cli.FormatMoney(s.Gross),
			cli.FormatMoney(s.TaxOwed),
			cli.FormatMoney(s.Net),
			fmt.Sprintf("%d", s.DaysWorked),
			meanDay,
			meanSlot,
			s.Cycle.Payout().Format("Jan 2"),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Cycle", "Gross", "Tax", "Net", "Days", "Mean/day", "Mean/slot", "Payout"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Year-to-date gross: %s", cli.FormatMoney(ytd))
	if ytd <= cfg.Tax.AnnualExemptThreshold {
		fmt.Printf("  (below the %s annual exemption — no tax yet)", cli.FormatMoney(cfg.Tax.AnnualExemptThreshold))
	}
	fmt.Println()
	fmt.Println()
	return nil
}
