package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/pipeline"
	"github.com/simonSlamka/wolter/internal/planner"
)

var flagPlanTarget float64

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Propose work slots for the rest of the cycle",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Float64VarP(&flagPlanTarget, "target", "t", 0, "Gross target for the cycle (default: monthly budget)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	cfg, l, dailies, err := loadState()
	if err != nil {
		return err
	}

	records := l.Records()
	avgs := pipeline.SlotAverages(records)
	if len(avgs) == 0 {
		fmt.Println("\n  No slot history yet. Log a few sessions first, then plan.")
		return nil
	}

	windows, err := cfg.Windows()
	if err != nil {
		return err
	}

	now := time.Now()
	current := cycle.Of(now)

	target := flagPlanTarget
	if target <= 0 {
		target = cfg.Budget.Total()
	}

	ytd := pipeline.YearToDateGross(records, now)
	earned := pipeline.BuildCycleSummary(dailies, current, cfg.Policy(), ytd).Gross
	from := now.AddDate(0, 0, 1)

	plan := planner.Build(avgs, current, target, earned, from, windows)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PLAN — cycle %s", current)))
	fmt.Println()
	fmt.Printf("  Target %s, earned %s so far\n\n", cli.FormatMoney(target), cli.FormatMoney(earned))

	if len(plan.Assigned) == 0 {
		if plan.Shortfall == 0 {
			fmt.Println("  Target already met. Nothing to schedule.")
		} else {
			fmt.Println("  No free slots left in this cycle.")
		}
	} else {
		rows := make([][]string, 0, len(plan.Assigned))
		for _, a := range plan.Assigned {
			rows = append(rows, []string{
				a.Date.Format("Mon Jan 2"),
				a.Hour + ":00",
				cli.FormatMoney(a.Expected),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Date", "Slot", "Expected"},
			Rows:    rows,
		}))
		fmt.Printf("\n  %d slots, %s expected\n", len(plan.Assigned), cli.FormatMoney(plan.Expected()))
	}

	if plan.Shortfall > 0 {
		fmt.Println(cli.WarnStyle.Render(fmt.Sprintf(
			"  ⚠ %s short of target even with every slot filled", cli.FormatMoney(plan.Shortfall))))
	}
	fmt.Println()
	return nil
}
