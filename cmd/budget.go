package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/pipeline"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget progress against net earnings",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	cfg, l, _, err := loadState()
	if err != nil {
		return err
	}

	records := l.Records()
	if len(records) == 0 {
		fmt.Println("\n  No records yet. Run `wolter log` to get started.")
		return nil
	}

	now := time.Now()
	policy := cfg.Policy()
	ytd := pipeline.YearToDateGross(records, now)

	gross := 0.0
	for _, r := range records {
		gross += r.Amount
	}
	net, owed := policy.Compute(gross, ytd)

	plannedHours := float64(cfg.Plan.Weeks * cfg.Plan.HoursPerWeek)
	workedHours := float64(len(records))
	remainingHours := plannedHours - workedHours
	if remainingHours < 0 {
		remainingHours = 0
	}

	// Project the rest of the plan at the historical mean per slot,
	// taxed the same way the earned part was.
	meanPerSlot := gross / workedHours
	projectedGross := gross + remainingHours*meanPerSlot
	projectedNet, _ := policy.Compute(projectedGross, ytd)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()
	fmt.Printf("  Hours: %s of %s planned (%s left)\n",
		cli.FormatHours(workedHours), cli.FormatHours(plannedHours), cli.FormatHours(remainingHours))
	fmt.Printf("  Gross %s, tax %s, net %s\n",
		cli.FormatMoney(gross), cli.FormatMoney(owed), cli.FormatMoney(net))
	fmt.Printf("  Projected at plan end: %s gross, %s net\n",
		cli.FormatMoney(projectedGross), cli.FormatMoney(projectedNet))
	fmt.Printf("  Net in CZK: %s\n", cli.FormatCZK(net*cfg.Currency.CZKPerUSD))
	fmt.Println()

	const labelW, barW = 12, 30
	fmt.Println(cli.BudgetBar("Total", net, cfg.Budget.Total(), labelW, barW))
	fmt.Println(cli.BudgetBar("Tech", allocated(net, cfg.Budget.Tech, cfg.Budget.Total()), cfg.Budget.Tech, labelW, barW))
	fmt.Println(cli.BudgetBar("Essentials", allocated(net, cfg.Budget.Essentials, cfg.Budget.Total()), cfg.Budget.Essentials, labelW, barW))
	fmt.Println(cli.BudgetBar("Buffer", allocated(net, cfg.Budget.Buffer, cfg.Budget.Total()), cfg.Budget.Buffer, labelW, barW))

	if key, avg, ok := pipeline.BestSlot(pipeline.SlotAverages(records)); ok {
		fmt.Printf("\n  Best slot so far: %s %s:00 at %s/session\n",
			cli.FormatDayOfWeek(key.Weekday), key.Hour, cli.FormatMoney(avg))
	}
	fmt.Println()
	return nil
}

// allocated splits net earnings across categories in proportion to
// their share of the total budget.
func allocated(net, category, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return net * category / total
}
