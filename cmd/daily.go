package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cli"
)

var flagDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily earnings table",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDays, "days", "n", 30, "Days to show")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	_, l, dailies, err := loadState()
	if err != nil {
		return err
	}
	if len(l.Records()) == 0 {
		fmt.Println("\n  No records yet.")
		return nil
	}

	shown := dailies
	if flagDays > 0 && len(shown) > flagDays {
		shown = shown[len(shown)-flagDays:]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY EARNINGS  Last %dd", len(shown))))
	fmt.Println()

	rows := make([][]string, 0, len(shown))
	for i := len(shown) - 1; i >= 0; i-- {
		d := shown[i]
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Date.Weekday()),
			cli.FormatMoney(d.Total),
			fmt.Sprintf("%d", d.HourSlots),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Earned", "Slots"},
		Rows:    rows,
	}))

	vals := make([]float64, len(shown))
	for i, d := range shown {
		vals[i] = d.Total
	}
	fmt.Printf("\n  %s\n\n", cli.RenderSparkline(vals))
	return nil
}
