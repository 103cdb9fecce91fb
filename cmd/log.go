package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/ledger"
	"github.com/simonSlamka/wolter/internal/model"
)

// stopSentinel ends the interactive input loop (case-insensitive).
const stopSentinel = "stop"

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Interactively append earnings records",
	Long:  "Read `<hour_slot>|<amount>` lines from stdin, one per confirmed work session. An empty line or \"stop\" ends the session; the log is rewritten once at the end.",
	RunE:  runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := openLog(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Logging for %s (cycle %s). Enter <hour>|<amount>, empty line or %q to finish.\n",
		time.Now().Format("2006-01-02"), cycle.Of(time.Now()), stopSentinel)

	scanner := bufio.NewScanner(os.Stdin)
	appended := 0
	var sessionTotal float64

	for {
		fmt.Print("  > ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.EqualFold(line, stopSentinel) {
			break
		}

		rec, err := ledger.ParseEntry(line, time.Now())
		if err == nil {
			err = l.Append(rec)
		}
		if err != nil {
			// A bad entry is discarded and reported; the session goes on.
			if errors.Is(err, model.ErrValidation) {
				fmt.Printf("  %s\n", cli.WarnStyle.Render(err.Error()))
				continue
			}
			return err
		}

		appended++
		sessionTotal += rec.Amount
		fmt.Printf("  logged %s at hour %s\n", cli.FormatMoney(rec.Amount), rec.Hour)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if err := l.Persist(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %d records appended (%s this session), %d total.\n",
		appended, cli.FormatMoney(sessionTotal), len(l.Records()))
	return nil
}
