package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-run configuration",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if config.Exists() {
		loaded, err := config.Load()
		if err == nil {
			cfg = loaded
		}
	}

	logPath := cfg.General.LogPath
	wakaPath := cfg.Activity.WakaTimePath
	lastfmPath := cfg.Activity.LastFMPath
	tech := formatAmount(cfg.Budget.Tech)
	essentials := formatAmount(cfg.Budget.Essentials)
	buffer := formatAmount(cfg.Budget.Buffer)
	czk := formatAmount(cfg.Currency.CZKPerUSD)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Record log").
				Description("CSV file your earnings are appended to").
				Value(&logPath),
			huh.NewInput().
				Title("WakaTime export").
				Description("Path to wakatime.json, blank to skip").
				Value(&wakaPath),
			huh.NewInput().
				Title("Last.fm export").
				Description("Path to scrobbles CSV, blank to skip").
				Value(&lastfmPath),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tech budget").
				Validate(validateAmount).
				Value(&tech),
			huh.NewInput().
				Title("Essentials budget").
				Validate(validateAmount).
				Value(&essentials),
			huh.NewInput().
				Title("Buffer budget").
				Validate(validateAmount).
				Value(&buffer),
			huh.NewInput().
				Title("CZK per USD").
				Validate(validateAmount).
				Value(&czk),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Println("Setup aborted, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.LogPath = strings.TrimSpace(logPath)
	cfg.Activity.WakaTimePath = strings.TrimSpace(wakaPath)
	cfg.Activity.LastFMPath = strings.TrimSpace(lastfmPath)
	cfg.Budget.Tech, _ = strconv.ParseFloat(strings.TrimSpace(tech), 64)
	cfg.Budget.Essentials, _ = strconv.ParseFloat(strings.TrimSpace(essentials), 64)
	cfg.Budget.Buffer, _ = strconv.ParseFloat(strings.TrimSpace(buffer), 64)
	cfg.Currency.CZKPerUSD, _ = strconv.ParseFloat(strings.TrimSpace(czk), 64)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", config.ConfigPath())
	return nil
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validateAmount(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if f < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
