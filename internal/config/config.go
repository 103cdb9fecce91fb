// Package config loads and persists wolter's TOML configuration: where the
// record log lives plus every policy constant the core consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/simonSlamka/wolter/internal/model"
	"github.com/simonSlamka/wolter/internal/planner"
	"github.com/simonSlamka/wolter/internal/tax"
)

// Config holds all wolter configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Plan     PlanConfig     `toml:"plan"`
	Budget   BudgetConfig   `toml:"budget"`
	Tax      TaxConfig      `toml:"tax"`
	Currency CurrencyConfig `toml:"currency"`
	Schedule ScheduleConfig `toml:"schedule"`
	Activity ActivityConfig `toml:"activity"`
}

// GeneralConfig holds file locations.
type GeneralConfig struct {
	LogPath string `toml:"log_path,omitempty"`
}

// PlanConfig describes the overall work plan the budget report tracks.
type PlanConfig struct {
	Weeks        int `toml:"weeks"`
	HoursPerWeek int `toml:"hours_per_week"`
}

// BudgetConfig holds the category amounts progress bars are drawn against.
type BudgetConfig struct {
	Tech       float64 `toml:"tech"`
	Essentials float64 `toml:"essentials"`
	Buffer     float64 `toml:"buffer"`
}

// Total is the combined budget target across categories.
func (b BudgetConfig) Total() float64 {
	return b.Tech + b.Essentials + b.Buffer
}

// TaxConfig mirrors tax.Policy in TOML form.
type TaxConfig struct {
	Rate                  float64 `toml:"rate"`
	HalfCycleThreshold    float64 `toml:"half_cycle_threshold"`
	AnnualExemptThreshold float64 `toml:"annual_exempt_threshold"`
}

// CurrencyConfig holds the local-currency conversion rate for display.
type CurrencyConfig struct {
	CZKPerUSD float64 `toml:"czk_per_usd"`
}

// ScheduleConfig configures the planner's peak windows. Hours are inclusive
// ranges; days are English weekday names.
type ScheduleConfig struct {
	PeakDays     []string `toml:"peak_days"`
	PeakHours    []int    `toml:"peak_hours"`
	OffPeakHours []int    `toml:"offpeak_hours"`
}

// ActivityConfig points at the exported activity data files.
type ActivityConfig struct {
	WakaTimePath string `toml:"wakatime_path,omitempty"`
	LastFMPath   string `toml:"lastfm_path,omitempty"`
}

// DefaultConfig returns the constants carried by the original scripts.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogPath: filepath.Join(DataDir(), "log.csv"),
		},
		Plan: PlanConfig{
			Weeks:        13,
			HoursPerWeek: 80,
		},
		Budget: BudgetConfig{
			Tech:       1500,
			Essentials: 910,
			Buffer:     500,
		},
		Tax: TaxConfig{
			Rate:                  0.46,
			HalfCycleThreshold:    542,
			AnnualExemptThreshold: 7200,
		},
		Currency: CurrencyConfig{
			CZKPerUSD: 23.0,
		},
		Schedule: ScheduleConfig{
			PeakDays:     []string{"Friday", "Saturday"},
			PeakHours:    []int{17, 23},
			OffPeakHours: []int{9, 16},
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wolter")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wolter")
}

// DataDir returns the XDG-compliant data directory the record log and
// caches default to.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wolter")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wolter")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// The result is validated either way.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate rejects configurations the core cannot run on.
func (c Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if c.Plan.Weeks <= 0 || c.Plan.HoursPerWeek <= 0 {
		return fmt.Errorf("%w: plan requires positive weeks and hours/week", model.ErrConfiguration)
	}
	if c.Currency.CZKPerUSD <= 0 {
		return fmt.Errorf("%w: currency rate must be positive", model.ErrConfiguration)
	}
	if _, err := c.Windows(); err != nil {
		return err
	}
	return nil
}

// Policy converts the TOML tax section into a tax.Policy.
func (c Config) Policy() tax.Policy {
	return tax.Policy{
		Rate:                  c.Tax.Rate,
		HalfCycleThreshold:    c.Tax.HalfCycleThreshold,
		AnnualExemptThreshold: c.Tax.AnnualExemptThreshold,
	}
}

// Windows converts the TOML schedule section into planner windows.
func (c Config) Windows() (planner.Windows, error) {
	w := planner.DefaultWindows()

	if len(c.Schedule.PeakDays) > 0 {
		w.PeakDays = w.PeakDays[:0]
		for _, name := range c.Schedule.PeakDays {
			day, ok := parseWeekday(name)
			if !ok {
				return w, fmt.Errorf("%w: unknown weekday %q", model.ErrConfiguration, name)
			}
			w.PeakDays = append(w.PeakDays, day)
		}
	}

	var err error
	if w.PeakHours, err = hourRange(c.Schedule.PeakHours, w.PeakHours); err != nil {
		return w, err
	}
	if w.OffPeakHours, err = hourRange(c.Schedule.OffPeakHours, w.OffPeakHours); err != nil {
		return w, err
	}
	return w, nil
}

func hourRange(hours []int, fallback [2]int) ([2]int, error) {
	if len(hours) == 0 {
		return fallback, nil
	}
	if len(hours) != 2 {
		return fallback, fmt.Errorf("%w: hour range needs exactly [lo, hi]", model.ErrConfiguration)
	}
	lo, hi := hours[0], hours[1]
	if lo < 0 || hi > 23 || lo > hi {
		return fallback, fmt.Errorf("%w: hour range [%d, %d] out of order or outside 0-23", model.ErrConfiguration, lo, hi)
	}
	return [2]int{lo, hi}, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return 0, false
}
