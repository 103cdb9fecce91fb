// Package tui renders the wolter dashboard: current cycle accounting,
// daily earnings, budget progress, and the cycle forecast in one screen.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/config"
	"github.com/simonSlamka/wolter/internal/forecast"
	"github.com/simonSlamka/wolter/internal/model"
	"github.com/simonSlamka/wolter/internal/pipeline"
	"github.com/simonSlamka/wolter/internal/tui/components"
	"github.com/simonSlamka/wolter/internal/tui/theme"
)

// Data carries everything the dashboard shows, computed once by the caller
// before the program starts. The dashboard itself is read-only.
type Data struct {
	Summary  pipeline.CycleSummary
	Dailies  []model.DailyAggregate
	Forecast *forecast.Forecast // nil when there is no history to fit
	NetSoFar float64
	Budget   config.BudgetConfig
}

// App is the bubbletea model for the dashboard.
type App struct {
	data   Data
	width  int
	height int
}

// Run starts the dashboard and blocks until the user quits.
func Run(data Data) error {
	app := App{data: data, width: 80, height: 24}
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active
	d := a.data

	cw := a.width - 2
	if cw < 40 {
		cw = 40
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	b.WriteString(title.Render(fmt.Sprintf(" wolter — cycle %s (payout %s)",
		d.Summary.Cycle, d.Summary.Cycle.Payout().Format("Jan 2"))))
	b.WriteString("\n\n")

	meanDay := "—"
	if d.Summary.MeanPerDay != nil {
		meanDay = cli.FormatMoney(*d.Summary.MeanPerDay) + "/day"
	}
	cards := []struct{ Label, Value, Sub string }{
		{"Gross", cli.FormatMoney(d.Summary.Gross), meanDay},
		{"Net", cli.FormatMoney(d.Summary.Net), "after tax"},
		{"Tax", cli.FormatMoney(d.Summary.TaxOwed), ""},
		{"Days worked", fmt.Sprintf("%d", d.Summary.DaysWorked), ""},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	if len(d.Dailies) > 0 {
		vals := make([]float64, len(d.Dailies))
		for i, day := range d.Dailies {
			vals[i] = day.Total
		}
		b.WriteString(components.ContentCard(
			"Daily earnings",
			components.BarChart(vals, t.Blue, components.CardInnerWidth(cw), 8),
			cw,
		))
		b.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Budget", a.renderBudget(cw), cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Forecast", a.renderForecast(), cw))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("  q quit"))
	return b.String()
}

func (a App) renderBudget(cw int) string {
	d := a.data
	barW := cw - 40
	if barW < 10 {
		barW = 10
	}
	total := d.Budget.Total()
	share := func(category float64) float64 {
		if total <= 0 {
			return 0
		}
		return d.NetSoFar * category / total
	}
	lines := []string{
		cli.BudgetBar("Tech", share(d.Budget.Tech), d.Budget.Tech, 10, barW),
		cli.BudgetBar("Essentials", share(d.Budget.Essentials), d.Budget.Essentials, 10, barW),
		cli.BudgetBar("Buffer", share(d.Budget.Buffer), d.Budget.Buffer, 10, barW),
		cli.BudgetBar("Total", d.NetSoFar, total, 10, barW),
	}
	return strings.Join(lines, "\n")
}

func (a App) renderForecast() string {
	t := theme.Active
	f := a.data.Forecast
	if f == nil {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no history yet — log some hours first")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s expected for %s\n",
		lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(cli.FormatMoney(f.PredictedGross)),
		f.Target))

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	warn := lipgloss.NewStyle().Foreground(t.Orange)
	for _, name := range sortedModelNames(f) {
		line := fmt.Sprintf("  %-20s %s", name, cli.FormatMoney(f.ModelTotals[name]))
		if f.Disagrees(name) {
			b.WriteString(warn.Render(line + "  ⚠ disagrees"))
		} else {
			b.WriteString(muted.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedModelNames(f *forecast.Forecast) []string {
	names := make([]string, 0, len(f.ModelTotals))
	for name := range f.ModelTotals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
