// Package forecast predicts total earnings for a future pay cycle by
// averaging several independent regression models over the daily history.
//
// Single-model forecasts are fragile on sparse manual-entry data, so a few
// cheap model families run side by side and a model whose prediction strays
// far from the cross-model mean gets flagged rather than trusted.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/model"
)

// disagreementFactor: a model further than this fraction of the mean away
// from the mean is flagged.
const disagreementFactor = 0.75

// Forecast is the result of one prediction run. Ephemeral.
type Forecast struct {
	Target         cycle.Cycle
	PredictedGross float64
	ModelTotals    map[string]float64
	Disagreement   []string
}

// Model fits (day ordinal -> daily total) points and predicts a daily total
// for a future ordinal.
type Model interface {
	Name() string
	Fit(xs []float64, ys []float64)
	Predict(x float64) float64
}

// PredictCycle fits every model over the daily aggregates and sums each
// model's per-day predictions across the target cycle. The headline figure
// is the arithmetic mean of the model totals.
func PredictCycle(dailies []model.DailyAggregate, target cycle.Cycle) (Forecast, error) {
	return PredictCycleWith(dailies, target, DefaultModels())
}

// PredictCycleWith is PredictCycle with an explicit model set.
func PredictCycleWith(dailies []model.DailyAggregate, target cycle.Cycle, models []Model) (Forecast, error) {
	if len(dailies) == 0 {
		return Forecast{}, fmt.Errorf("%w: no daily history to fit", model.ErrInsufficientData)
	}
	if len(models) == 0 {
		return Forecast{}, fmt.Errorf("%w: no forecast models configured", model.ErrConfiguration)
	}

	xs := make([]float64, len(dailies))
	ys := make([]float64, len(dailies))
	for i, d := range dailies {
		xs[i] = float64(ordinalDay(d.Date))
		ys[i] = d.Total
	}

	days := target.Days()

	f := Forecast{
		Target:      target,
		ModelTotals: make(map[string]float64, len(models)),
	}

	for _, m := range models {
		m.Fit(xs, ys)
		var total float64
		for _, day := range days {
			total += m.Predict(float64(ordinalDay(day)))
		}
		f.ModelTotals[m.Name()] = total
		f.PredictedGross += total
	}
	f.PredictedGross /= float64(len(models))

	for name, total := range f.ModelTotals {
		if math.Abs(total-f.PredictedGross) > disagreementFactor*f.PredictedGross {
			f.Disagreement = append(f.Disagreement, name)
		}
	}
	sort.Strings(f.Disagreement)

	return f, nil
}

// Disagrees reports whether the named model was flagged.
func (f Forecast) Disagrees(name string) bool {
	for _, n := range f.Disagreement {
		if n == name {
			return true
		}
	}
	return false
}

// ordinalDay converts a date to an integer day index on a common axis.
func ordinalDay(t time.Time) int64 {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.Unix() / 86400
}
