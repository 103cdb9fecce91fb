package forecast

import (
	"math"
	"sort"
)

// DefaultModels returns the standard heterogeneous model set: a plain
// least-squares line, a robust median-slope line, and a nearest-neighbour
// smoother. Three cheap families with different failure modes.
func DefaultModels() []Model {
	return []Model{
		&LeastSquares{},
		&TheilSen{},
		&NearestNeighbours{K: 7},
	}
}

// LeastSquares is an ordinary least-squares linear fit.
type LeastSquares struct {
	slope, intercept float64
}

func (m *LeastSquares) Name() string { return "least-squares" }

func (m *LeastSquares) Fit(xs, ys []float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// all points share one x: fall back to the mean level
		m.slope = 0
		m.intercept = sumY / n
		return
	}
	m.slope = (n*sumXY - sumX*sumY) / denom
	m.intercept = (sumY - m.slope*sumX) / n
}

func (m *LeastSquares) Predict(x float64) float64 {
	return m.slope*x + m.intercept
}

// TheilSen fits a line using the median of pairwise slopes, which shrugs
// off the outlier days manual entry produces. Quadratic in the number of
// points; daily histories are small.
type TheilSen struct {
	slope, intercept float64
}

func (m *TheilSen) Name() string { return "theil-sen" }

func (m *TheilSen) Fit(xs, ys []float64) {
	var slopes []float64
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if dx := xs[j] - xs[i]; dx != 0 {
				slopes = append(slopes, (ys[j]-ys[i])/dx)
			}
		}
	}
	if len(slopes) == 0 {
		m.slope = 0
		m.intercept = median(ys)
		return
	}
	m.slope = median(slopes)

	residuals := make([]float64, len(xs))
	for i := range xs {
		residuals[i] = ys[i] - m.slope*xs[i]
	}
	m.intercept = median(residuals)
}

func (m *TheilSen) Predict(x float64) float64 {
	return m.slope*x + m.intercept
}

// NearestNeighbours predicts the mean of the K training days closest in
// ordinal distance to the query day.
type NearestNeighbours struct {
	K  int
	xs []float64
	ys []float64
}

func (m *NearestNeighbours) Name() string { return "nearest-neighbours" }

func (m *NearestNeighbours) Fit(xs, ys []float64) {
	m.xs = xs
	m.ys = ys
}

func (m *NearestNeighbours) Predict(x float64) float64 {
	if len(m.xs) == 0 {
		return 0
	}
	k := m.K
	if k <= 0 {
		k = 1
	}
	if k > len(m.xs) {
		k = len(m.xs)
	}

	idx := make([]int, len(m.xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		da := math.Abs(m.xs[idx[a]] - x)
		db := math.Abs(m.xs[idx[b]] - x)
		if da == db {
			return m.xs[idx[a]] > m.xs[idx[b]] // prefer the more recent day
		}
		return da < db
	})

	var sum float64
	for _, i := range idx[:k] {
		sum += m.ys[i]
	}
	return sum / float64(k)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
