// Package tax converts gross earnings into net profit under a configurable
// progressive policy.
package tax

import (
	"fmt"

	"github.com/simonSlamka/wolter/internal/model"
)

// Policy holds the progressive-tax constants. The formula changed across the
// original script revisions; all three knobs are configuration, not law.
type Policy struct {
	// Rate applied to the taxable portion of a cycle's gross.
	Rate float64
	// HalfCycleThreshold is the per-cycle amount earned tax-free once the
	// annual exemption is exceeded.
	HalfCycleThreshold float64
	// AnnualExemptThreshold: while year-to-date gross stays at or below
	// this, the effective rate is zero.
	AnnualExemptThreshold float64
}

// DefaultPolicy are the constants from the latest script revision.
func DefaultPolicy() Policy {
	return Policy{
		Rate:                  0.46,
		HalfCycleThreshold:    542,
		AnnualExemptThreshold: 7200,
	}
}

// Validate rejects policies that cannot describe any tax regime.
func (p Policy) Validate() error {
	if p.Rate < 0 || p.Rate > 1 {
		return fmt.Errorf("%w: tax rate %.2f outside [0, 1]", model.ErrConfiguration, p.Rate)
	}
	if p.HalfCycleThreshold < 0 {
		return fmt.Errorf("%w: half-cycle threshold %.2f is negative", model.ErrConfiguration, p.HalfCycleThreshold)
	}
	if p.AnnualExemptThreshold < 0 {
		return fmt.Errorf("%w: annual exempt threshold %.2f is negative", model.ErrConfiguration, p.AnnualExemptThreshold)
	}
	return nil
}

// Compute returns the net profit and tax owed on a period's gross earnings.
//
// yearToDateGross must be recomputed from the full record history on every
// call; nothing here caches it, so the result is a pure function of its
// arguments. Amounts stay at full float precision — rounding is the
// presentation layer's job.
func (p Policy) Compute(gross, yearToDateGross float64) (net, owed float64) {
	if yearToDateGross <= p.AnnualExemptThreshold {
		return gross, 0
	}
	taxable := gross - p.HalfCycleThreshold
	if taxable < 0 {
		taxable = 0
	}
	owed = taxable * p.Rate
	return gross - owed, owed
}
