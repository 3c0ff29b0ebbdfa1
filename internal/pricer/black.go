// Package pricer implements Black-76 swaption pricing and implied
// volatility solving. All functions are pure and safe for concurrent
// use.
package pricer

import (
	"math"

	"github.com/Checker-Finance/rates-engine/internal/instrument"
)

// normalCDF is the standard normal cumulative distribution function.
func normalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// normalPDF is the standard normal probability density function.
func normalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2.0*math.Pi)
}

// Annuity sums discount factors exp(-forwardRate*t_i) over the payment
// schedule implied by the underlying's tenor and its fixed leg payment
// frequency. Degenerate inputs (unparseable tenor, undetermined
// frequency) fall back to 1.0 so the pricing formula stays total.
func Annuity(swap *instrument.InterestRateSwap, forwardRate float64) float64 {
	if swap == nil {
		return 1.0
	}

	freq := swap.PayLeg().Frequency()
	if swap.ReceiveLeg().IsFixed() {
		freq = swap.ReceiveLeg().Frequency()
	}

	ppy := freq.PaymentsPerYear()
	if ppy == 0 {
		return 1.0
	}

	tenorYears := float64(instrument.TenorToMonths(swap.Tenor())) / 12.0
	numPayments := int(math.Floor(tenorYears * float64(ppy)))
	if numPayments <= 0 {
		return 1.0
	}

	period := 1.0 / float64(ppy)
	annuity := 0.0
	for i := 1; i <= numPayments; i++ {
		t := float64(i) * period
		annuity += math.Exp(-forwardRate * t)
	}
	return annuity
}

// BlackPrice values a swaption under the Black-76 formula, scaled by
// the underlying notional and the annuity factor. Degenerate market
// inputs (non-positive vol, time, forward or strike) collapse to
// discounted intrinsic value rather than failing; callers wanting
// stricter behavior should sanity-check inputs first.
func BlackPrice(swaption *instrument.Swaption, forwardRate, volatility, timeToExpiry float64) float64 {
	strike := swaption.Strike()
	notional := swaption.Underlying().Notional()
	annuity := Annuity(swaption.Underlying(), forwardRate)

	if volatility <= 0 || timeToExpiry <= 0 || forwardRate <= 0 || strike <= 0 {
		return notional * annuity * swaption.IntrinsicValue(forwardRate)
	}

	sqrtT := math.Sqrt(timeToExpiry)
	d1 := (math.Log(forwardRate/strike) + 0.5*volatility*volatility*timeToExpiry) / (volatility * sqrtT)
	d2 := d1 - volatility*sqrtT

	var unit float64
	if swaption.IsPayer() {
		unit = forwardRate*normalCDF(d1) - strike*normalCDF(d2)
	} else {
		unit = strike*normalCDF(-d2) - forwardRate*normalCDF(-d1)
	}

	return notional * annuity * unit
}

// Vega is the price sensitivity to volatility, in the same scaling as
// BlackPrice (notional and annuity included). Zero for degenerate
// inputs.
func Vega(swaption *instrument.Swaption, forwardRate, volatility, timeToExpiry float64) float64 {
	strike := swaption.Strike()
	if volatility <= 0 || timeToExpiry <= 0 || forwardRate <= 0 || strike <= 0 {
		return 0
	}

	notional := swaption.Underlying().Notional()
	annuity := Annuity(swaption.Underlying(), forwardRate)

	sqrtT := math.Sqrt(timeToExpiry)
	d1 := (math.Log(forwardRate/strike) + 0.5*volatility*volatility*timeToExpiry) / (volatility * sqrtT)

	return notional * annuity * forwardRate * normalPDF(d1) * sqrtT
}
