package pricer

import (
	"math"

	"github.com/Checker-Finance/rates-engine/internal/instrument"
)

const (
	initialVolGuess = 0.20
	maxIterations   = 100
	priceTolerance  = 1e-6
	vegaFloor       = 1e-10
	maxVol          = 5.0
)

// ImpliedVolatility backs out the Black-76 volatility that reproduces
// the given market price. The solver is Newton-Raphson starting at 20%
// vol, at most 100 iterations to a price tolerance of 1e-6. Price is
// monotone in vol, so every trial tightens a [lo, hi] bracket; when
// vega collapses below 1e-10 or a Newton step lands outside the
// bracket, the solver bisects instead, keeping far-from-guess roots
// reachable where a raw Newton step would leave the domain.
func ImpliedVolatility(swaption *instrument.Swaption, marketPrice, forwardRate, timeToExpiry float64) float64 {
	vol := initialVolGuess
	lo, hi := 0.0, maxVol

	for i := 0; i < maxIterations; i++ {
		price := BlackPrice(swaption, forwardRate, vol, timeToExpiry)
		diff := price - marketPrice

		if math.Abs(diff) < priceTolerance {
			return vol
		}

		if diff > 0 {
			hi = vol
		} else {
			lo = vol
		}

		next := (lo + hi) / 2.0
		if vega := Vega(swaption, forwardRate, vol, timeToExpiry); math.Abs(vega) >= vegaFloor {
			if step := vol - diff/vega; step > lo && step < hi {
				next = step
			}
		}
		vol = next
	}

	return vol
}
