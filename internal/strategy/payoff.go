package strategy

import (
	"iter"
	"math"

	"options-quiz-service/internal/domain"
)

// ChartPoints is the number of samples Chart yields.
const ChartPoints = 41

// Chart samples the expiration P/L of one contract across the strategy's
// price range. The sequence is finite and can be ranged over more than once.
func Chart(s Strategy, in Inputs) iter.Seq[domain.PayoffPoint] {
	lo, hi := s.priceRange(in)
	return func(yield func(domain.PayoffPoint) bool) {
		for i := 0; i < ChartPoints; i++ {
			price := cents(lo + (hi-lo)*float64(i)/float64(ChartPoints-1))
			pl := s.Profit(in, price)
			p := domain.PayoffPoint{Price: price, PL: cents(pl)}
			if in.Spot > 0 {
				// per-share P/L over the entry price, in percent
				p.PLPercent = cents(pl / in.Spot)
			}
			if !yield(p) {
				return
			}
		}
	}
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
