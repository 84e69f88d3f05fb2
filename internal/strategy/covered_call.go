package strategy

import (
	"fmt"
	"math"

	"options-quiz-service/internal/domain"
)

type coveredCall struct{}

func (coveredCall) Kind() domain.StrategyKind { return domain.CoveredCall }
func (coveredCall) Label() string             { return "Covered Call" }
func (coveredCall) Description() string {
	return "Learn how to generate income by selling call options against stock you own."
}
func (coveredCall) Premium() bool { return false }

func (coveredCall) Profit(in Inputs, price float64) float64 {
	return (math.Min(price, in.Strike) - in.Spot + in.Premium) * ContractSize
}

func (coveredCall) Metrics(in Inputs) domain.Metrics {
	return domain.Metrics{
		BreakEven: in.Spot - in.Premium,
		MaxProfit: (in.Strike - in.Spot + in.Premium) * ContractSize,
		MaxLoss:   (in.Spot - in.Premium) * ContractSize,
	}
}

func (coveredCall) RequiredCapital(in Inputs) domain.Amount {
	return amount(in.Spot*ContractSize, "(100 shares)")
}

func (coveredCall) InitialInvestment(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "premium received")
}

func (coveredCall) priceRange(in Inputs) (float64, float64) {
	return in.Spot * 0.8, in.Strike * 1.2
}

func (s coveredCall) Questions(in Inputs) []Draft {
	sym, spot, k, p, f := in.Symbol, in.Spot, in.Strike, in.Premium, in.Future
	m := s.Metrics(in)
	pl := s.Profit(in, f)
	calledAway := f > k

	outcome := fmt.Sprintf("%s finished at or below the strike, so you keep the shares: (%s - %s + %s) × 100 = %s",
		sym, usd(f), usd(spot), usd(p), usd(pl))
	if calledAway {
		outcome = fmt.Sprintf("%s finished above the strike, so the shares are called away at %s: (%s - %s + %s) × 100 = %s",
			sym, usd(k), usd(k), usd(spot), usd(p), usd(pl))
	}

	assignment := fmt.Sprintf("At %s the call finishes at or below the %s strike and expires worthless. You keep both the shares and the %s premium.",
		usd(f), usd(k), usd(p*ContractSize))
	if calledAway {
		assignment = fmt.Sprintf("At %s the call is in the money, so your 100 shares are sold at the %s strike. The premium is yours either way.",
			usd(f), usd(k))
	}

	return drafts(
		ask(
			fmt.Sprintf("You buy 100 shares of %s at $%s and sell a call at strike $%s for $%s premium. What's your maximum profit?",
				sym, num(spot), num(k), num(p)),
			fmt.Sprintf("Maximum profit = (Strike - Stock Price) × 100 + Premium = ($%s - $%s) × 100 + %s = %s",
				num(k), num(spot), usd(p*ContractSize), usd(m.MaxProfit)),
			right(usd(m.MaxProfit)),
			wrong(usd(p*ContractSize)),
			wrong(usd((k-spot)*ContractSize)),
			wrong("Unlimited profit"),
		),
		ask(
			fmt.Sprintf("What is the break-even price of your %s covered call?", sym),
			fmt.Sprintf("Break-even = Stock Price - Premium received = %s - %s = %s. The premium cushions the shares against a small decline.",
				usd(spot), usd(p), usd(m.BreakEven)),
			right(usd(m.BreakEven)),
			wrong(usd(spot+p)),
			wrong(usd(k)),
			wrong(usd(k+p)),
		),
		ask(
			fmt.Sprintf("What is the maximum loss on your %s covered call if the stock goes to zero?", sym),
			fmt.Sprintf("You still own the shares, so the loss is the purchase price less the premium collected: (%s - %s) × 100 = %s",
				usd(spot), usd(p), usd(m.MaxLoss)),
			right(usd(m.MaxLoss)),
			wrong(usd(spot*ContractSize)),
			wrong(usd(p*ContractSize)),
			wrong("Unlimited loss"),
		),
		ask(
			fmt.Sprintf("On %s, %s closed at %s. What was your profit/loss on the covered call?", expirationLabel(in), sym, usd(f)),
			outcome,
			right(usd(pl)),
			wrong(usd((f-spot)*ContractSize)),
			wrong(usd((f-k)*ContractSize)),
			wrong(usd((f-spot-p)*ContractSize)),
		),
		ask(
			fmt.Sprintf("%s expires at %s. What happens to your shares?", sym, usd(f)),
			assignment,
			when(calledAway, fmt.Sprintf("They are called away at %s per share", usd(k))),
			when(!calledAway, "You keep the shares and the premium"),
			wrong(fmt.Sprintf("You must buy 100 more shares at %s", usd(k))),
			wrong("The call expires and you must return the premium"),
		),
		ask(
			fmt.Sprintf("What return does the %s premium alone give on your %s shares?", usd(p*ContractSize), sym),
			fmt.Sprintf("Premium yield = Premium / Stock Price × 100 = %s / %s × 100 = %s",
				usd(p), usd(spot), pct(p/spot*100)),
			right(pct(p/spot*100)),
			wrong(pct(p/k*100+(k-spot)/k*100)),
			wrong(pct((k-spot)/spot*100+p/spot*100)),
			wrong(pct(p/(spot*ContractSize)*100)),
		),
	)
}
