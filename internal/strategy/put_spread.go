package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

// putSpread buys a put at the scenario strike and sells one 5% below it.
type putSpread struct{}

func putSpreadOf(in Inputs) spreadLegs {
	l := spreadLegs{
		longStrike:   in.Strike,
		shortStrike:  in.Strike * 0.95,
		longPremium:  in.Premium,
		shortPremium: in.Premium * 0.7,
	}
	l.netDebit = l.longPremium - l.shortPremium
	return l
}

func (putSpread) Kind() domain.StrategyKind { return domain.PutSpread }
func (putSpread) Label() string             { return "Long Put Spread" }
func (putSpread) Description() string {
	return "Learn how to profit from a moderate decline at a lower cost than buying a put outright."
}
func (putSpread) Premium() bool { return true }

func (putSpread) Profit(in Inputs, price float64) float64 {
	l := putSpreadOf(in)
	return (l.longStrike - clamp(price, l.shortStrike, l.longStrike) - l.netDebit) * ContractSize
}

func (putSpread) Metrics(in Inputs) domain.Metrics {
	l := putSpreadOf(in)
	return domain.Metrics{
		BreakEven: l.longStrike - l.netDebit,
		MaxProfit: (l.longStrike - l.shortStrike - l.netDebit) * ContractSize,
		MaxLoss:   l.netDebit * ContractSize,
	}
}

func (putSpread) RequiredCapital(in Inputs) domain.Amount {
	l := putSpreadOf(in)
	return amount(l.netDebit*ContractSize, "(net debit for long put spread)")
}

func (putSpread) InitialInvestment(in Inputs) domain.Amount {
	l := putSpreadOf(in)
	return amount(l.netDebit*ContractSize, "net debit paid")
}

func (putSpread) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (s putSpread) Questions(in Inputs) []Draft {
	sym, spot, f := in.Symbol, in.Spot, in.Future
	l := putSpreadOf(in)
	hi, lo := l.longStrike, l.shortStrike
	m := s.Metrics(in)
	pl := s.Profit(in, f)
	width := (hi - lo) * ContractSize
	debit := l.netDebit * ContractSize

	plNote := fmt.Sprintf("Stock is between strikes, profit/loss = (Higher strike - Stock price - Net debit) × 100 = %s", usd(pl))
	switch {
	case f <= lo:
		plNote = "Stock is below both strikes, achieving maximum profit of " + usd(m.MaxProfit)
	case f >= hi:
		plNote = "Stock is above both strikes, resulting in maximum loss of " + usd(m.MaxLoss)
	}

	return drafts(
		ask(
			fmt.Sprintf("You establish a long put spread on %s with strike prices %s (buy) and %s (sell). What's your maximum possible profit?", sym, usd(hi), usd(lo)),
			fmt.Sprintf("The maximum profit is the difference between strikes (%s - %s = %s) minus the net debit paid (%s) × 100 = %s",
				usd(hi), usd(lo), usd(hi-lo), usd(l.netDebit), usd(m.MaxProfit)),
			right(usd(m.MaxProfit)),
			wrong(usd(hi-lo)),
			wrong(usd(l.longPremium*ContractSize)),
			wrong("Unlimited profit"),
		),
		ask(
			fmt.Sprintf("What is your maximum potential loss on this %s put spread?", sym),
			fmt.Sprintf("The maximum loss is limited to the net debit paid: Premium paid for higher strike (%s) minus premium received for lower strike (%s) × 100 = %s",
				usd(l.longPremium), usd(l.shortPremium), usd(debit)),
			right(usd(m.MaxLoss)),
			wrong(usd(l.longPremium*ContractSize)),
			wrong(usd(hi-lo)),
			wrong("Unlimited loss"),
		),
		ask(
			fmt.Sprintf("What is the break-even price for your %s put spread at expiration?", sym),
			fmt.Sprintf("Break-even price = Higher strike price (%s) minus net debit (%s) = %s", usd(hi), usd(l.netDebit), usd(m.BreakEven)),
			right(usd(m.BreakEven)),
			wrong(usd(hi)),
			wrong(usd(lo)),
			wrong(usd(spot)),
		),
		ask(
			fmt.Sprintf("At expiration, %s is at %s. What is your profit/loss?", sym, usd(f)),
			plNote,
			right(usd(pl)),
			wrong(usd((hi-f)*ContractSize)),
			wrong(usd((lo-f)*ContractSize)),
			wrong(usd(debit)),
		),
		ask(
			fmt.Sprintf("If %s's implied volatility increases significantly, how should it affect your position if the stock is currently near %s?", sym, usd(hi*1.02)),
			"When the stock is above the higher strike, increased implied volatility helps because it increases the value of your out-of-the-money long put more than the further out-of-the-money short put.",
			right("Beneficial, as it increases the value of your long put more than the short put"),
			wrong("Harmful, as it increases the value of your short put more"),
			wrong("No effect, as the changes cancel each other out"),
			wrong("Harmful to both puts equally"),
		),
		ask(
			fmt.Sprintf("What happens to your %s put spread if the stock drops to %s before expiration?", sym, usd(lo*0.95)),
			fmt.Sprintf("When the stock falls below the lower strike price (%s), the spread reaches its maximum value of %s, resulting in the maximum profit of %s after subtracting the net debit paid.",
				usd(lo), usd(width), usd(m.MaxProfit)),
			right("Achieves maximum profit of "+usd(m.MaxProfit)),
			wrong("Results in a loss of "+usd(debit)),
			wrong("Breaks even"),
			wrong("Profit continues to increase as stock falls further"),
		),
		ask(
			fmt.Sprintf("For your %s put spread, how does time decay (theta) affect the position when the stock is at %s?", sym, usd(hi*0.98)),
			"Time decay has a relatively neutral effect on a put spread because it's eroding the value of both the long put you bought and the short put you sold, partially offsetting each other.",
			right("Relatively neutral as it affects both puts"),
			wrong("Strongly negative as both puts lose value"),
			wrong("Strongly positive as short put decays faster"),
			wrong("Only affects the long put position"),
		),
		ask(
			fmt.Sprintf("If %s is at %s at expiration, what actions should you take?", sym, usd(lo*0.97)),
			fmt.Sprintf("With the stock below both strikes at expiration, both puts are in-the-money. You'll exercise your long put to sell at %s and be assigned on your short put to buy at %s, realizing the maximum profit.",
				usd(hi), usd(lo)),
			right("Exercise your long put and get assigned on your short put"),
			wrong("Only exercise your long put"),
			wrong("Let both puts expire"),
			wrong("Only get assigned on your short put"),
		),
		ask(
			fmt.Sprintf("Compared to buying just the %s put on %s, what's the main advantage of this spread?", usd(hi), sym),
			fmt.Sprintf("The spread reduces your cost from %s to %s by selling the lower strike put. While this limits your profit potential, it reduces your risk and cost basis.",
				usd(l.longPremium*ContractSize), usd(debit)),
			right("Lower cost and defined risk"),
			wrong("Higher potential profit"),
			wrong("No obligation to buy stock"),
			wrong("Unlimited profit potential"),
		),
		ask(
			fmt.Sprintf("What's the ideal market condition for your %s put spread position?", sym),
			fmt.Sprintf("The ideal scenario is a moderate decline to or below the lower strike price (%s) by expiration, which would allow the spread to achieve its maximum value of %s.",
				usd(lo), usd(width)),
			right(fmt.Sprintf("Moderate downside move to %s by expiration", usd(lo))),
			wrong(fmt.Sprintf("Sharp upward move above %s", usd(hi))),
			wrong("Stock staying at current price"),
			wrong(fmt.Sprintf("Extreme drop well below %s", usd(lo*0.8))),
		),
	)
}
