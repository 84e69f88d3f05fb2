package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

// callSpread buys a call 5% below the scenario strike and sells one 5% above.
type callSpread struct{}

type spreadLegs struct {
	longStrike   float64
	shortStrike  float64
	longPremium  float64
	shortPremium float64
	netDebit     float64
}

func callSpreadOf(in Inputs) spreadLegs {
	l := spreadLegs{
		longStrike:   in.Strike * 0.95,
		shortStrike:  in.Strike * 1.05,
		longPremium:  in.Premium * 1.2,
		shortPremium: in.Premium * 0.8,
	}
	l.netDebit = l.longPremium - l.shortPremium
	return l
}

func (callSpread) Kind() domain.StrategyKind { return domain.CallSpread }
func (callSpread) Label() string             { return "Long Call Spread" }
func (callSpread) Description() string {
	return "Learn how to trade a moderate rise for less money by pairing a long call with a higher short call."
}
func (callSpread) Premium() bool { return true }

func (callSpread) Profit(in Inputs, price float64) float64 {
	l := callSpreadOf(in)
	return (clamp(price, l.longStrike, l.shortStrike) - l.longStrike - l.netDebit) * ContractSize
}

func (callSpread) Metrics(in Inputs) domain.Metrics {
	l := callSpreadOf(in)
	return domain.Metrics{
		BreakEven: l.longStrike + l.netDebit,
		MaxProfit: (l.shortStrike - l.longStrike - l.netDebit) * ContractSize,
		MaxLoss:   l.netDebit * ContractSize,
	}
}

func (callSpread) RequiredCapital(in Inputs) domain.Amount {
	l := callSpreadOf(in)
	return amount(l.netDebit*ContractSize, "(net debit for long call spread)")
}

func (callSpread) InitialInvestment(in Inputs) domain.Amount {
	l := callSpreadOf(in)
	return amount(l.netDebit*ContractSize, "net debit paid")
}

func (callSpread) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (s callSpread) Questions(in Inputs) []Draft {
	sym, spot, f := in.Symbol, in.Spot, in.Future
	l := callSpreadOf(in)
	m := s.Metrics(in)
	pl := s.Profit(in, f)
	width := (l.shortStrike - l.longStrike) * ContractSize
	debit := l.netDebit * ContractSize
	runaway := l.shortStrike * 1.2

	plNote := fmt.Sprintf("Stock is between strikes, profit = (Stock price - Lower strike - Net debit) × 100 = %s", usd(pl))
	switch {
	case f >= l.shortStrike:
		plNote = fmt.Sprintf("Stock is above upper strike (%s), resulting in maximum profit of %s", usd(l.shortStrike), usd(m.MaxProfit))
	case f <= l.longStrike:
		plNote = fmt.Sprintf("Stock is below lower strike (%s), resulting in maximum loss of %s", usd(l.longStrike), usd(m.MaxLoss))
	}

	return drafts(
		ask(
			fmt.Sprintf("You set up a call spread on %s by buying a call at strike %s for %s and selling a call at strike %s for %s. What's your net debit?",
				sym, usd(l.longStrike), usd(l.longPremium), usd(l.shortStrike), usd(l.shortPremium)),
			fmt.Sprintf("The net debit is the long call premium paid (%s) minus the short call premium received (%s), times 100 shares = %s",
				usd(l.longPremium), usd(l.shortPremium), usd(debit)),
			right(usd(debit)),
			wrong(usd((l.longPremium+l.shortPremium)*ContractSize)),
			wrong(usd(l.shortPremium*ContractSize)),
			wrong(usd(width)),
		),
		ask(
			fmt.Sprintf("What's your maximum potential profit on this %s call spread?", sym),
			fmt.Sprintf("Maximum profit is the difference between strikes (%s × 100 = %s) minus the net debit (%s) = %s",
				usd(l.shortStrike-l.longStrike), usd(width), usd(debit), usd(m.MaxProfit)),
			right(usd(m.MaxProfit)),
			wrong(usd(width)),
			wrong("Unlimited profit"),
			wrong(usd((l.shortStrike-spot)*ContractSize)),
		),
		ask(
			fmt.Sprintf("What's your maximum potential loss on this %s call spread?", sym),
			fmt.Sprintf("The maximum loss is limited to the net debit paid (%s), which occurs if %s stays below the lower strike price of %s",
				usd(debit), sym, usd(l.longStrike)),
			right(usd(m.MaxLoss)),
			wrong(usd(l.longPremium*ContractSize)),
			wrong(usd(width)),
			wrong("Unlimited loss"),
		),
		ask(
			fmt.Sprintf("What's your break-even point at expiration for this %s call spread?", sym),
			fmt.Sprintf("Break-even = Lower strike (%s) + Net debit per share (%s) = %s", usd(l.longStrike), usd(l.netDebit), usd(m.BreakEven)),
			right(usd(m.BreakEven)),
			wrong(usd(l.longStrike)),
			wrong(usd(l.shortStrike)),
			wrong(usd(spot)),
		),
		ask(
			fmt.Sprintf("At expiration, %s is at %s. What is your profit/loss?", sym, usd(f)),
			plNote,
			right(usd(pl)),
			wrong(usd((f-spot)*ContractSize)),
			wrong(usd((f-m.BreakEven)*ContractSize+0.5)),
			wrong(usd(width)),
		),
		ask(
			fmt.Sprintf("How does implied volatility affect your %s call spread when the stock is near the upper strike of %s?", sym, usd(l.shortStrike)),
			"When the stock is near the upper strike, a decrease in implied volatility helps because it decreases the value of the near-the-money option you sold faster than the in-the-money option you bought",
			right("A decrease in implied volatility is beneficial"),
			wrong("An increase in implied volatility is beneficial"),
			wrong("Implied volatility has no effect"),
			wrong("The effect depends on time to expiration"),
		),
		ask(
			fmt.Sprintf("If %s rises to %s, well above your upper strike, what's your regret cost compared to just buying a call?", sym, usd(runaway)),
			fmt.Sprintf("You missed out on %s of potential profit above your short strike, but remember you accepted this limited profit in exchange for reduced risk",
				usd((runaway-l.shortStrike)*ContractSize)),
			right(usd((runaway-l.shortStrike)*ContractSize)),
			wrong("No regret cost, maximum profit achieved"),
			wrong(usd(m.MaxProfit)),
			wrong(usd(debit)),
		),
		ask(
			fmt.Sprintf("What happens to your %s position if the stock price stays flat at %s as time decay increases?", sym, usd(spot)),
			"Time decay affects both options, the one you bought and the one you sold, making the net effect relatively neutral when the stock price doesn't move significantly",
			right("Both options lose value, net effect is minimal"),
			wrong("Position becomes more valuable"),
			wrong("You lose the entire net debit immediately"),
			wrong("Only the short call loses value"),
		),
		ask(
			fmt.Sprintf("What's the ideal price target for your %s call spread at expiration?", sym),
			fmt.Sprintf("The ideal target is the upper strike (%s) or slightly above, as this gives you the maximum profit of %s", usd(l.shortStrike), usd(m.MaxProfit)),
			right(usd(l.shortStrike)+" or slightly higher"),
			wrong(usd(l.longStrike)),
			wrong(usd(m.BreakEven)),
			wrong(usd(runaway)),
		),
		ask(
			fmt.Sprintf("For your %s call spread, how much capital is at risk compared to buying 100 shares?", sym),
			fmt.Sprintf("The call spread risks only the net debit (%s), while buying 100 shares would risk %s, showing the spread's capital efficiency",
				usd(debit), usd(spot*ContractSize)),
			right(fmt.Sprintf("%s vs %s", usd(debit), usd(spot*ContractSize))),
			wrong(fmt.Sprintf("%s vs %s", usd(l.longPremium*ContractSize), usd(spot*ContractSize))),
			wrong(fmt.Sprintf("%s vs %s", usd(width), usd(spot*ContractSize))),
			wrong("Same risk for both strategies"),
		),
	)
}
