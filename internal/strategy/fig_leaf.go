package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

// figLeaf is a LEAPS call 20% in the money financed by a 30-day call at the
// scenario strike. The LEAPS is assumed to cost three times the short premium.
type figLeaf struct{}

func figLeafOf(in Inputs) spreadLegs {
	l := spreadLegs{
		longStrike:   in.Spot * 0.8,
		shortStrike:  in.Strike,
		longPremium:  in.Premium * 3,
		shortPremium: in.Premium,
	}
	l.netDebit = l.longPremium - l.shortPremium
	return l
}

func (figLeaf) Kind() domain.StrategyKind { return domain.FigLeaf }
func (figLeaf) Label() string             { return "Fig Leaf" }
func (figLeaf) Description() string {
	return "Learn how a deep in-the-money LEAPS call can stand in for shares under a short-term covered call."
}
func (figLeaf) Premium() bool { return true }

func (figLeaf) Profit(in Inputs, price float64) float64 {
	l := figLeafOf(in)
	return (intrinsicCall(price, l.longStrike) - intrinsicCall(price, l.shortStrike) - l.netDebit) * ContractSize
}

func (figLeaf) Metrics(in Inputs) domain.Metrics {
	l := figLeafOf(in)
	return domain.Metrics{
		BreakEven: l.longStrike + l.netDebit,
		MaxProfit: (l.shortStrike - l.longStrike - l.netDebit) * ContractSize,
		MaxLoss:   l.netDebit * ContractSize,
	}
}

func (figLeaf) RequiredCapital(in Inputs) domain.Amount {
	l := figLeafOf(in)
	return amount(l.netDebit*ContractSize, "(net debit for LEAPS + short call)")
}

func (figLeaf) InitialInvestment(in Inputs) domain.Amount {
	l := figLeafOf(in)
	return amount(l.netDebit*ContractSize, "net debit paid (LEAPS premium - short call premium)")
}

func (figLeaf) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (figLeaf) Questions(in Inputs) []Draft {
	sym, spot := in.Symbol, in.Spot
	l := figLeafOf(in)
	debit := l.netDebit * ContractSize

	return drafts(
		ask(
			fmt.Sprintf("You implement a Fig Leaf on %s at %s by buying a LEAPS call at strike %s for %s and selling a 30-day call at strike %s for %s. What's your initial net investment?",
				sym, usd(spot), usd(l.longStrike), usd(l.longPremium), usd(l.shortStrike), usd(l.shortPremium)),
			fmt.Sprintf("The net investment is the LEAPS premium paid (%s) minus the short call premium received (%s) multiplied by 100 shares = %s",
				usd(l.longPremium), usd(l.shortPremium), usd(debit)),
			right(usd(debit)),
			wrong(usd(l.longPremium*ContractSize)),
			wrong(usd(l.shortPremium*ContractSize)),
			wrong(usd(spot*ContractSize)),
		),
		ask(
			fmt.Sprintf("For your %s Fig Leaf, what happens if the stock price rises above your short strike of %s before the short call expires?", sym, usd(l.shortStrike)),
			"If the stock rises above the short strike before expiration, it's often best to close the entire position for a profit rather than risk assignment, as early assignment would require complex management of the LEAPS position.",
			right("You should consider closing the entire position for a profit"),
			wrong("Exercise your LEAPS call to cover the assignment"),
			wrong("Let assignment happen and maintain the LEAPS position"),
			wrong("Roll the short call to a higher strike price"),
		),
		ask(
			fmt.Sprintf("What's the approximate delta of your %s LEAPS call at the %s strike, and why is this important?", sym, usd(l.longStrike)),
			fmt.Sprintf("The LEAPS call should have a delta of about 0.80 or higher to act as an effective stock substitute, which is why we chose a strike 20%% in-the-money at %s.", usd(l.longStrike)),
			right("Around 0.80, making it a good stock substitute"),
			wrong("Around 0.50, providing balanced exposure"),
			wrong("Around 0.30, minimizing risk"),
			wrong("Around 0.95, providing maximum leverage"),
		),
		ask(
			fmt.Sprintf("If %s drops to %s before the short call expires, what's the best action?", sym, usd(spot*0.85)),
			"When the stock price drops significantly, you can buy back the short call (which has lost value) and sell another at a lower strike to continue generating income while maintaining the position.",
			right("Buy back the short call and sell another at a lower strike"),
			wrong("Exercise the LEAPS call immediately"),
			wrong("Close the entire position for a loss"),
			wrong("Add another short call at the same strike"),
		),
		ask(
			fmt.Sprintf("What's your maximum potential loss on this %s Fig Leaf position?", sym),
			fmt.Sprintf("The maximum loss is limited to your initial net debit of %s, which occurs if the stock drops significantly and both options expire worthless.", usd(debit)),
			right(usd(debit)+" (net debit paid)"),
			wrong(usd(l.longPremium*ContractSize)+" (LEAPS premium)"),
			wrong(usd(spot*ContractSize)+" (stock value)"),
			wrong("Unlimited loss potential"),
		),
		ask(
			fmt.Sprintf("If %s is at %s at short call expiration, what should you do?", sym, usd(l.shortStrike*1.1)),
			fmt.Sprintf("With the stock above the short strike at %s, the position is profitable and should be closed to avoid assignment complications with the LEAPS call.", usd(l.shortStrike*1.1)),
			right("Close both positions to lock in the profit"),
			wrong("Exercise the LEAPS to cover assignment"),
			wrong("Roll the short call up and out"),
			wrong("Let assignment occur naturally"),
		),
		ask(
			fmt.Sprintf("How does the leverage in your %s Fig Leaf compare to a regular covered call?", sym),
			fmt.Sprintf("The Fig Leaf provides higher leverage because you're only paying %s instead of %s for a covered call, while still collecting similar call premium.",
				usd(debit), usd(spot*ContractSize)),
			right("Higher leverage due to lower capital requirement"),
			wrong("Lower leverage due to option premium costs"),
			wrong("Same leverage as a covered call"),
			wrong("No leverage effect"),
		),
		ask(
			fmt.Sprintf("What happens to your %s position if you're assigned on the short call?", sym),
			"If assigned, you should sell the LEAPS call (preserving any remaining time value) and use the proceeds plus additional capital to buy stock to cover the assignment.",
			right("Sell the LEAPS and buy stock to cover, preserving time value"),
			wrong("Exercise the LEAPS call immediately"),
			wrong("Let the stock be called away"),
			wrong("Roll the short call forward"),
		),
		ask(
			fmt.Sprintf("If %s remains at %s until short call expiration, what's your best course of action?", sym, usd(spot)),
			"With the stock price unchanged, you can continue the strategy by selling another short-term call to generate more premium while maintaining your LEAPS position.",
			right("Sell another short-term call against your LEAPS"),
			wrong("Close the entire position"),
			wrong("Exercise the LEAPS call"),
			wrong("Buy back the short call only"),
		),
		ask(
			fmt.Sprintf("What's the key risk difference between your %s Fig Leaf and a regular covered call?", sym),
			fmt.Sprintf("Unlike stock in a covered call, your LEAPS call can expire worthless if %s drops significantly, potentially losing your entire %s investment.", sym, usd(debit)),
			right("The LEAPS call expires worthless if the stock drops significantly"),
			wrong("The short call has more risk"),
			wrong("The position has unlimited risk"),
			wrong("There is no difference in risk"),
		),
	)
}
