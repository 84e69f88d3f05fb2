package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

type longPut struct{}

func (longPut) Kind() domain.StrategyKind { return domain.LongPut }
func (longPut) Label() string             { return "Long Put" }
func (longPut) Description() string {
	return "Learn how to profit from a falling stock price with risk limited to the premium paid."
}
func (longPut) Premium() bool { return true }

// Profit treats expiring at the strike as not in the money.
func (longPut) Profit(in Inputs, price float64) float64 {
	if price < in.Strike {
		return (in.Strike-price)*ContractSize - in.Premium*ContractSize
	}
	return -in.Premium * ContractSize
}

func (longPut) Metrics(in Inputs) domain.Metrics {
	return domain.Metrics{
		BreakEven: in.Strike - in.Premium,
		MaxProfit: (in.Strike - in.Premium) * ContractSize,
		MaxLoss:   in.Premium * ContractSize,
	}
}

func (longPut) RequiredCapital(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "(premium for 1 contract)")
}

func (longPut) InitialInvestment(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "premium paid")
}

func (longPut) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (s longPut) Questions(in Inputs) []Draft {
	sym, spot, k, p, f := in.Symbol, in.Spot, in.Strike, in.Premium, in.Future
	breakEven := k - p
	maxLoss := p * ContractSize
	up := spot * 1.10
	down := spot * 0.90
	pl := s.Profit(in, f)

	outcome := "The stock closed at or above the strike price, so the option expired worthless. Your loss is the premium paid: " + usd(maxLoss)
	if f < k {
		outcome = fmt.Sprintf("The stock closed below the strike price, so your profit is: (Strike Price - Final Price) × 100 - Premium = (%s - %s) × 100 - %s = %s",
			usd(k), usd(f), usd(maxLoss), usd(pl))
	}

	sideways := fmt.Sprintf("If the stock stays at %s, which is at or above the strike price of %s, your put expires worthless and you lose the entire premium paid (%s)",
		usd(spot), usd(k), usd(maxLoss))
	if spot < k {
		sideways = fmt.Sprintf("If the stock stays at %s, which is below the strike price of %s, the put keeps %s of intrinsic value for a result of %s",
			usd(spot), usd(k), usd((k-spot)*ContractSize), usd(s.Profit(in, spot)))
	}

	return drafts(
		ask(
			fmt.Sprintf("If %s falls to %s (10%% decrease) before expiration, what would be your profit?", sym, usd(down)),
			fmt.Sprintf("At %s, the profit is: (Strike Price - Stock Price) × 100 shares - Premium Paid = (%s - %s) × 100 - %s = %s",
				usd(down), usd(k), usd(down), usd(maxLoss), usd((k-down)*ContractSize-maxLoss)),
			right(usd((k-down)*ContractSize-maxLoss)),
			wrong(usd(maxLoss)),
			wrong(usd((k-down)*ContractSize)),
			wrong(usd((spot-down)*ContractSize)),
		),
		ask(
			fmt.Sprintf("If %s rises to %s (10%% increase), what is your maximum loss?", sym, usd(up)),
			fmt.Sprintf("With a long put option, your maximum loss is limited to the premium paid (%s), no matter how high the stock price goes.", usd(maxLoss)),
			wrong(usd((up-spot)*ContractSize)),
			right(usd(maxLoss)),
			wrong(usd(spot*ContractSize)),
			wrong(usd((up-k)*ContractSize)),
		),
		ask(
			fmt.Sprintf("For your %s put option, what is the break-even stock price at expiration?", sym),
			fmt.Sprintf("Break-even price at expiration = Strike Price - Premium per share = %s - %s = %s", usd(k), usd(p), usd(breakEven)),
			wrong(usd(spot)+" (Current Price)"),
			wrong(usd(k)+" (Strike Price)"),
			right(usd(breakEven)+" (Strike - Premium)"),
			wrong(usd(k+p)),
		),
		ask(
			fmt.Sprintf("How does time decay (theta) affect your long put position in %s?", sym),
			"Time decay (theta) works against you when buying options. Each day that passes, your put option loses some time value, assuming all other factors remain constant.",
			wrong("Time decay helps the position by increasing the put's value"),
			right("Time decay hurts the position by reducing the put's value"),
			wrong("Time decay has no effect on the position"),
			wrong("Time decay only affects in-the-money puts"),
		),
		ask(
			fmt.Sprintf("On %s, %s closed at $%s. What was your actual profit/loss on this trade?", expirationLabel(in), sym, num(f)),
			outcome,
			right(usd(pl)),
			wrong(usd((spot-f)*ContractSize)),
			wrong(usd((k-f)*ContractSize)),
			wrong(usd(maxLoss)),
		),
		ask(
			fmt.Sprintf("What's the maximum profit potential for your %s long put position?", sym),
			fmt.Sprintf("The maximum profit occurs if the stock goes to $0. At that point, you can sell shares at the strike price (%s) that cost $0, for a profit of (Strike Price × 100) - Premium = %s",
				usd(k), usd(k*ContractSize-maxLoss)),
			wrong(usd(maxLoss)),
			wrong(usd(k*ContractSize)),
			right(usd(k*ContractSize-maxLoss)),
			wrong("Unlimited profit potential"),
		),
		ask(
			fmt.Sprintf("How would an increase in implied volatility affect your %s put option?", sym),
			"Higher implied volatility increases option premiums for both calls and puts. As a put buyer, you benefit from increased volatility as it raises the value of your option.",
			right("It would increase the put's value"),
			wrong("It would decrease the put's value"),
			wrong("It would have no effect on the put's value"),
			wrong("It only affects call options"),
		),
		ask(
			fmt.Sprintf("If %s trades sideways and stays at %s until expiration, what happens to your put option?", sym, usd(spot)),
			sideways,
			wrong("You break even"),
			when(spot >= k, "You lose the entire premium of "+usd(maxLoss)),
			when(spot < k, "The put keeps its intrinsic value of "+usd((k-spot)*ContractSize)),
			wrong("The option extends to the next expiration"),
		),
		ask(
			fmt.Sprintf("How does your %s put compare to shorting 100 shares at %s?", sym, usd(spot)),
			fmt.Sprintf("A long put limits your risk to the premium paid (%s), while shorting stock exposes you to unlimited risk if the stock price rises.", usd(maxLoss)),
			right("The put has limited risk while shorting has unlimited risk"),
			wrong("Shorting has limited risk while the put has unlimited risk"),
			wrong("Both strategies have the same risk profile"),
			wrong("Both strategies have unlimited risk"),
		),
		ask(
			fmt.Sprintf("What's the best scenario for your %s put option?", sym),
			fmt.Sprintf("The best scenario is a significant drop in stock price below your break-even of %s. This maximizes your profit potential while your risk remains limited to the premium paid.",
				usd(breakEven)),
			wrong("Stock price rises significantly"),
			wrong("Stock price stays at current level"),
			right("Stock price falls significantly below break-even"),
			wrong("Stock price stays above strike price"),
		),
	)
}
