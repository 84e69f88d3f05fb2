package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

type cashSecuredPut struct{}

func (cashSecuredPut) Kind() domain.StrategyKind { return domain.CashSecuredPut }
func (cashSecuredPut) Label() string             { return "Cash Secured Put" }
func (cashSecuredPut) Description() string {
	return "Learn how to collect premium while setting aside cash to buy stock at a discount."
}
func (cashSecuredPut) Premium() bool { return true }

func (cashSecuredPut) Profit(in Inputs, price float64) float64 {
	return (in.Premium - intrinsicPut(price, in.Strike)) * ContractSize
}

func (cashSecuredPut) Metrics(in Inputs) domain.Metrics {
	return domain.Metrics{
		BreakEven: in.Strike - in.Premium,
		MaxProfit: in.Premium * ContractSize,
		MaxLoss:   (in.Strike - in.Premium) * ContractSize,
	}
}

func (cashSecuredPut) RequiredCapital(in Inputs) domain.Amount {
	return amount(in.Strike*ContractSize, "(cash to buy 100 shares)")
}

func (cashSecuredPut) InitialInvestment(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "premium received")
}

func (cashSecuredPut) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (cashSecuredPut) Questions(in Inputs) []Draft {
	sym, spot, k, p, f := in.Symbol, in.Spot, in.Strike, in.Premium, in.Future
	breakEven := k - p
	maxGain := p * ContractSize
	cash := k * ContractSize
	down := spot * 0.90
	assigned := f < k

	assignment := fmt.Sprintf("Since %s is at or above the strike price of %s, the put expires worthless and you keep the full premium.", usd(f), usd(k))
	if assigned {
		assignment = fmt.Sprintf("Since %s is below the strike price of %s, you'll be assigned and must buy 100 shares at the strike price.", usd(f), usd(k))
	}

	return drafts(
		ask(
			fmt.Sprintf("You sold a cash secured put on %s with strike $%s for $%s premium. What is your break-even price?", sym, num(k), num(p)),
			fmt.Sprintf("Break-even = Strike Price - Premium = %s - %s = %s. This is the price below which you start losing money if assigned.",
				usd(k), usd(p), usd(breakEven)),
			right(usd(breakEven)),
			wrong(usd(k)),
			wrong(usd(k+p)),
			wrong(usd(spot)),
		),
		ask(
			fmt.Sprintf("How much cash must you have secured for this %s put option?", sym),
			fmt.Sprintf("You must secure %s (Strike Price × 100 shares) to cover potential assignment, regardless of the premium received.", usd(cash)),
			right(usd(cash)),
			wrong(usd(cash-maxGain)),
			wrong(usd(spot*ContractSize)),
			wrong(usd(maxGain)),
		),
		ask(
			fmt.Sprintf("If %s drops to %s halfway to expiration, what's your unrealized loss if assigned?", sym, usd(down)),
			fmt.Sprintf("Your loss would be: (Strike Price - Current Price - Premium) × 100 = (%s - %s - %s) × 100 = %s.",
				usd(k), usd(down), usd(p), usd((k-down-p)*ContractSize)),
			right(usd((k-down-p)*ContractSize)),
			wrong(usd((k-down)*ContractSize)),
			wrong(usd(maxGain)),
			wrong(usd((spot-down)*ContractSize)),
		),
		ask(
			fmt.Sprintf("%s is now at %s. Should you consider closing the position early?", sym, usd(down)),
			"With the stock below your strike price, closing early can prevent larger losses if the stock continues to fall. Managing risk is often more important than maximizing premium.",
			right("Yes, to avoid potential further losses if stock continues dropping"),
			wrong("No, always hold until expiration to keep full premium"),
			wrong("No, the loss is just on paper"),
			wrong("Yes, and sell another put at a lower strike"),
		),
		ask(
			fmt.Sprintf("What's your maximum potential gain on this %s cash secured put?", sym),
			fmt.Sprintf("Maximum gain is limited to the premium received: %s × 100 shares = %s. This occurs if the stock stays above the strike price.",
				usd(p), usd(maxGain)),
			right(usd(maxGain)),
			wrong(usd(cash)),
			wrong(usd((k+p)*ContractSize)),
			wrong("Unlimited gain"),
		),
		ask(
			fmt.Sprintf("If %s expires at %s, will you be assigned shares?", sym, usd(f)),
			assignment,
			when(assigned, fmt.Sprintf("Yes, you'll buy 100 shares at %s per share", usd(k))),
			when(!assigned, "No, you keep the premium and avoid assignment"),
			wrong("Maybe, it depends on the buyer's decision"),
			wrong("No, you can choose to decline assignment"),
		),
		ask(
			fmt.Sprintf("What's your return on investment (ROI) if %s stays above %s until expiration?", sym, usd(k)),
			fmt.Sprintf("ROI = (Premium / Cash Secured) × 100 = (%s / %s) × 100 = %s. This represents return on the cash you must set aside.",
				usd(maxGain), usd(cash), pct(maxGain/cash*100)),
			right(pct(maxGain/cash*100)),
			wrong(pct(maxGain/(spot*ContractSize)*100)),
			wrong(pct(p/breakEven*100)),
			wrong("100%"),
		),
		ask(
			fmt.Sprintf("If %s drops significantly below your put strike of %s, which action might be best?", sym, usd(k)),
			"When a stock drops significantly below your put strike, closing the position can prevent larger losses and free up capital for better opportunities. The premium received doesn't justify holding a losing position indefinitely.",
			right("Close the position and preserve capital"),
			wrong("Wait for assignment no matter what"),
			wrong("Sell another put at a lower strike"),
			wrong("Buy shares at market price"),
		),
		ask(
			fmt.Sprintf("How does your cost basis compare to the current market price if %s gets assigned at %s?", sym, usd(k)),
			fmt.Sprintf("Your effective cost basis is the strike price minus the premium received (%s). This is what you compare to the market price to determine your position's profit or loss.",
				usd(breakEven)),
			right(fmt.Sprintf("%s vs market price of %s", usd(breakEven), usd(f))),
			wrong(fmt.Sprintf("%s vs market price of %s", usd(k), usd(f))),
			wrong(fmt.Sprintf("%s vs market price of %s", usd(spot), usd(f))),
			wrong(fmt.Sprintf("%s vs market price of %s", usd(k+p), usd(f))),
		),
		ask(
			fmt.Sprintf("What percentage of your cash secured amount (%s) are you risking if %s goes to zero?", usd(cash), sym),
			fmt.Sprintf("Maximum risk is strike price minus premium (%s per share or %s total), which is %s of your secured cash. The premium received slightly reduces your total risk.",
				usd(breakEven), usd(breakEven*ContractSize), pct(breakEven/k*100)),
			right(pct(breakEven/k*100)),
			wrong("100%"),
			wrong(pct(p/k*100)),
			wrong("0%"),
		),
	)
}
