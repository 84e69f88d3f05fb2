package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

type longCall struct{}

func (longCall) Kind() domain.StrategyKind { return domain.LongCall }
func (longCall) Label() string             { return "Long Call" }
func (longCall) Description() string {
	return "Learn how to profit from stock price increases with limited risk using long call options."
}
func (longCall) Premium() bool { return false }

func (longCall) Profit(in Inputs, price float64) float64 {
	return callProfit(in, price)
}

// callProfit is the P/L of one long call. Expiring at the strike is not in the money.
func callProfit(in Inputs, price float64) float64 {
	if price > in.Strike {
		return (price-in.Strike)*ContractSize - in.Premium*ContractSize
	}
	return -in.Premium * ContractSize
}

func (longCall) Metrics(in Inputs) domain.Metrics {
	return domain.Metrics{
		BreakEven:       in.Strike + in.Premium,
		MaxLoss:         in.Premium * ContractSize,
		UnlimitedProfit: true,
	}
}

func (longCall) RequiredCapital(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "(premium for 1 contract)")
}

func (longCall) InitialInvestment(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "premium paid")
}

func (longCall) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (s longCall) Questions(in Inputs) []Draft {
	sym, spot, k, p, f := in.Symbol, in.Spot, in.Strike, in.Premium, in.Future
	breakEven := k + p
	maxLoss := p * ContractSize
	up := spot * 1.10
	down := spot * 0.90
	optionPL := s.Profit(in, f)
	stockPL := (f - spot) * ContractSize
	exp := expirationLabel(in)

	var finalValue, totalPL, itmNote string
	if f > k {
		finalValue = fmt.Sprintf("(%s - %s) × 100 = %s", usd(f), usd(k), usd((f-k)*ContractSize))
		totalPL = fmt.Sprintf("%s - %s = %s", usd((f-k)*ContractSize), usd(maxLoss), usd(optionPL))
		itmNote = "Since the stock price exceeded the strike price, the option had intrinsic value at expiration."
	} else {
		finalValue = "$0 (option expires worthless)"
		totalPL = "-" + usd(maxLoss)
		itmNote = "Since the stock price did not exceed the strike price, the option expired worthless."
	}

	outcome := "The stock closed at or below the strike price, so the option expired worthless. Your loss is the premium paid: " + usd(maxLoss)
	if f > k {
		outcome = fmt.Sprintf("The stock closed above the strike price, so your profit is: (Final Price - Strike Price) × 100 - Premium = (%s - %s) × 100 - %s = %s",
			usd(f), usd(k), usd(maxLoss), usd(optionPL))
	}

	roiDistractor := -100.0
	if f <= k {
		roiDistractor = 0
	}

	optionWord := "loss"
	if optionPL >= 0 {
		optionWord = "profit"
	}
	optionFormula := "-" + usd(maxLoss)
	if f > k {
		optionFormula = fmt.Sprintf("(%s - %s) × 100 - %s", usd(f), usd(k), usd(maxLoss))
	}

	lesson := "The stock price fell, making stock ownership or no position the better choice."
	switch {
	case f > breakEven:
		lesson = fmt.Sprintf("The trade was profitable as the stock moved above your break-even price of %s, validating the strike selection.", usd(breakEven))
	case f > spot:
		lesson = fmt.Sprintf("While the stock rose, it didn't exceed the break-even price of %s, suggesting a lower strike might have worked better.", usd(breakEven))
	}
	strikeVerdict := "minimized losses"
	if f > breakEven {
		strikeVerdict = "was profitable"
	}

	return drafts(
		ask(
			fmt.Sprintf("If %s rises to %s (10%% increase) before expiration, what would be your profit?", sym, usd(up)),
			fmt.Sprintf("At %s, the profit is: (Stock Price - Strike Price) × 100 shares - Premium Paid = (%s - %s) × 100 - %s = %s",
				usd(up), usd(up), usd(k), usd(maxLoss), usd((up-k)*ContractSize-maxLoss)),
			right(usd((up-k)*ContractSize-maxLoss)),
			wrong(usd(maxLoss)),
			wrong(usd((up-k)*ContractSize)),
			wrong(usd((up-spot)*ContractSize)),
		),
		ask(
			fmt.Sprintf("If %s drops to %s (10%% decrease), what is your maximum loss?", sym, usd(down)),
			fmt.Sprintf("With a long call option, your maximum loss is limited to the premium paid (%s), no matter how low the stock price goes.", usd(maxLoss)),
			wrong(usd((spot-down)*ContractSize)),
			right(usd(maxLoss)),
			wrong(usd(spot*ContractSize)),
			wrong(usd((k-down)*ContractSize)),
		),
		ask(
			fmt.Sprintf("For your %s call option, what is the break-even stock price at expiration?", sym),
			fmt.Sprintf("Break-even price at expiration = Strike Price + Premium per share = %s + %s = %s", usd(k), usd(p), usd(breakEven)),
			wrong(usd(spot)+" (Current Price)"),
			wrong(usd(k)+" (Strike Price)"),
			right(usd(breakEven)+" (Strike + Premium)"),
			wrong(usd(k-p)),
		),
		ask(
			fmt.Sprintf("With %s currently at %s, what happens if the stock expires exactly at the strike price of %s?", sym, usd(spot), usd(k)),
			fmt.Sprintf("At expiration, if the stock price equals the strike price, the option expires at-the-money and worthless. You lose the entire premium paid (%s).", usd(maxLoss)),
			wrong("You break even"),
			right(fmt.Sprintf("You lose %s (the premium paid)", usd(maxLoss))),
			wrong("You lose "+usd(maxLoss/2)),
			wrong("You make a small profit"),
		),
		ask(
			fmt.Sprintf("On %s, %s closed at $%s. What was your actual profit/loss on this trade?", exp, sym, num(f)),
			outcome,
			right(usd(optionPL)),
			wrong(usd(stockPL)),
			wrong(usd((f-k)*ContractSize)),
			wrong(usd(maxLoss)),
		),
		ask(
			fmt.Sprintf("Between %s and %s, %s moved from $%s to $%s. What was your return on investment (ROI) for this call option trade?",
				tradeDateLabel(in), exp, sym, num(spot), num(f)),
			fmt.Sprintf(`Let's calculate the ROI step by step:

1. Initial Investment = Premium Paid = %s
2. Final Value = %s
3. Total Profit/Loss = Final Value - Premium = %s
4. ROI = (Total Profit or Loss / Initial Investment) × 100
   = (%s / %s) × 100
   = %s

This ROI calculation is specific to options trading, where your initial investment is the premium paid, not the full stock price. %s This demonstrates the leveraged nature of options, where your percentage gains and losses can be much larger than the corresponding stock price movement.`,
				usd(maxLoss), finalValue, totalPL, usd(optionPL), usd(maxLoss), pct(optionPL/maxLoss*100), itmNote),
			right(pct(optionPL/maxLoss*100)),
			wrong(pct((f-spot)/spot*100)),
			wrong(pct((f-k)/k*100)),
			wrong(pct(roiDistractor)),
		),
		ask(
			fmt.Sprintf("Comparing strategies for %s, which would have been more profitable: the call option or buying 100 shares directly?", sym),
			fmt.Sprintf("Stock profit/loss: (%s - %s) × 100 = %s\nOption profit/loss: %s = %s",
				usd(f), usd(spot), usd(stockPL), optionFormula, usd(optionPL)),
			when(stockPL > optionPL, "Buying shares with profit of "+usd(stockPL)),
			when(stockPL < optionPL, fmt.Sprintf("Call option with %s of %s", optionWord, usd(optionPL))),
			when(stockPL == optionPL, "Both strategies would have the same profit"),
			wrong("Cannot be determined without more information"),
		),
		ask(
			fmt.Sprintf("Based on %s's movement to $%s, what was the key lesson from this trade?", sym, num(f)),
			lesson,
			when(f > breakEven, fmt.Sprintf("The strike selection of $%s was optimal as the option %s", num(k), strikeVerdict)),
			when(f > spot && f <= breakEven, fmt.Sprintf("A lower strike price would have been better given the final price of $%s", num(f))),
			when(f <= spot && f <= breakEven, "Stock ownership would have outperformed the option"),
			wrong("The outcome was purely random and no lesson can be drawn"),
		),
	)
}
