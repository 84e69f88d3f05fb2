package strategy

import (
	"fmt"
	"math"

	"options-quiz-service/internal/domain"
)

// optionsTheory quizzes call and put fundamentals against a long call.
type optionsTheory struct{}

func (optionsTheory) Kind() domain.StrategyKind { return domain.OptionsTheory }
func (optionsTheory) Label() string             { return "Options Theory" }
func (optionsTheory) Description() string {
	return "Learn the vocabulary of options: rights and obligations, moneyness, break-even and time value."
}
func (optionsTheory) Premium() bool { return false }

func (optionsTheory) Profit(in Inputs, price float64) float64 { return callProfit(in, price) }

func (optionsTheory) Metrics(in Inputs) domain.Metrics { return longCall{}.Metrics(in) }

func (optionsTheory) RequiredCapital(Inputs) domain.Amount   { return zeroAmount }
func (optionsTheory) InitialInvestment(Inputs) domain.Amount { return zeroAmount }

func (optionsTheory) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (optionsTheory) Questions(in Inputs) []Draft {
	sym, spot, k, p, f := in.Symbol, in.Spot, in.Strike, in.Premium, in.Future
	breakEven := k + p
	totalPremium := p * ContractSize
	cash := k * ContractSize
	expiry := expirationLabel(in)

	status, wrongStatus := "At-the-money (ATM)", "In-the-money (ITM)"
	statusNote := "exactly at-the-money"
	switch {
	case f > k:
		status, wrongStatus = "In-the-money (ITM)", "Out-of-the-money (OTM)"
		statusNote = fmt.Sprintf("in-the-money by %s per share", usd(f-k))
	case f < k:
		status = "Out-of-the-money (OTM)"
		statusNote = fmt.Sprintf("out-of-the-money by %s per share", usd(k-f))
	}
	profitable := "Unprofitable"
	if f > breakEven {
		profitable = "Profitable"
	}

	stockPL := (f - spot) * ContractSize
	optionPL := callProfit(in, f)
	stockChoice := "Buying the stock directly " + plLabel(stockPL)
	optionChoice := "Buying the call option " + plLabel(optionPL)
	same := money(stockPL) == money(optionPL)
	better := "Both positions produced the same result, so neither was the better choice."
	switch {
	case same:
	case stockPL > optionPL:
		better = "In this case the stock position had the better result, making it the better choice."
	default:
		better = "In this case the options position had the better result, making it the better choice."
	}

	timeValue := fmt.Sprintf("With the option in-the-money by %s, part of the premium is intrinsic value", usd(spot-k))
	timeNote := fmt.Sprintf("With %s at %s and the strike at %s, this call has intrinsic value of %s and time value of %s. While intrinsic value remains as long as the stock stays above the strike, time value will decay to zero by expiration.",
		sym, usd(spot), usd(k), usd(spot-k), usd(p-(spot-k)))
	if k > spot {
		timeValue = fmt.Sprintf("Since the option is out-of-the-money by %s, time value represents 100%% of the premium", usd(k-spot))
		timeNote = fmt.Sprintf("With %s at %s and the strike at %s, this call option is out-of-the-money. The entire premium of %s is time value, which will decay as expiration approaches. If the stock doesn't rise above %s by expiration, all time value will be lost.",
			sym, usd(spot), usd(k), usd(p), usd(k))
	}

	return drafts(
		ask(
			fmt.Sprintf("For %s trading at %s, which best describes your rights if you buy a call option with strike price %s?", sym, usd(spot), usd(k)),
			fmt.Sprintf("When buying a call option on %s, you have the right (but not obligation) to buy the stock at the strike price of %s, even if the stock price rises significantly above this level. Your maximum loss is limited to the premium paid of %s.",
				sym, usd(k), usd(totalPremium)),
			right(fmt.Sprintf("Right to buy %s at %s regardless of how high the stock price goes", sym, usd(k))),
			wrong(fmt.Sprintf("Obligation to buy %s at %s if the stock goes up", sym, usd(k))),
			wrong(fmt.Sprintf("Right to sell %s at %s if the stock goes down", sym, usd(k))),
			wrong(fmt.Sprintf("Right to buy %s at %s anytime before expiration", sym, usd(spot))),
		),
		ask(
			fmt.Sprintf("If %s is trading at %s now, when would the %s call option be considered in-the-money (ITM)?", sym, usd(spot), usd(k)),
			fmt.Sprintf("A call option is in-the-money when the stock price is above the strike price. For this %s option, any price above %s means the option has intrinsic value, though you need the price above %s to be profitable after considering the premium paid.",
				sym, usd(k), usd(breakEven)),
			right(fmt.Sprintf("When %s trades above %s", sym, usd(k))),
			wrong(fmt.Sprintf("When %s trades below %s", sym, usd(k))),
			wrong(fmt.Sprintf("When %s trades exactly at %s", sym, usd(k))),
			wrong(fmt.Sprintf("When %s trades above %s", sym, usd(breakEven))),
		),
		ask(
			fmt.Sprintf("Given the %s premium for this %s option, what's the break-even price at expiration?", usd(p), sym),
			fmt.Sprintf("The break-even price for a call option at expiration is the strike price (%s) plus the premium paid per share (%s), which equals %s. At this price, the intrinsic value exactly equals the premium paid.",
				usd(k), usd(p), usd(breakEven)),
			right(usd(breakEven)),
			wrong(usd(k)),
			wrong(usd(spot)),
			wrong(usd(k-p)),
		),
		ask(
			fmt.Sprintf("If you sell a put option on %s with a %s strike price, what is your obligation?", sym, usd(k)),
			fmt.Sprintf("When selling a put option on %s, you are obligated to buy 100 shares at the strike price (%s) if assigned, requiring %s in cash. This is true regardless of how low the stock price might fall.",
				sym, usd(k), usd(cash)),
			right(fmt.Sprintf("To buy %s at %s if assigned, requiring %s in cash", sym, usd(k), usd(cash))),
			wrong(fmt.Sprintf("To sell %s at %s if the stock price rises", sym, usd(k))),
			wrong(fmt.Sprintf("To pay the difference if %s falls below %s", sym, usd(k))),
			wrong(fmt.Sprintf("To buy %s at the market price if assigned", sym)),
		),
		ask(
			fmt.Sprintf("For the %s option expiring on %s, what happens to the time value portion of the %s premium as we approach expiration?", sym, expiry, usd(p)),
			fmt.Sprintf("The time value portion of your %s premium will decay (decrease) as we approach the %s expiration, with the decay accelerating in the final weeks. At expiration, only intrinsic value (if any) remains.",
				usd(p), expiry),
			right("Time value consistently decreases as expiration approaches"),
			wrong("Time value increases as expiration approaches"),
			wrong("Time value stays constant until expiration day"),
			wrong("Time value fluctuates randomly until expiration"),
		),
		ask(
			fmt.Sprintf("If implied volatility increases after you buy the %s %s call option for %s, what typically happens to the option's price?", sym, usd(k), usd(p)),
			fmt.Sprintf("An increase in implied volatility typically increases the option's price, assuming all other factors remain constant. This would increase the time value portion of your %s option above the initial %s premium paid.",
				sym, usd(p)),
			right("The option's price typically increases"),
			wrong("The option's price typically decreases"),
			wrong("The option's price remains unchanged"),
			wrong("The option's intrinsic value changes"),
		),
		ask(
			fmt.Sprintf("What is the maximum possible loss when buying this %s call option with %s strike price?", sym, usd(k)),
			fmt.Sprintf("When buying this call option on %s, your maximum loss is limited to the total premium paid of %s (%s × 100 shares). This occurs if the stock is at or below %s at expiration.",
				sym, usd(totalPremium), usd(p), usd(k)),
			right(usd(totalPremium)+" (the total premium paid)"),
			wrong(usd(cash)+" (the strike price value)"),
			wrong(usd(spot*ContractSize)+" (the current stock value)"),
			wrong("Unlimited loss potential"),
		),
		ask(
			fmt.Sprintf("On %s, %s closed at %s. What term describes the %s call option's status?", expiry, sym, usd(f), usd(k)),
			fmt.Sprintf("With %s closing at %s and the strike at %s, the option was %s.", sym, usd(f), usd(k), statusNote),
			right(status),
			wrong(wrongStatus),
			wrong("Equal-to-the-money"),
			wrong(profitable),
		),
		ask(
			fmt.Sprintf("From %s to %s, %s moved from %s to %s. What was the better choice?", tradeDateLabel(in), expiry, sym, usd(spot), usd(f)),
			fmt.Sprintf("With %s moving from %s to %s the stock P/L was %s and the option P/L was %s. %s",
				sym, usd(spot), usd(f), usd(stockPL), usd(optionPL), better),
			when(!same && stockPL > optionPL, stockChoice),
			when(!same && stockPL < optionPL, optionChoice),
			wrong("Neither - staying in cash"),
			when(same, "Both would have the same profit"),
		),
		ask(
			fmt.Sprintf("For your %s %s call option trading at %s, which statement best describes the impact of time value?", sym, usd(k), usd(p)),
			timeNote,
			right(timeValue),
			wrong("Time value is equal to the full premium of "+usd(p)),
			wrong(fmt.Sprintf("Time value doesn't matter since expiration is %d days away", daysToExpiry(in))),
			wrong(fmt.Sprintf("Time value is only relevant if the stock price exceeds %s", usd(spot*1.1))),
		),
	)
}

func plLabel(pl float64) string {
	if pl >= 0 {
		return "(profit: " + usd(pl) + ")"
	}
	return "(loss: " + usd(-pl) + ")"
}

// daysToExpiry rounds to whole calendar days; missing dates fall back to 30.
func daysToExpiry(in Inputs) int {
	if in.Expiration.IsZero() || in.TradeDate.IsZero() {
		return 30
	}
	return int(math.Round(in.Expiration.Sub(in.TradeDate).Hours() / 24))
}
