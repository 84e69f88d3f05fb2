package strategy

import (
	"fmt"

	"options-quiz-service/internal/domain"
)

type protectivePut struct{}

func (protectivePut) Kind() domain.StrategyKind { return domain.ProtectivePut }
func (protectivePut) Label() string             { return "Protective Put" }
func (protectivePut) Description() string {
	return "Learn how to insure shares you own against a sharp decline by buying a put."
}
func (protectivePut) Premium() bool { return true }

func (protectivePut) Profit(in Inputs, price float64) float64 {
	return (price-in.Spot)*ContractSize + intrinsicPut(price, in.Strike)*ContractSize - in.Premium*ContractSize
}

func (protectivePut) Metrics(in Inputs) domain.Metrics {
	return domain.Metrics{
		BreakEven:       in.Spot + in.Premium,
		MaxLoss:         (in.Spot - in.Strike + in.Premium) * ContractSize,
		UnlimitedProfit: true,
	}
}

func (protectivePut) RequiredCapital(in Inputs) domain.Amount {
	return amount(in.Spot*ContractSize+in.Premium*ContractSize, "(100 shares + put premium)")
}

func (protectivePut) InitialInvestment(in Inputs) domain.Amount {
	return amount(in.Premium*ContractSize, "premium paid")
}

func (protectivePut) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (s protectivePut) Questions(in Inputs) []Draft {
	sym, spot, k, p, f := in.Symbol, in.Spot, in.Strike, in.Premium, in.Future
	m := s.Metrics(in)
	crash := spot * 0.80
	up := spot * 1.10
	pl := s.Profit(in, f)

	var outcome, outcomeNote string
	switch {
	case f > spot:
		outcome = "Profit of " + usd(pl)
		if pl < 0 {
			outcome = "Loss of " + usd(-pl)
		}
		outcomeNote = fmt.Sprintf("The stock rose, giving you a gain of %s minus the put cost of %s.", usd((f-spot)*ContractSize), usd(p*ContractSize))
	case f < k:
		outcome = "Loss limited to " + usd(-pl)
		outcomeNote = fmt.Sprintf("The stock fell below the put strike, but your loss was limited to %s thanks to the protective put.", usd(-pl))
	default:
		outcome = "Loss of " + usd(-pl)
		outcomeNote = "The stock fell but not below the put strike. Your loss is the stock decline plus the put premium."
	}

	return drafts(
		ask(
			fmt.Sprintf("You own 100 shares of %s at %s and buy a protective put at strike %s for %s. What's your maximum possible loss per share?",
				sym, usd(spot), usd(k), usd(p)),
			fmt.Sprintf("Your maximum loss is limited to the difference between your stock purchase price (%s) and the put strike price (%s), plus the premium paid (%s). This equals %s per share.",
				usd(spot), usd(k), usd(p), usd(spot-k+p)),
			right(usd(spot-k+p)),
			wrong(usd(spot)),
			wrong(usd(p)),
			wrong(usd(k)),
		),
		ask(
			fmt.Sprintf("If %s crashes to %s (20%% drop), how much protection does your protective put provide?", sym, usd(crash)),
			fmt.Sprintf("The protective put allows you to sell at %s even though the market price is %s. This provides protection of %s for your 100 shares, offsetting much of the stock's decline.",
				usd(k), usd(crash), usd(intrinsicPut(crash, k)*ContractSize)),
			right(usd(intrinsicPut(crash, k)*ContractSize)),
			wrong(usd((spot-crash)*ContractSize)),
			wrong(usd(p*ContractSize)),
			wrong(usd((k-crash+p)*ContractSize)),
		),
		ask(
			fmt.Sprintf("If %s rises to %s (10%% increase), what's your net profit considering the cost of protection?", sym, usd(up)),
			fmt.Sprintf("Your profit is the stock's gain (%s) minus the cost of the put protection (%s), resulting in a net profit of %s.",
				usd((up-spot)*ContractSize), usd(p*ContractSize), usd((up-spot)*ContractSize-p*ContractSize)),
			right(usd((up-spot)*ContractSize-p*ContractSize)),
			wrong(usd((up-spot)*ContractSize)),
			wrong(usd((up-k)*ContractSize)),
			wrong(usd(p*ContractSize)),
		),
		ask(
			fmt.Sprintf("When would be the most cost-effective time to buy this protective put for %s?", sym),
			"It's often most psychologically and financially optimal to buy protective puts after a stock has rallied. This way, you're using some of your paper profits to protect against a downturn, rather than spending additional capital when the stock is already down.",
			right("After the stock has had a significant rally and you want to protect gains"),
			wrong("When the stock is at its lowest point"),
			wrong("Right before earnings announcement"),
			wrong("When the stock is trending downward"),
		),
		ask(
			fmt.Sprintf("Comparing a protective put to a stop-loss order for %s, which statement is most accurate?", sym),
			"While a stop-loss order is free, it might execute at a much lower price if the stock gaps down overnight. A protective put guarantees your exit price regardless of how quickly the stock falls, though you pay a premium for this insurance.",
			right("A protective put provides guaranteed protection at a specific price but costs a premium"),
			wrong("A stop-loss order is always more effective in a crash"),
			wrong("A protective put and stop-loss provide identical protection"),
			wrong("A stop-loss is more expensive but more reliable"),
		),
		ask(
			fmt.Sprintf("What happens to your protective put strategy on %s if implied volatility increases significantly?", sym),
			"An increase in implied volatility will increase the value of your put option. This is beneficial as it can help offset the negative effect of time decay and potentially allow you to sell the put for a profit if you no longer need the protection.",
			right("The put option becomes more valuable, offsetting some of its time decay"),
			wrong("The strategy becomes less effective"),
			wrong("There is no effect on the protective put"),
			wrong("The maximum loss increases"),
		),
		ask(
			fmt.Sprintf("By %s, %s is at $%s. What was the outcome of your protective put strategy?", expirationLabel(in), sym, num(f)),
			outcomeNote,
			right(outcome),
			wrong("Loss of entire investment"),
			wrong("Profit equal to put premium"),
			wrong("Break-even regardless of stock price"),
		),
		ask(
			fmt.Sprintf("In what market conditions would this protective put strategy on %s be most valuable?", sym),
			"Protective puts are most valuable during periods of high uncertainty or before major events (earnings, FDA decisions, etc.) where the stock could gap down significantly. They provide insurance against sudden, sharp declines that might bypass stop-loss orders.",
			right("During high market uncertainty or ahead of major events"),
			wrong("In a steadily rising market"),
			wrong("During low volatility periods"),
			wrong("When the stock is trending downward"),
		),
		ask(
			fmt.Sprintf("What's the break-even point for your %s position including the protective put?", sym),
			fmt.Sprintf("Your break-even point is your stock purchase price (%s) plus the cost of the put protection (%s), or %s. The stock needs to rise by at least the cost of the put for you to profit.",
				usd(spot), usd(p), usd(m.BreakEven)),
			right(usd(m.BreakEven)),
			wrong(usd(spot)),
			wrong(usd(k)),
			wrong(usd(k+p)),
		),
		ask(
			fmt.Sprintf("If you're worried about a potential market correction, which strike price selection would provide the best protection for %s?", sym),
			fmt.Sprintf("An at-the-money put near %s starts protecting you immediately. Deep out-of-the-money puts are cheaper but leave a large gap before protection begins, and deep in-the-money puts are expensive for the protection they add.",
				usd(spot)),
			right("At-the-money strike near "+usd(spot)),
			wrong("Deep out-of-the-money strike at "+usd(spot*0.7)),
			wrong("Deep in-the-money strike at "+usd(spot*1.3)),
			wrong("Multiple strikes at different prices"),
		),
	)
}
