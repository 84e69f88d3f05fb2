package strategy

import (
	"fmt"
	"math"

	"options-quiz-service/internal/domain"
)

// collar pairs the long shares with a short call at the scenario strike and a
// long put 10% below spot priced at 80% of the call premium.
type collar struct{}

type collarLegs struct {
	callStrike  float64
	putStrike   float64
	callPremium float64
	putPremium  float64
	netDebit    float64
}

func collarOf(in Inputs) collarLegs {
	l := collarLegs{
		callStrike:  in.Strike,
		putStrike:   in.Spot * 0.9,
		callPremium: in.Premium,
		putPremium:  in.Premium * 0.8,
	}
	l.netDebit = l.putPremium - l.callPremium
	return l
}

func (collar) Kind() domain.StrategyKind { return domain.Collar }
func (collar) Label() string             { return "Collar Strategy" }
func (collar) Description() string {
	return "Learn how to bound both the downside and the upside of shares you own with a put and a call."
}
func (collar) Premium() bool { return true }

func (collar) Profit(in Inputs, price float64) float64 {
	l := collarOf(in)
	return (clamp(price, l.putStrike, l.callStrike) - in.Spot - l.netDebit) * ContractSize
}

func (collar) Metrics(in Inputs) domain.Metrics {
	l := collarOf(in)
	return domain.Metrics{
		BreakEven: in.Spot + l.netDebit,
		MaxProfit: (l.callStrike - in.Spot - l.netDebit) * ContractSize,
		MaxLoss:   (in.Spot - l.putStrike + l.netDebit) * ContractSize,
	}
}

func (collar) RequiredCapital(in Inputs) domain.Amount {
	return amount(in.Spot*ContractSize, "(100 shares)")
}

func (collar) InitialInvestment(in Inputs) domain.Amount {
	l := collarOf(in)
	if l.netDebit > 0 {
		return amount(math.Abs(l.netDebit)*ContractSize, "net debit paid")
	}
	return amount(math.Abs(l.netDebit)*ContractSize, "net credit received")
}

func (collar) priceRange(in Inputs) (float64, float64) { return strikeRange(in) }

func (s collar) Questions(in Inputs) []Draft {
	sym, spot, f := in.Symbol, in.Spot, in.Future
	l := collarOf(in)
	m := s.Metrics(in)
	pl := s.Profit(in, f)
	netCost := l.netDebit * ContractSize

	netLabel := "Net debit of " + usd(netCost)
	otherLabel := "Net credit of " + usd(netCost)
	if l.netDebit <= 0 {
		netLabel = "Net credit of " + usd(-netCost)
		otherLabel = "Net debit of " + usd(-netCost)
	}

	var position, positionNote, plNote string
	switch {
	case f > l.callStrike:
		position = "Stock was called away at " + usd(l.callStrike)
		positionNote = fmt.Sprintf("Since the stock price (%s) exceeded the call strike (%s), your stock was called away at the strike price", usd(f), usd(l.callStrike))
		plNote = "Stock was called away, resulting in maximum profit of " + usd(m.MaxProfit)
	case f < l.putStrike:
		position = "Put protection kicked in at " + usd(l.putStrike)
		positionNote = fmt.Sprintf("Since the stock price (%s) fell below the put strike (%s), your put protection limited your losses", usd(f), usd(l.putStrike))
		plNote = "Put protection limited your loss to " + usd(m.MaxLoss)
	default:
		position = "Stock was retained, both options expired worthless"
		positionNote = fmt.Sprintf("The stock price (%s) stayed between your put strike (%s) and call strike (%s), so both options expired worthless",
			usd(f), usd(l.putStrike), usd(l.callStrike))
		plNote = fmt.Sprintf("Stock price movement (%s) minus net debit (%s) = %s",
			usd((f-spot)*ContractSize), usd(netCost), usd(pl))
	}

	drop := spot * 0.85
	stockLoss := (spot - drop) * ContractSize

	return drafts(
		ask(
			fmt.Sprintf("You establish a collar on %s at %s by buying a put at %s and selling a call at %s. What's your maximum possible profit?",
				sym, usd(spot), usd(l.putStrike), usd(l.callStrike)),
			fmt.Sprintf("The maximum profit is limited to the call strike (%s) minus current stock price (%s) minus the net debit (%s), times 100 shares = %s",
				usd(l.callStrike), usd(spot), usd(l.netDebit), usd(m.MaxProfit)),
			right(usd(m.MaxProfit)),
			wrong(usd(l.callStrike-spot)),
			wrong("Unlimited profit"),
			wrong(usd((l.putStrike-spot)*ContractSize)),
		),
		ask(
			fmt.Sprintf("For your %s collar, what is your maximum potential loss?", sym),
			fmt.Sprintf("The maximum loss is limited to the current stock price (%s) minus put strike (%s) plus the net debit (%s), times 100 shares = %s",
				usd(spot), usd(l.putStrike), usd(l.netDebit), usd(m.MaxLoss)),
			right(usd(m.MaxLoss)),
			wrong("Unlimited loss"),
			wrong(usd(spot-l.putStrike)),
			wrong(usd(l.putPremium*ContractSize)),
		),
		ask(
			fmt.Sprintf("On %s, you paid %s for the put and received %s for the call. What was the net cost of establishing this collar?",
				sym, usd(l.putPremium), usd(l.callPremium)),
			fmt.Sprintf("The net cost is the put premium paid (%s) minus the call premium received (%s), times 100 shares: %s",
				usd(l.putPremium), usd(l.callPremium), netLabel),
			right(netLabel),
			wrong(otherLabel),
			wrong(usd((l.putPremium+l.callPremium)*ContractSize)),
			wrong("$0 (Zero-cost collar)"),
		),
		ask(
			fmt.Sprintf("At expiration, %s is at %s. What happened to your position?", sym, usd(f)),
			positionNote,
			right(position),
			wrong("You must sell the stock at market price"),
			wrong("You must buy more stock"),
			wrong("You lost both the stock and the premium"),
		),
		ask(
			fmt.Sprintf("What is your profit/loss on %s at the expiration price of %s?", sym, usd(f)),
			plNote,
			right(usd(pl)),
			wrong(usd(f-spot)),
			wrong(usd((l.putStrike-spot)*ContractSize)),
			wrong(usd(netCost)),
		),
		ask(
			fmt.Sprintf("If %s drops by 15%% to %s, how does your collar compare to just owning the stock?", sym, usd(drop)),
			fmt.Sprintf("With just stock ownership, a 15%% drop means a loss of %s. The collar's put strike at %s limits your loss to %s",
				usd(stockLoss), usd(l.putStrike), usd(m.MaxLoss)),
			right(fmt.Sprintf("Collar limits loss to %s vs stock loss of %s", usd(m.MaxLoss), usd(stockLoss))),
			wrong("Both strategies lose the same amount"),
			wrong("Collar loses more due to premium paid"),
			wrong("Cannot be determined"),
		),
	)
}
