package cli

import (
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/scenario"
	"options-quiz-service/internal/strategy"
)

// NewQuizCmd prints a generated quiz without any network access.
func NewQuizCmd() *cobra.Command {
	var (
		symbol    string
		kind      string
		price     float64
		tradeDate string
		seed      int64
	)
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Print a generated quiz for a symbol and price",
		RunE: func(cmd *cobra.Command, args []string) error {
			strat, err := strategy.Lookup(domain.StrategyKind(kind))
			if err != nil {
				return err
			}
			var day time.Time
			if tradeDate != "" {
				if day, err = time.Parse(domain.DateLayout, tradeDate); err != nil {
					return err
				}
			}
			opts := scenario.Options{}
			if seed != 0 {
				opts.Rand = rand.New(rand.NewSource(seed))
			}
			sc, err := scenario.NewSynthesizer(opts).Synthesize(symbol, price, strat.Kind(), day)
			if err != nil {
				return err
			}
			in := strategy.FromScenario(sc)
			questions, err := strategy.Generate(strat, in, strategy.NewShuffler(seed))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Scenario   domain.Scenario   `json:"scenario"`
				Capital    domain.Amount     `json:"requiredCapital"`
				Investment domain.Amount     `json:"initialInvestment"`
				Metrics    domain.Metrics    `json:"metrics"`
				Questions  []domain.Question `json:"questions"`
			}{sc, strat.RequiredCapital(in), strat.InitialInvestment(in), strat.Metrics(in), questions})
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "AAPL", "ticker symbol")
	cmd.Flags().StringVar(&kind, "strategy", string(domain.LongCall), "strategy wire name")
	cmd.Flags().Float64Var(&price, "price", 100, "current stock price")
	cmd.Flags().StringVar(&tradeDate, "trade-date", "", "trade date (YYYY-MM-DD), defaults to today")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible output")
	return cmd
}
