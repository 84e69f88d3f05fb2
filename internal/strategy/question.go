package strategy

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"options-quiz-service/internal/domain"
)

// Option is an answer choice before shuffling.
type Option struct {
	Text    string
	Correct bool
}

// Draft is a question in authoring order, exactly one option flagged correct.
type Draft struct {
	ID          int
	Text        string
	Options     []Option
	Explanation string
}

// Shuffler permutes n elements in place. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// LockedShuffler is a Shuffler safe for concurrent use.
type LockedShuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewShuffler seeds a concurrency-safe shuffler. A zero seed uses the clock.
func NewShuffler(seed int64) *LockedShuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedShuffler{rnd: rand.New(rand.NewSource(seed))}
}

func (s *LockedShuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

// Generate builds the question set for a strategy, shuffling each question's
// options independently.
func Generate(s Strategy, in Inputs, sh Shuffler) ([]domain.Question, error) {
	return Render(s.Questions(in), sh)
}

// Render shuffles the options of every draft and records where the correct
// option landed.
func Render(drafts []Draft, sh Shuffler) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(drafts))
	for _, d := range drafts {
		if n := countCorrect(d.Options); n != 1 {
			return nil, fmt.Errorf("question %d has %d correct options", d.ID, n)
		}
		opts := make([]Option, len(d.Options))
		copy(opts, d.Options)
		sh.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

		q := domain.Question{
			ID:          d.ID,
			Text:        d.Text,
			Options:     make([]string, len(opts)),
			Explanation: d.Explanation,
		}
		for i, o := range opts {
			q.Options[i] = o.Text
			if o.Correct {
				q.CorrectAnswer = i
			}
		}
		out = append(out, q)
	}
	return out, nil
}

func countCorrect(opts []Option) int {
	n := 0
	for _, o := range opts {
		if o.Correct {
			n++
		}
	}
	return n
}

func right(text string) Option { return Option{Text: text, Correct: true} }

func wrong(text string) Option { return Option{Text: text} }

func when(cond bool, text string) Option { return Option{Text: text, Correct: cond} }

func drafts(qs ...Draft) []Draft {
	for i := range qs {
		qs[i].ID = i + 1
	}
	return qs
}

func ask(text, explanation string, opts ...Option) Draft {
	return Draft{Text: text, Options: opts, Explanation: explanation}
}

// money renders v with two decimals. Non-finite values render the way a
// browser would print them instead of failing.
func money(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func usd(v float64) string { return "$" + money(v) }

func pct(v float64) string { return money(v) + "%" }

// num renders v the shortest way, as entered.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
