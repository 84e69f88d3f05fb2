package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/scenario"
	"options-quiz-service/internal/strategy"
)

// DefaultHistoryLimit is how many attempts History returns.
const DefaultHistoryLimit = 10

// ScenarioRequest asks for a scenario. When StrikePrice is set the request
// carries a complete scenario and nothing is synthesized; otherwise the
// current price is StockPrice or, when that is empty, a live quote.
type ScenarioRequest struct {
	Symbol         string              `json:"symbol"`
	Strategy       domain.StrategyKind `json:"strategy"`
	StockPrice     string              `json:"stockPrice,omitempty"`
	StrikePrice    string              `json:"strikePrice,omitempty"`
	Premium        string              `json:"premium,omitempty"`
	FuturePrice    string              `json:"futurePrice,omitempty"`
	ExpirationDate string              `json:"expirationDate,omitempty"`
	TradeDate      string              `json:"tradeDate,omitempty"`
}

// ScenarioResult is a scenario with its derived figures.
type ScenarioResult struct {
	Scenario   domain.Scenario `json:"scenario"`
	Capital    domain.Amount   `json:"requiredCapital"`
	Investment domain.Amount   `json:"initialInvestment"`
	Metrics    domain.Metrics  `json:"metrics"`
}

// Quiz is a generated question set for client-side scoring.
type Quiz struct {
	ScenarioResult
	Questions []domain.Question `json:"questions"`
}

// AnswerResult reports the outcome of one walkthrough answer.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Score         int    `json:"score"`
	Answered      int    `json:"answered"`
	Completed     bool   `json:"completed"`
	AttemptID     string `json:"attemptId,omitempty"`
}

// QuizOptions carries QuizService collaborators that have sensible defaults.
type QuizOptions struct {
	Shuffler     strategy.Shuffler
	Publisher    AttemptPublisher
	HistoryLimit int
	Clock        func() time.Time
	Logger       logrus.FieldLogger
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	quotes       QuoteSource
	synth        *scenario.Synthesizer
	entitlements *EntitlementService
	scores       ScoreStore
	sessions     SessionRepository
	shuffler     strategy.Shuffler
	publisher    AttemptPublisher
	historyLimit int
	clock        func() time.Time
	log          logrus.FieldLogger
}

func NewQuizService(quotes QuoteSource, synth *scenario.Synthesizer, entitlements *EntitlementService, scores ScoreStore, sessions SessionRepository, opts QuizOptions) *QuizService {
	s := &QuizService{
		quotes:       quotes,
		synth:        synth,
		entitlements: entitlements,
		scores:       scores,
		sessions:     sessions,
		shuffler:     opts.Shuffler,
		publisher:    opts.Publisher,
		historyLimit: opts.HistoryLimit,
		clock:        opts.Clock,
		log:          opts.Logger,
	}
	if s.shuffler == nil {
		s.shuffler = strategy.NewShuffler(0)
	}
	if s.publisher == nil {
		s.publisher = NopPublisher{}
	}
	if s.historyLimit <= 0 {
		s.historyLimit = DefaultHistoryLimit
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	return s
}

// NewScenario builds a scenario and its capital figures.
func (s *QuizService) NewScenario(ctx context.Context, req ScenarioRequest) (ScenarioResult, error) {
	strat, err := strategy.Lookup(req.Strategy)
	if err != nil {
		return ScenarioResult{}, err
	}
	sc, err := s.scenarioFor(ctx, req, strat.Kind())
	if err != nil {
		return ScenarioResult{}, err
	}
	return describe(strat, sc), nil
}

// Generate returns a full question set. Premium strategies need an
// entitlement.
func (s *QuizService) Generate(ctx context.Context, userID string, req ScenarioRequest) (Quiz, error) {
	strat, err := s.authorize(ctx, userID, req.Strategy)
	if err != nil {
		return Quiz{}, err
	}
	sc, err := s.scenarioFor(ctx, req, strat.Kind())
	if err != nil {
		return Quiz{}, err
	}
	questions, err := strategy.Generate(strat, strategy.FromScenario(sc), s.shuffler)
	if err != nil {
		return Quiz{}, err
	}
	return Quiz{ScenarioResult: describe(strat, sc), Questions: questions}, nil
}

// Start opens a server-scored walkthrough.
func (s *QuizService) Start(ctx context.Context, userID string, req ScenarioRequest) (*Session, error) {
	quiz, err := s.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	session := newSession(uuid.NewString(), userID, quiz.Scenario, quiz.Questions, s.clock)
	s.sessions.Create(session)
	s.log.WithFields(logrus.Fields{
		"session_id": session.ID(),
		"user_id":    userID,
		"symbol":     quiz.Scenario.Symbol,
		"strategy":   quiz.Scenario.Strategy,
	}).Info("walkthrough started")
	return session, nil
}

// Session returns a running walkthrough.
func (s *QuizService) Session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Answer scores one question. The answer that completes the walkthrough
// persists exactly one attempt for a signed-in user.
func (s *QuizService) Answer(ctx context.Context, sessionID string, questionIndex, optionIndex int) (AnswerResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return AnswerResult{}, domain.ErrSessionNotFound
	}
	result, err := session.answer(questionIndex, optionIndex)
	if err != nil {
		return AnswerResult{}, err
	}
	if !result.Completed {
		return result, nil
	}

	s.sessions.Delete(sessionID)
	if session.userID == "" {
		return result, nil
	}
	attempt, err := s.record(ctx, session.attempt())
	if err != nil {
		return result, err
	}
	result.AttemptID = attempt.ID
	return result, nil
}

// Abandon drops a walkthrough without recording it.
func (s *QuizService) Abandon(sessionID string) {
	s.sessions.Delete(sessionID)
}

// RecordScore stores a client-scored attempt.
func (s *QuizService) RecordScore(ctx context.Context, attempt domain.QuizAttempt) (domain.QuizAttempt, error) {
	if attempt.UserID == "" {
		return domain.QuizAttempt{}, domain.ErrUnauthenticated
	}
	if attempt.TotalQuestions <= 0 || attempt.Score < 0 || attempt.Score > attempt.TotalQuestions {
		return domain.QuizAttempt{}, fmt.Errorf("%w: score %d of %d", domain.ErrInvalidRequest, attempt.Score, attempt.TotalQuestions)
	}
	attempt.Symbol = normalizeSymbol(attempt.Symbol)
	if attempt.Symbol == "" {
		return domain.QuizAttempt{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidRequest)
	}
	attempt.Strategy = strings.ToUpper(attempt.Strategy)
	return s.record(ctx, attempt)
}

// History returns the user's most recent attempts, newest first.
func (s *QuizService) History(ctx context.Context, userID string) ([]domain.QuizAttempt, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.scores.RecentAttempts(ctx, userID, s.historyLimit)
}

func (s *QuizService) record(ctx context.Context, attempt domain.QuizAttempt) (domain.QuizAttempt, error) {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.Date.IsZero() {
		attempt.Date = s.clock().UTC()
	}
	if err := s.scores.SaveAttempt(ctx, attempt); err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("save attempt: %w", err)
	}
	if err := s.publisher.PublishAttempt(ctx, attempt); err != nil {
		s.log.WithError(err).WithField("attempt_id", attempt.ID).Warn("attempt event not published")
	}
	return attempt, nil
}

func (s *QuizService) authorize(ctx context.Context, userID string, kind domain.StrategyKind) (strategy.Strategy, error) {
	strat, err := strategy.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if strat.Premium() && !s.entitlements.Check(ctx, userID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPremiumRequired, strat.Label())
	}
	return strat, nil
}

func (s *QuizService) scenarioFor(ctx context.Context, req ScenarioRequest, kind domain.StrategyKind) (domain.Scenario, error) {
	if strings.TrimSpace(req.Symbol) == "" {
		return domain.Scenario{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidScenario)
	}
	if req.StrikePrice != "" {
		in, err := strategy.ParseInputs(strategy.RawInputs{
			Symbol:         req.Symbol,
			StockPrice:     req.StockPrice,
			StrikePrice:    req.StrikePrice,
			Premium:        req.Premium,
			FuturePrice:    req.FuturePrice,
			ExpirationDate: req.ExpirationDate,
			TradeDate:      req.TradeDate,
		})
		if err != nil {
			return domain.Scenario{}, err
		}
		return domain.Scenario{
			Symbol:         in.Symbol,
			CurrentPrice:   in.Spot,
			StrikePrice:    in.Strike,
			Premium:        in.Premium,
			FuturePrice:    in.Future,
			ExpirationDate: in.Expiration,
			TradeDate:      in.TradeDate,
			Strategy:       kind,
		}, nil
	}

	var tradeDate time.Time
	if req.TradeDate != "" {
		t, err := time.Parse(domain.DateLayout, req.TradeDate)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("%w: tradeDate: %v", domain.ErrInvalidScenario, err)
		}
		tradeDate = t
	}

	var price float64
	if req.StockPrice != "" {
		p, err := strategy.ParsePrice("stockPrice", req.StockPrice)
		if err != nil {
			return domain.Scenario{}, err
		}
		price = p
	} else {
		q, err := s.quotes.Quote(ctx, normalizeSymbol(req.Symbol))
		if err != nil {
			return domain.Scenario{}, err
		}
		price = q.Current
	}
	return s.synth.Synthesize(req.Symbol, price, kind, tradeDate)
}

func describe(strat strategy.Strategy, sc domain.Scenario) ScenarioResult {
	in := strategy.FromScenario(sc)
	return ScenarioResult{
		Scenario:   sc,
		Capital:    strat.RequiredCapital(in),
		Investment: strat.InitialInvestment(in),
		Metrics:    strat.Metrics(in),
	}
}

// Session is one server-scored walkthrough.
type Session struct {
	id        string
	userID    string
	scenario  domain.Scenario
	questions []domain.Question
	createdAt time.Time

	mu        sync.Mutex
	answered  []bool
	score     int
	count     int
	completed bool
}

func newSession(id, userID string, sc domain.Scenario, questions []domain.Question, now func() time.Time) *Session {
	return &Session{
		id:        id,
		userID:    userID,
		scenario:  sc,
		questions: questions,
		createdAt: now(),
		answered:  make([]bool, len(questions)),
	}
}

// NewSession is exported for infrastructure layers and tests that need to
// seed sessions directly.
func NewSession(id, userID string, sc domain.Scenario, questions []domain.Question) *Session {
	return newSession(id, userID, sc, questions, time.Now)
}

func (s *Session) ID() string                     { return s.id }
func (s *Session) UserID() string                 { return s.userID }
func (s *Session) Scenario() domain.Scenario      { return s.scenario }
func (s *Session) TotalQuestions() int            { return len(s.questions) }
func (s *Session) CreatedAt() time.Time           { return s.createdAt }
func (s *Session) Question(i int) domain.Question { return s.questions[i] }

// Next returns the first unanswered question index.
func (s *Session) Next() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, done := range s.answered {
		if !done {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) answer(questionIndex, optionIndex int) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return AnswerResult{}, domain.ErrSessionCompleted
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return AnswerResult{}, domain.ErrQuestionNotFound
	}
	q := s.questions[questionIndex]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return AnswerResult{}, domain.ErrOptionNotFound
	}
	if s.answered[questionIndex] {
		return AnswerResult{}, domain.ErrAlreadyAnswered
	}

	s.answered[questionIndex] = true
	s.count++
	correct := optionIndex == q.CorrectAnswer
	if correct {
		s.score++
	}
	s.completed = s.count == len(s.questions)

	return AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Score:         s.score,
		Answered:      s.count,
		Completed:     s.completed,
	}, nil
}

func (s *Session) attempt() domain.QuizAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.QuizAttempt{
		UserID:         s.userID,
		Score:          s.score,
		TotalQuestions: len(s.questions),
		Symbol:         s.scenario.Symbol,
		Strategy:       string(s.scenario.Strategy),
		TradeDate:      s.scenario.TradeDate.Format(domain.DateLayout),
	}
}
