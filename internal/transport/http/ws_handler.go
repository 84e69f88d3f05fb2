package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/app"
	"options-quiz-service/internal/auth"
	"options-quiz-service/internal/domain"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

func NewWSHandler(service *app.QuizService, log logrus.FieldLogger) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionIndex int `json:"questionIndex"`
	OptionIndex   int `json:"optionIndex"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type startedPayload struct {
	SessionID      string          `json:"sessionId"`
	Scenario       domain.Scenario `json:"scenario"`
	TotalQuestions int             `json:"totalQuestions"`
}

type questionPayload struct {
	Index    int      `json:"index"`
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type completedPayload struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	AttemptID      string `json:"attemptId,omitempty"`
}

// ServeWS runs one walkthrough per connection. The scenario comes from the
// query string: symbol and strategy, optionally stockPrice and tradeDate.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.ScenarioRequest{
		Symbol:     q.Get("symbol"),
		Strategy:   domain.StrategyKind(q.Get("strategy")),
		StockPrice: q.Get("stockPrice"),
		TradeDate:  q.Get("tradeDate"),
	}
	if req.Symbol == "" || req.Strategy == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "missing symbol or strategy"})
		return
	}
	userID := auth.UserFromContext(r.Context())

	// Start before upgrading so premium and quote failures surface as statuses.
	session, err := h.service.Start(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	logger := h.log.WithField("session_id", session.ID())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.service.Abandon(session.ID())
		logger.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.WithError(err).Debug("ws write failed")
				return
			}
		}
	}()

	completed := false
	defer func() {
		if !completed {
			h.service.Abandon(session.ID())
		}
		close(send)
		<-writerDone
	}()

	send <- outboundMessage[any]{Type: "started", Payload: startedPayload{
		SessionID:      session.ID(),
		Scenario:       session.Scenario(),
		TotalQuestions: session.TotalQuestions(),
	}}
	send <- questionMessage(session, 0)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			result, err := h.service.Answer(r.Context(), session.ID(), payload.QuestionIndex, payload.OptionIndex)
			if err != nil {
				_, msg := statusFor(err)
				send <- errorMessage(msg)
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: result}
			if result.Completed {
				completed = true
				send <- outboundMessage[any]{Type: "completed", Payload: completedPayload{
					Score:          result.Score,
					TotalQuestions: session.TotalQuestions(),
					AttemptID:      result.AttemptID,
				}}
				logger.WithField("score", strconv.Itoa(result.Score)+"/"+strconv.Itoa(session.TotalQuestions())).Info("walkthrough completed")
				return
			}
			if next, ok := session.Next(); ok {
				send <- questionMessage(session, next)
			}
		default:
			send <- errorMessage("unsupported message type")
		}
	}
}

func questionMessage(s *app.Session, index int) outboundMessage[any] {
	q := s.Question(index)
	return outboundMessage[any]{Type: "question", Payload: questionPayload{
		Index:    index,
		ID:       q.ID,
		Question: q.Text,
		Options:  q.Options,
	}}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
