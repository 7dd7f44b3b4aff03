package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"survey-service/internal/app"
)

type WSHandler struct {
	service     *app.SurveyService
	participant func(r *http.Request, surveyID string) string
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.SurveyService, participant func(r *http.Request, surveyID string) string, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		service:     service,
		participant: participant,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type votePayload struct {
	QuestionID string `json:"questionId"`
	Value      int    `json:"value"`
}

type acceptedPayload struct {
	QuestionID string `json:"questionId"`
	Kind       string `json:"kind"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS streams live results of one survey. Enrolled participants may also answer and vote
// over the same connection; their updates reach every subscriber through the results feed.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	surveyID := r.URL.Query().Get("id")
	if surveyID == "" {
		Error(w, http.StatusBadRequest, "missing id")
		return
	}
	// resolved before the upgrade, while the session cookie is still readable
	username := h.participant(r, surveyID)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.service.Subscribe(r.Context(), surveyID)
	if err != nil {
		_, message := apiError(err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer: gorilla connections allow one concurrent writer
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write failed", "error", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "results", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	fail := func(message string) {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				fail("invalid answer payload")
				continue
			}
			if _, err := h.service.Answer(r.Context(), surveyID, username, payload.QuestionID, payload.Answer); err != nil {
				_, message := apiError(err)
				fail(message)
				continue
			}
			send <- outboundMessage[any]{Type: "accepted", Payload: acceptedPayload{QuestionID: payload.QuestionID, Kind: "answer"}}
		case "vote":
			var payload votePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				fail("invalid vote payload")
				continue
			}
			if _, err := h.service.Vote(r.Context(), surveyID, username, payload.QuestionID, payload.Value); err != nil {
				_, message := apiError(err)
				fail(message)
				continue
			}
			send <- outboundMessage[any]{Type: "accepted", Payload: acceptedPayload{QuestionID: payload.QuestionID, Kind: "vote"}}
		default:
			fail("unsupported message type")
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
