package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"survey-service/internal/domain"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type challengeResponse struct {
	apiResponse
	ID      string `json:"id"`
	NumberA int    `json:"number_a"`
	NumberB int    `json:"number_b"`
}

type submitCaptchaRequest struct {
	SurveyID string `json:"id"`
	// CalculatedResult is accepted as a JSON number or string so bad input reports a parse error.
	CalculatedResult json.RawMessage `json:"calculated_result"`
}

type enrollResponse struct {
	apiResponse
	Survey   domain.Survey `json:"survey"`
	Username string        `json:"username"`
}

type loginRequest struct {
	SurveyID string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	apiResponse
	Survey domain.Survey `json:"survey"`
}

type answerRequest struct {
	SurveyID   string `json:"id"`
	QuestionID string `json:"qid"`
	Username   string `json:"username"`
	Answer     string `json:"answer"`
}

type voteRequest struct {
	SurveyID   string `json:"id"`
	QuestionID string `json:"qid"`
	Username   string `json:"username"`
	Value      int    `json:"value"`
}

type resultsResponse struct {
	apiResponse
	Results domain.Results `json:"results"`
}

func (h *Handler) newCaptcha(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.captcha.Issue(r.Context())
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	v := h.visitor(r)
	v.setCaptchaID(challenge.ID)
	if err := v.save(w, r); err != nil {
		h.apiFailure(w, r, err)
		return
	}
	JSON(w, http.StatusOK, challengeResponse{
		apiResponse: apiResponse{Success: true, Message: "Success"},
		ID:          challenge.ID,
		NumberA:     challenge.OperandA,
		NumberB:     challenge.OperandB,
	})
}

func (h *Handler) submitCaptcha(w http.ResponseWriter, r *http.Request) {
	var req submitCaptchaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Bad request")
		return
	}
	v := h.visitor(r)
	challengeID := v.captchaID()
	if challengeID == "" {
		Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	survey, err := h.surveys.Get(r.Context(), req.SurveyID)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	if err := h.captcha.Verify(r.Context(), challengeID, rawNumber(req.CalculatedResult)); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) || errors.Is(err, domain.ErrChallengeNotFound) {
			v.clearCaptcha()
			_ = v.save(w, r)
		}
		h.apiFailure(w, r, err)
		return
	}
	username, err := h.surveys.Enroll(r.Context(), survey.ID)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	v.clearCaptcha()
	v.setUsername(survey.ID, username)
	if err := v.save(w, r); err != nil {
		h.apiFailure(w, r, err)
		return
	}
	JSON(w, http.StatusOK, enrollResponse{
		apiResponse: apiResponse{Success: true, Message: "Success"},
		Survey:      survey,
		Username:    username,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	survey, err := h.surveys.Login(r.Context(), req.SurveyID, req.Username)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	v := h.visitor(r)
	v.setUsername(survey.ID, req.Username)
	if err := v.save(w, r); err != nil {
		h.apiFailure(w, r, err)
		return
	}
	JSON(w, http.StatusOK, loginResponse{
		apiResponse: apiResponse{Success: true, Message: "Success"},
		Survey:      survey,
	})
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	username := h.participant(r, req.SurveyID, req.Username)
	results, err := h.surveys.Answer(r.Context(), req.SurveyID, username, req.QuestionID, req.Answer)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	JSON(w, http.StatusOK, resultsResponse{
		apiResponse: apiResponse{Success: true, Message: "Success"},
		Results:     results,
	})
}

func (h *Handler) vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	username := h.participant(r, req.SurveyID, req.Username)
	results, err := h.surveys.Vote(r.Context(), req.SurveyID, username, req.QuestionID, req.Value)
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	JSON(w, http.StatusOK, resultsResponse{
		apiResponse: apiResponse{Success: true, Message: "Success"},
		Results:     results,
	})
}

func (h *Handler) results(w http.ResponseWriter, r *http.Request) {
	results, err := h.surveys.Results(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.apiFailure(w, r, err)
		return
	}
	JSON(w, http.StatusOK, resultsResponse{
		apiResponse: apiResponse{Success: true, Message: "Success"},
		Results:     results,
	})
}

// participant prefers the username in the request body and falls back to the session.
func (h *Handler) participant(r *http.Request, surveyID, username string) string {
	if username = strings.TrimSpace(username); username != "" {
		return username
	}
	return h.visitor(r).username(surveyID)
}

// apiFailure maps domain errors to status codes; anything unknown is logged and hidden.
func (h *Handler) apiFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, message := apiError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("api request failed", "path", r.URL.Path, "error", err)
	} else {
		h.logger.Debug("api request rejected", "path", r.URL.Path, "error", err)
	}
	Error(w, status, message)
}

func apiError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many attempts"
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusBadRequest, "Challenge expired"
	case errors.Is(err, domain.ErrParse), errors.Is(err, domain.ErrMismatch):
		return http.StatusBadRequest, "Bad solution"
	case errors.Is(err, domain.ErrSurveyNotFound):
		return http.StatusNotFound, "Survey not found"
	case errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound, "Question not found"
	case errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusNotFound, "Username not found"
	case errors.Is(err, domain.ErrAlreadyAnswered):
		return http.StatusConflict, "Already answered"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return http.StatusConflict, "Already voted"
	case errors.Is(err, domain.ErrEmptyAnswer):
		return http.StatusBadRequest, "Empty answer"
	case errors.Is(err, domain.ErrInvalidVote):
		return http.StatusBadRequest, "Invalid vote"
	}
	return http.StatusInternalServerError, "Internal error"
}

// rawNumber turns a JSON number or string into the text the verifier parses.
func rawNumber(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
