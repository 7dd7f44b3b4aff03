package http

import (
	"errors"
	"net/http"
	"strconv"

	"survey-service/internal/domain"
	"survey-service/internal/i18n"
	"survey-service/internal/ui"
)

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveys.List(r.Context())
	if err != nil {
		h.pageFailure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, ui.IndexPage(h.page(r), surveys))
}

// surveyPage shows the questions to enrolled participants and a fresh challenge to everyone else.
func (h *Handler) surveyPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	survey, err := h.surveys.Get(ctx, r.URL.Query().Get("id"))
	if err != nil {
		h.pageFailure(w, r, err)
		return
	}

	v := h.visitor(r)
	if username := v.username(survey.ID); username != "" {
		if _, err := h.surveys.Login(ctx, survey.ID, username); err == nil {
			h.renderSurvey(w, r, v, survey, username)
			return
		} else if !errors.Is(err, domain.ErrParticipantNotFound) {
			h.pageFailure(w, r, err)
			return
		}
		// the store forgot this participant, e.g. after a restart with in-memory storage
		v.forget(survey.ID)
	}

	challenge, err := h.captcha.Issue(ctx)
	if err != nil {
		h.pageFailure(w, r, err)
		return
	}
	h.renderChallenge(w, r, v, survey, challenge, "", nil, http.StatusOK)
}

func (h *Handler) submitCaptchaForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, i18n.ErrorBadRequest)
		return
	}
	survey, err := h.surveys.Get(ctx, r.PostForm.Get("id"))
	if err != nil {
		h.pageFailure(w, r, err)
		return
	}

	v := h.visitor(r)
	// the form names its own challenge; the session only remembers the latest one issued
	challengeID := r.PostForm.Get("challenge")
	if challengeID == "" {
		challengeID = v.captchaID()
	}
	raw := r.PostForm.Get("answer")

	verifyErr := h.captcha.Verify(ctx, challengeID, raw)
	switch {
	case verifyErr == nil:
		username, err := h.surveys.Enroll(ctx, survey.ID)
		if err != nil {
			h.pageFailure(w, r, err)
			return
		}
		v.clearCaptcha()
		v.setUsername(survey.ID, username)
		v.setFlash(i18n.CaptchaSolved, false)
		h.redirect(w, r, v, survey.ID)

	case errors.Is(verifyErr, domain.ErrTooManyAttempts), errors.Is(verifyErr, domain.ErrChallengeNotFound):
		h.retryWithNewChallenge(w, r, v, survey, verifyErr)

	case errors.Is(verifyErr, domain.ErrParse), errors.Is(verifyErr, domain.ErrMismatch):
		challenge, err := h.captcha.Get(ctx, challengeID)
		if err != nil {
			h.retryWithNewChallenge(w, r, v, survey, verifyErr)
			return
		}
		h.renderChallenge(w, r, v, survey, challenge, raw, verifyErr, http.StatusUnprocessableEntity)

	default:
		h.pageFailure(w, r, verifyErr)
	}
}

// retryWithNewChallenge replaces a spent or expired challenge and explains why inline.
func (h *Handler) retryWithNewChallenge(w http.ResponseWriter, r *http.Request, v visitor, survey domain.Survey, cause error) {
	challenge, err := h.captcha.Issue(r.Context())
	if err != nil {
		h.pageFailure(w, r, err)
		return
	}
	h.renderChallenge(w, r, v, survey, challenge, "", cause, http.StatusUnprocessableEntity)
}

func (h *Handler) renderChallenge(w http.ResponseWriter, r *http.Request, v visitor, survey domain.Survey, challenge domain.Challenge, raw string, feedback error, status int) {
	page := h.page(r)
	surface := ui.NewSurface("captcha")
	widget := ui.NewWidget(page.Loc, page.Theme, ui.WidgetOptions{
		MaxOperand: h.captcha.MaxOperand(),
		Action:     "/survey/captcha",
		Hidden:     map[string]string{"id": survey.ID},
	})
	if err := widget.PresentChallenge(surface, challenge); err != nil {
		h.pageFailure(w, r, err)
		return
	}
	if feedback != nil {
		widget.Notify(raw, feedback)
	}

	v.setCaptchaID(challenge.ID)
	if err := v.save(w, r); err != nil {
		h.pageFailure(w, r, err)
		return
	}
	h.render(w, r, status, ui.SurveyPage(page, ui.SurveyView{Survey: survey, Surface: surface}))
}

func (h *Handler) renderSurvey(w http.ResponseWriter, r *http.Request, v visitor, survey domain.Survey, username string) {
	results, err := h.surveys.Results(r.Context(), survey.ID)
	if err != nil {
		h.pageFailure(w, r, err)
		return
	}
	flash, flashErr := v.popFlash()
	if err := v.save(w, r); err != nil {
		h.pageFailure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, ui.SurveyPage(h.page(r), ui.SurveyView{
		Survey:     survey,
		Username:   username,
		Results:    results,
		Flash:      flash,
		FlashError: flashErr,
	}))
}

func (h *Handler) answerForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, i18n.ErrorBadRequest)
		return
	}
	surveyID := r.PostForm.Get("id")
	v := h.visitor(r)
	_, err := h.surveys.Answer(r.Context(), surveyID, v.username(surveyID), r.PostForm.Get("qid"), r.PostForm.Get("answer"))
	h.afterResponse(w, r, v, surveyID, err)
}

func (h *Handler) voteForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, i18n.ErrorBadRequest)
		return
	}
	value, err := strconv.Atoi(r.PostForm.Get("value"))
	if err != nil {
		h.errorPage(w, r, http.StatusBadRequest, i18n.ErrorBadRequest)
		return
	}
	surveyID := r.PostForm.Get("id")
	v := h.visitor(r)
	_, err = h.surveys.Vote(r.Context(), surveyID, v.username(surveyID), r.PostForm.Get("qid"), value)
	h.afterResponse(w, r, v, surveyID, err)
}

// afterResponse redirects back to the survey, carrying rejections as an inline flash.
func (h *Handler) afterResponse(w http.ResponseWriter, r *http.Request, v visitor, surveyID string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyAnswered):
		v.setFlash(i18n.SurveyAlreadyAnswered, true)
	case errors.Is(err, domain.ErrAlreadyVoted):
		v.setFlash(i18n.SurveyAlreadyVoted, true)
	case errors.Is(err, domain.ErrEmptyAnswer):
		v.setFlash(i18n.SurveyEmptyAnswer, true)
	case errors.Is(err, domain.ErrParticipantNotFound):
		// the survey page hands out a challenge instead
		v.forget(surveyID)
	default:
		h.pageFailure(w, r, err)
		return
	}
	h.redirect(w, r, v, surveyID)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, v visitor, surveyID string) {
	if err := v.save(w, r); err != nil {
		h.pageFailure(w, r, err)
		return
	}
	http.Redirect(w, r, ui.SurveyURL(surveyID), http.StatusSeeOther)
}

func (h *Handler) pageFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSurveyNotFound):
		h.errorPage(w, r, http.StatusNotFound, i18n.ErrorSurveyNotFound)
	case errors.Is(err, domain.ErrQuestionNotFound):
		h.errorPage(w, r, http.StatusNotFound, i18n.ErrorQuestionNotFound)
	case errors.Is(err, domain.ErrInvalidVote):
		h.errorPage(w, r, http.StatusBadRequest, i18n.ErrorBadRequest)
	default:
		h.logger.Error("page request failed", "path", r.URL.Path, "error", err)
		h.errorPage(w, r, http.StatusInternalServerError, i18n.ErrorInternal)
	}
}
