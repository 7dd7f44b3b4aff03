package i18n

// Key identifies one piece of user-facing copy. Only keys declared here can be looked up.
type Key string

const (
	SiteTitle Key = "site.title"

	FooterWhatIs       Key = "footer.whatis"
	FooterDescription  Key = "footer.desc"
	FooterPrivacyLink  Key = "footer.links.privacy"
	FooterInfoLink     Key = "footer.links.info"
	FooterSourceLink   Key = "footer.links.source"
	FooterProvider     Key = "footer.provider"
	FooterExternalHint Key = "footer.links.external"

	CaptchaHeading     Key = "captcha.heading"
	CaptchaAnswerLabel Key = "captcha.answer_label"
	CaptchaSubmit      Key = "captcha.submit"
	CaptchaParseError  Key = "captcha.error.parse"
	CaptchaMismatch    Key = "captcha.error.mismatch"
	CaptchaExpired     Key = "captcha.error.expired"
	CaptchaTooMany     Key = "captcha.error.too_many"
	CaptchaSolved      Key = "captcha.solved"

	SurveyListHeading     Key = "survey.list.heading"
	SurveyListEmpty       Key = "survey.list.empty"
	SurveyQuestionCount   Key = "survey.list.questions"
	SurveyParticipant     Key = "survey.participant"
	SurveyParticipants    Key = "survey.participants"
	SurveyAnswerLabel     Key = "survey.answer.label"
	SurveyAnswerSubmit    Key = "survey.answer.submit"
	SurveyVoteUp          Key = "survey.vote.up"
	SurveyVoteDown        Key = "survey.vote.down"
	SurveyVotes           Key = "survey.votes"
	SurveyAnswers         Key = "survey.answers"
	SurveyAlreadyAnswered Key = "survey.error.already_answered"
	SurveyAlreadyVoted    Key = "survey.error.already_voted"
	SurveyEmptyAnswer     Key = "survey.error.empty_answer"
	SurveyBack            Key = "survey.back"

	ErrorHeading          Key = "error.heading"
	ErrorNotFound         Key = "error.not_found"
	ErrorSurveyNotFound   Key = "error.survey_not_found"
	ErrorQuestionNotFound Key = "error.question_not_found"
	ErrorMethodNotAllowed Key = "error.method_not_allowed"
	ErrorBadRequest       Key = "error.bad_request"
	ErrorInternal         Key = "error.internal"
)

// Keys lists every declared key.
func Keys() []Key {
	return []Key{
		SiteTitle,
		FooterWhatIs, FooterDescription, FooterPrivacyLink, FooterInfoLink, FooterSourceLink, FooterProvider, FooterExternalHint,
		CaptchaHeading, CaptchaAnswerLabel, CaptchaSubmit, CaptchaParseError, CaptchaMismatch, CaptchaExpired, CaptchaTooMany, CaptchaSolved,
		SurveyListHeading, SurveyListEmpty, SurveyQuestionCount, SurveyParticipant, SurveyParticipants,
		SurveyAnswerLabel, SurveyAnswerSubmit, SurveyVoteUp, SurveyVoteDown, SurveyVotes, SurveyAnswers,
		SurveyAlreadyAnswered, SurveyAlreadyVoted, SurveyEmptyAnswer, SurveyBack,
		ErrorHeading, ErrorNotFound, ErrorSurveyNotFound, ErrorQuestionNotFound, ErrorMethodNotAllowed, ErrorBadRequest, ErrorInternal,
	}
}
