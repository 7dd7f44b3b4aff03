package i18n

var english = map[Key]string{
	SiteTitle: "Citizen surveys",

	FooterWhatIs:       "What is this service?",
	FooterDescription:  "An open discussion platform where residents answer short surveys and vote on each other's ideas. Participation is anonymous.",
	FooterPrivacyLink:  "Privacy statement",
	FooterInfoLink:     "About the discussion platform",
	FooterSourceLink:   "Source code",
	FooterProvider:     "Service provider",
	FooterExternalHint: "opens in a new tab",

	CaptchaHeading:     "Solve this challenge to proceed:",
	CaptchaAnswerLabel: "Your answer",
	CaptchaSubmit:      "Submit",
	CaptchaParseError:  "Please enter a whole number and try again.",
	CaptchaMismatch:    "That is not the right answer. Please try again.",
	CaptchaExpired:     "This challenge has expired. Here is a new one.",
	CaptchaTooMany:     "Too many attempts. Here is a new challenge.",
	CaptchaSolved:      "Thanks! You can now take part in the survey.",

	SurveyListHeading:     "Open surveys",
	SurveyListEmpty:       "There are no open surveys right now.",
	SurveyQuestionCount:   "%d questions",
	SurveyParticipant:     "Answering as %s",
	SurveyParticipants:    "%d participants",
	SurveyAnswerLabel:     "Your answer",
	SurveyAnswerSubmit:    "Send answer",
	SurveyVoteUp:          "Agree",
	SurveyVoteDown:        "Disagree",
	SurveyVotes:           "%d votes",
	SurveyAnswers:         "Answers so far",
	SurveyAlreadyAnswered: "You have already answered this question.",
	SurveyAlreadyVoted:    "You have already voted on this question.",
	SurveyEmptyAnswer:     "Please write an answer before sending.",
	SurveyBack:            "Back to all surveys",

	ErrorHeading:          "Something went wrong",
	ErrorNotFound:         "Page not found",
	ErrorSurveyNotFound:   "Survey not found",
	ErrorQuestionNotFound: "Question not found",
	ErrorMethodNotAllowed: "Method not allowed",
	ErrorBadRequest:       "Bad request",
	ErrorInternal:         "Internal error, please try again later",
}
