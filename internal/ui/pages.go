package ui

import (
	"net/url"

	"survey-service/internal/domain"
	"survey-service/internal/i18n"
)

// Page carries what every rendered page needs from the request.
type Page struct {
	Loc       i18n.Localizer
	Theme     Theme
	Footer    FooterContent
	LangLinks []LangLink
}

// LangLink switches the page to another language.
type LangLink struct {
	Lang    string
	Href    string
	Current bool
}

// SurveyView is what the survey page shows. Without a Username the page shows
// only the challenge mounted on Surface.
type SurveyView struct {
	Survey   domain.Survey
	Username string
	Surface  *Surface
	Results  domain.Results
	// Flash is an inline message from the previous form post.
	Flash      i18n.Key
	FlashError bool
}

func (v SurveyView) result(questionID string) domain.QuestionResult {
	for _, r := range v.Results.Questions {
		if r.QuestionID == questionID {
			return r
		}
	}
	return domain.QuestionResult{}
}

func pageTitle(loc i18n.Localizer, title string) string {
	site := loc.Text(i18n.SiteTitle)
	if title == "" {
		return site
	}
	return title + " | " + site
}

func flashClass(isError bool) string {
	if isError {
		return "error"
	}
	return "notice"
}

// SurveyURL is the page address of a survey.
func SurveyURL(surveyID string) string {
	return "/survey?" + url.Values{"id": {surveyID}}.Encode()
}
