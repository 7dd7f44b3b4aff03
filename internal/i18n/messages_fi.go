package i18n

var finnish = map[Key]string{
	SiteTitle: "Asukaskyselyt",

	FooterWhatIs:       "Mikä tämä palvelu on?",
	FooterDescription:  "Avoin keskustelualusta, jossa asukkaat vastaavat lyhyisiin kyselyihin ja äänestävät toistensa ideoista. Osallistuminen on anonyymiä.",
	FooterPrivacyLink:  "Tietosuojaseloste",
	FooterInfoLink:     "Tietoa keskustelualustasta",
	FooterSourceLink:   "Lähdekoodi",
	FooterProvider:     "Palveluntarjoaja",
	FooterExternalHint: "avautuu uuteen välilehteen",

	CaptchaHeading:     "Ratkaise tehtävä jatkaaksesi:",
	CaptchaAnswerLabel: "Vastauksesi",
	CaptchaSubmit:      "Lähetä",
	CaptchaParseError:  "Syötä kokonaisluku ja yritä uudelleen.",
	CaptchaMismatch:    "Vastaus ei ole oikein. Yritä uudelleen.",
	CaptchaExpired:     "Tehtävä on vanhentunut. Tässä uusi tehtävä.",
	CaptchaTooMany:     "Liian monta yritystä. Tässä uusi tehtävä.",
	CaptchaSolved:      "Kiitos! Voit nyt osallistua kyselyyn.",

	SurveyListHeading:     "Avoimet kyselyt",
	SurveyListEmpty:       "Avoimia kyselyitä ei juuri nyt ole.",
	SurveyQuestionCount:   "%d kysymystä",
	SurveyParticipant:     "Vastaat nimellä %s",
	SurveyParticipants:    "%d osallistujaa",
	SurveyAnswerLabel:     "Vastauksesi",
	SurveyAnswerSubmit:    "Lähetä vastaus",
	SurveyVoteUp:          "Samaa mieltä",
	SurveyVoteDown:        "Eri mieltä",
	SurveyVotes:           "%d ääntä",
	SurveyAnswers:         "Tähänastiset vastaukset",
	SurveyAlreadyAnswered: "Olet jo vastannut tähän kysymykseen.",
	SurveyAlreadyVoted:    "Olet jo äänestänyt tästä kysymyksestä.",
	SurveyEmptyAnswer:     "Kirjoita vastaus ennen lähettämistä.",
	SurveyBack:            "Takaisin kaikkiin kyselyihin",

	ErrorHeading:          "Jotain meni pieleen",
	ErrorNotFound:         "Sivua ei löytynyt",
	ErrorSurveyNotFound:   "Kyselyä ei löytynyt",
	ErrorQuestionNotFound: "Kysymystä ei löytynyt",
	ErrorMethodNotAllowed: "Menetelmä ei ole sallittu",
	ErrorBadRequest:       "Virheellinen pyyntö",
	ErrorInternal:         "Sisäinen virhe, yritä myöhemmin uudelleen",
}
