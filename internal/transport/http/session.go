package http

import (
	"net/http"

	"github.com/gorilla/sessions"

	"survey-service/internal/i18n"
)

const (
	sessionName    = "survey_session"
	captchaKey     = "captcha"
	flashKey       = "flash"
	flashErrorKey  = "flash_error"
	usernamePrefix = "user:"
)

// NewSessionStore returns the signed cookie store that remembers a visitor's challenge and
// participant names between requests.
func NewSessionStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24 * 30,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// visitor wraps the session of the current request. Values are plain strings and bools so the
// default gob registrations are enough.
type visitor struct {
	session *sessions.Session
}

func (h *Handler) visitor(r *http.Request) visitor {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		// cookies signed with a rotated key decode to a fresh session
		h.logger.Debug("discarding unreadable session", "error", err)
	}
	return visitor{session: session}
}

func (v visitor) captchaID() string {
	id, _ := v.session.Values[captchaKey].(string)
	return id
}

func (v visitor) setCaptchaID(id string) {
	v.session.Values[captchaKey] = id
}

func (v visitor) clearCaptcha() {
	delete(v.session.Values, captchaKey)
}

// username returns the participant name this visitor holds for a survey.
func (v visitor) username(surveyID string) string {
	name, _ := v.session.Values[usernamePrefix+surveyID].(string)
	return name
}

func (v visitor) setUsername(surveyID, username string) {
	v.session.Values[usernamePrefix+surveyID] = username
}

func (v visitor) forget(surveyID string) {
	delete(v.session.Values, usernamePrefix+surveyID)
}

func (v visitor) setFlash(key i18n.Key, isError bool) {
	v.session.Values[flashKey] = string(key)
	v.session.Values[flashErrorKey] = isError
}

// popFlash returns and clears the pending flash message.
func (v visitor) popFlash() (i18n.Key, bool) {
	key, _ := v.session.Values[flashKey].(string)
	isError, _ := v.session.Values[flashErrorKey].(bool)
	delete(v.session.Values, flashKey)
	delete(v.session.Values, flashErrorKey)
	return i18n.Key(key), isError
}

func (v visitor) save(w http.ResponseWriter, r *http.Request) error {
	return v.session.Save(r, w)
}
