package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"survey-service/internal/app"
	"survey-service/internal/domain"
	"survey-service/internal/infra/memory"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
	jar    http.CookieJar
	survey domain.Survey
}

// newTestEnv serves a single survey whose challenges are always 4 + 4.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	survey := domain.Survey{
		Title: "Library services",
		Questions: []domain.Question{
			{Text: "Should the library open on Sundays?"},
			{Text: "What events would you like to see?"},
		},
	}
	survey.AssignIDs()

	surveys := app.NewSurveyService(
		memory.NewSurveyRepository(memory.NewStaticSurveyLoader(survey), time.Minute),
		memory.NewResponseStore(),
		memory.NewFeedStore(),
	)
	captcha := app.NewCaptchaServiceWithRand(memory.NewChallengeStore(), app.CaptchaOptions{
		MaxOperand:  20,
		MaxAttempts: 3,
		TTL:         time.Minute,
	}, func(int) int { return 4 })

	handler := NewHandler(Options{
		Captcha:  captcha,
		Surveys:  surveys,
		Sessions: NewSessionStore([]byte("0123456789abcdef0123456789abcdef"), false),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &testEnv{
		server: server,
		client: &http.Client{Jar: jar, Timeout: 5 * time.Second},
		jar:    jar,
		survey: survey,
	}
}

func (e *testEnv) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return decodeJSON(t, resp)
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := e.client.Post(e.server.URL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return decodeJSON(t, resp)
}

func (e *testEnv) getPage(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readBody(t, resp)
}

// enroll solves a challenge through the JSON API and returns the participant name.
func (e *testEnv) enroll(t *testing.T) string {
	t.Helper()
	if status, _ := e.getJSON(t, "/api/newcaptcha"); status != http.StatusOK {
		t.Fatalf("newcaptcha: status %d", status)
	}
	status, body := e.postJSON(t, "/api/submitcaptcha", map[string]any{"id": e.survey.ID, "calculated_result": 8})
	if status != http.StatusOK {
		t.Fatalf("submitcaptcha: status %d body %v", status, body)
	}
	return body["username"].(string)
}

func decodeJSON(t *testing.T, resp *http.Response) (int, map[string]any) {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return resp.StatusCode, body
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(data)
}

func TestCaptchaAPIFlow(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.getJSON(t, "/api/newcaptcha")
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("unexpected newcaptcha response %d %v", status, body)
	}
	if body["number_a"] != float64(4) || body["number_b"] != float64(4) {
		t.Fatalf("expected operands 4 and 4, got %v", body)
	}

	status, body = env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": 7})
	if status != http.StatusBadRequest || body["message"] != "Bad solution" {
		t.Fatalf("expected bad solution, got %d %v", status, body)
	}
	status, body = env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": "abc"})
	if status != http.StatusBadRequest || body["message"] != "Bad solution" {
		t.Fatalf("expected bad solution for non-numeric input, got %d %v", status, body)
	}

	status, body = env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": 8})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("expected success, got %d %v", status, body)
	}
	username, _ := body["username"].(string)
	if !strings.HasPrefix(username, "user") {
		t.Fatalf("expected generated username, got %v", body["username"])
	}

	// the challenge is single use
	status, body = env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": 8})
	if status != http.StatusBadRequest || body["message"] != "Invalid request" {
		t.Fatalf("expected spent challenge to be rejected, got %d %v", status, body)
	}
}

func TestCaptchaAPITooManyAttempts(t *testing.T) {
	env := newTestEnv(t)
	env.getJSON(t, "/api/newcaptcha")

	for i := 0; i < 2; i++ {
		if status, _ := env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": 1}); status != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected 400, got %d", i, status)
		}
	}
	status, body := env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": 1})
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the third failure, got %d %v", status, body)
	}
	status, _ = env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": env.survey.ID, "calculated_result": 8})
	if status != http.StatusBadRequest {
		t.Fatalf("expected discarded challenge to be unusable, got %d", status)
	}
}

func TestSubmitCaptchaUnknownSurvey(t *testing.T) {
	env := newTestEnv(t)
	env.getJSON(t, "/api/newcaptcha")
	status, body := env.postJSON(t, "/api/submitcaptcha", map[string]any{"id": "missing", "calculated_result": 8})
	if status != http.StatusNotFound || body["message"] != "Survey not found" {
		t.Fatalf("expected survey not found, got %d %v", status, body)
	}
}

func TestAnswerVoteAndResultsAPI(t *testing.T) {
	env := newTestEnv(t)
	username := env.enroll(t)
	qid := env.survey.Questions[0].ID

	status, body := env.postJSON(t, "/api/survey", map[string]any{"id": env.survey.ID, "qid": qid, "answer": "Yes please"})
	if status != http.StatusOK {
		t.Fatalf("answer: %d %v", status, body)
	}
	status, body = env.postJSON(t, "/api/survey", map[string]any{"id": env.survey.ID, "qid": qid, "username": username, "answer": "Again"})
	if status != http.StatusConflict {
		t.Fatalf("expected conflict on second answer, got %d %v", status, body)
	}
	status, _ = env.postJSON(t, "/api/vote", map[string]any{"id": env.survey.ID, "qid": qid, "value": 1})
	if status != http.StatusOK {
		t.Fatalf("vote: %d", status)
	}
	status, body = env.postJSON(t, "/api/vote", map[string]any{"id": env.survey.ID, "qid": qid, "value": 5})
	if status != http.StatusBadRequest || body["message"] != "Invalid vote" {
		t.Fatalf("expected invalid vote, got %d %v", status, body)
	}
	status, body = env.postJSON(t, "/api/survey", map[string]any{"id": env.survey.ID, "qid": qid, "username": "user999999x", "answer": "hi"})
	if status != http.StatusNotFound {
		t.Fatalf("expected unknown participant to be rejected, got %d %v", status, body)
	}

	status, body = env.getJSON(t, "/api/results?id="+env.survey.ID)
	if status != http.StatusOK {
		t.Fatalf("results: %d", status)
	}
	results := body["results"].(map[string]any)
	if results["participants"] != float64(1) {
		t.Fatalf("expected one participant, got %v", results["participants"])
	}
	first := results["questions"].([]any)[0].(map[string]any)
	if first["votes"] != float64(1) {
		t.Fatalf("expected one vote, got %v", first["votes"])
	}
	if answers := first["answers"].([]any); len(answers) != 1 || answers[0] != "Yes please" {
		t.Fatalf("unexpected answers %v", answers)
	}
}

func TestLoginAPI(t *testing.T) {
	env := newTestEnv(t)
	username := env.enroll(t)

	other := newTestEnvClient(t, env)
	status, body := other.postJSON(t, "/api/login", map[string]any{"id": env.survey.ID, "username": username})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("expected login success, got %d %v", status, body)
	}
	status, body = other.postJSON(t, "/api/login", map[string]any{"id": env.survey.ID, "username": "nobody"})
	if status != http.StatusNotFound || body["message"] != "Username not found" {
		t.Fatalf("expected username not found, got %d %v", status, body)
	}
	status, _ = other.postJSON(t, "/api/login", map[string]any{"id": "missing", "username": username})
	if status != http.StatusNotFound {
		t.Fatalf("expected survey not found, got %d", status)
	}
}

// newTestEnvClient returns env with a fresh cookie jar, i.e. another browser.
func newTestEnvClient(t *testing.T, env *testEnv) *testEnv {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	clone := *env
	clone.jar = jar
	clone.client = &http.Client{Jar: jar, Timeout: 5 * time.Second}
	return &clone
}

func TestSurveyPageFlow(t *testing.T) {
	env := newTestEnv(t)
	surveyPath := "/survey?id=" + env.survey.ID

	status, html := env.getPage(t, surveyPath)
	if status != http.StatusOK || !strings.Contains(html, "<strong>4 + 4</strong>") {
		t.Fatalf("expected challenge on survey page, got %d %q", status, html)
	}
	if strings.Contains(html, "Should the library open on Sundays?") {
		t.Fatalf("questions must not be shown before the challenge is solved")
	}

	status, html = env.postForm(t, "/survey/captcha", url.Values{"id": {env.survey.ID}, "answer": {"7"}})
	if status != http.StatusUnprocessableEntity || !strings.Contains(html, "That is not the right answer. Please try again.") {
		t.Fatalf("expected inline mismatch, got %d %q", status, html)
	}
	status, html = env.postForm(t, "/survey/captcha", url.Values{"id": {env.survey.ID}, "answer": {"eight"}})
	if status != http.StatusUnprocessableEntity || !strings.Contains(html, "Please enter a whole number and try again.") {
		t.Fatalf("expected inline parse error, got %d %q", status, html)
	}

	status, html = env.postForm(t, "/survey/captcha", url.Values{"id": {env.survey.ID}, "answer": {"8"}})
	if status != http.StatusOK || !strings.Contains(html, "Answering as user") {
		t.Fatalf("expected survey after solving, got %d %q", status, html)
	}
	if !strings.Contains(html, "Thanks! You can now take part in the survey.") {
		t.Fatalf("expected success notice, got %q", html)
	}

	qid := env.survey.Questions[0].ID
	status, html = env.postForm(t, "/survey/vote", url.Values{"id": {env.survey.ID}, "qid": {qid}, "value": {"1"}})
	if status != http.StatusOK || !strings.Contains(html, "1 votes") {
		t.Fatalf("expected vote tally, got %d %q", status, html)
	}
	status, html = env.postForm(t, "/survey/vote", url.Values{"id": {env.survey.ID}, "qid": {qid}, "value": {"-1"}})
	if status != http.StatusOK || !strings.Contains(html, "You have already voted on this question.") {
		t.Fatalf("expected already voted notice, got %d %q", status, html)
	}

	status, html = env.postForm(t, "/survey/answer", url.Values{"id": {env.survey.ID}, "qid": {qid}, "answer": {"Saturdays too"}})
	if status != http.StatusOK || !strings.Contains(html, "Saturdays too") {
		t.Fatalf("expected answer listed, got %d %q", status, html)
	}
	status, html = env.postForm(t, "/survey/answer", url.Values{"id": {env.survey.ID}, "qid": {"nope"}, "answer": {"x"}})
	if status != http.StatusNotFound || !strings.Contains(html, "Question not found") {
		t.Fatalf("expected question not found page, got %d %q", status, html)
	}
}

func TestSurveyPageTooManyAttemptsIssuesNewChallenge(t *testing.T) {
	env := newTestEnv(t)
	env.getPage(t, "/survey?id="+env.survey.ID)
	for i := 0; i < 2; i++ {
		env.postForm(t, "/survey/captcha", url.Values{"id": {env.survey.ID}, "answer": {"1"}})
	}
	status, html := env.postForm(t, "/survey/captcha", url.Values{"id": {env.survey.ID}, "answer": {"1"}})
	if status != http.StatusUnprocessableEntity || !strings.Contains(html, "Too many attempts. Here is a new challenge.") {
		t.Fatalf("expected new challenge after too many attempts, got %d %q", status, html)
	}
	status, html = env.postForm(t, "/survey/captcha", url.Values{"id": {env.survey.ID}, "answer": {"8"}})
	if status != http.StatusOK || !strings.Contains(html, "Answering as user") {
		t.Fatalf("expected the replacement challenge to be solvable, got %d %q", status, html)
	}
}

func TestSurveyPageChallengeFromEarlierTab(t *testing.T) {
	env := newTestEnv(t)
	surveyPath := "/survey?id=" + env.survey.ID
	hidden := regexp.MustCompile(`name="challenge" value="([^"]+)"`)

	_, first := env.getPage(t, surveyPath)
	_, second := env.getPage(t, surveyPath)
	firstID := hidden.FindStringSubmatch(first)
	secondID := hidden.FindStringSubmatch(second)
	if firstID == nil || secondID == nil || firstID[1] == secondID[1] {
		t.Fatalf("expected two distinct challenges, got %v and %v", firstID, secondID)
	}

	client := *env.client
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.PostForm(env.server.URL+"/survey/captcha", url.Values{
		"id":        {env.survey.ID},
		"challenge": {firstID[1]},
		"answer":    {"8"},
	})
	if err != nil {
		t.Fatalf("POST captcha: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected the first tab's challenge to be accepted, got %d", resp.StatusCode)
	}
}

func TestAnswerFormWithoutParticipantShowsChallenge(t *testing.T) {
	env := newTestEnv(t)
	status, html := env.postForm(t, "/survey/answer", url.Values{"id": {env.survey.ID}, "qid": {env.survey.Questions[0].ID}, "answer": {"hi"}})
	if status != http.StatusOK || !strings.Contains(html, "4 + 4") {
		t.Fatalf("expected redirect to the challenge, got %d %q", status, html)
	}
}

func TestIndexAndLanguage(t *testing.T) {
	env := newTestEnv(t)
	status, html := env.getPage(t, "/")
	if status != http.StatusOK || !strings.Contains(html, "Library services") || !strings.Contains(html, "Open surveys") {
		t.Fatalf("unexpected index %d %q", status, html)
	}

	status, html = env.getPage(t, "/?lang=fi")
	if status != http.StatusOK || !strings.Contains(html, "Avoimet kyselyt") {
		t.Fatalf("expected finnish index, got %d %q", status, html)
	}
	// the choice sticks through the language cookie
	_, html = env.getPage(t, "/")
	if !strings.Contains(html, `<html lang="fi">`) {
		t.Fatalf("expected persisted finnish, got %q", html)
	}
}

func TestErrorPages(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/missing", nil)
	req.Header.Set("Accept-Language", "fi-FI,fi;q=0.9")
	resp, err := env.client.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	status, html := readBody(t, resp)
	if status != http.StatusNotFound || !strings.Contains(html, "Sivua ei löytynyt") {
		t.Fatalf("expected localized 404, got %d %q", status, html)
	}

	status, html = env.getPage(t, "/survey?id=missing")
	if status != http.StatusNotFound || !strings.Contains(html, "Survey not found") {
		t.Fatalf("expected survey 404, got %d %q", status, html)
	}

	req, _ = http.NewRequest(http.MethodDelete, env.server.URL+"/", nil)
	resp, err = env.client.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	status, html = readBody(t, resp)
	if status != http.StatusMethodNotAllowed || !strings.Contains(html, "Method not allowed") {
		t.Fatalf("expected 405 page, got %d %q", status, html)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.getJSON(t, "/healthz")
	if status != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health %d %v", status, body)
	}
}

func TestAPIErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrMismatch, http.StatusBadRequest},
		{domain.ErrChallengeNotFound, http.StatusBadRequest},
		{domain.ErrSurveyNotFound, http.StatusNotFound},
		{domain.ErrAlreadyVoted, http.StatusConflict},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got, _ := apiError(tc.err); got != tc.status {
			t.Fatalf("apiError(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}
