package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"survey-service/internal/domain"
	"survey-service/internal/i18n"
)

func newTestWidget() *Widget {
	return NewWidget(i18n.New(language.English), DefaultTheme(), WidgetOptions{Action: "/survey/captcha"})
}

func renderSurface(t *testing.T, s *Surface) string {
	t.Helper()
	return renderComponent(t, s)
}

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestWidgetPresentAndSubmit(t *testing.T) {
	w := newTestWidget()
	surface := NewSurface("captcha")
	if err := w.Present(surface, 3, 5); err != nil {
		t.Fatalf("present: %v", err)
	}
	if surface.Len() != 1 {
		t.Fatalf("expected one mounted prompt, got %d", surface.Len())
	}
	html := renderSurface(t, surface)
	if !strings.Contains(html, "<strong>3 + 5</strong>") {
		t.Fatalf("expected prompt text in %q", html)
	}
	if !strings.Contains(html, "Solve this challenge to proceed:") {
		t.Fatalf("expected localized heading in %q", html)
	}

	if err := w.Submit("7"); !errors.Is(err, domain.ErrMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if w.State() != Incorrect {
		t.Fatalf("expected incorrect, got %s", w.State())
	}
	if err := w.Submit("abc"); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if err := w.Submit("8"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if w.State() != Correct {
		t.Fatalf("expected correct, got %s", w.State())
	}
}

func TestWidgetCorrectIsTerminal(t *testing.T) {
	w := newTestWidget()
	if err := w.Present(NewSurface("s"), 1, 1); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := w.Submit("2"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := w.Submit("5"); !errors.Is(err, domain.ErrMismatch) {
		t.Fatalf("expected later submit to report mismatch, got %v", err)
	}
	if w.State() != Correct {
		t.Fatalf("expected widget to stay correct, got %s", w.State())
	}
}

func TestWidgetSubmitBeforePresent(t *testing.T) {
	w := newTestWidget()
	if err := w.Submit("1"); !errors.Is(err, domain.ErrNoChallenge) {
		t.Fatalf("expected ErrNoChallenge, got %v", err)
	}
	if w.State() != Unanswered {
		t.Fatalf("expected unanswered, got %s", w.State())
	}
}

func TestWidgetOperandRange(t *testing.T) {
	w := newTestWidget()
	surface := NewSurface("s")
	for _, tc := range [][2]int{{-1, 0}, {0, 21}, {100, 3}} {
		if err := w.Present(surface, tc[0], tc[1]); !errors.Is(err, domain.ErrOperandOutOfRange) {
			t.Fatalf("present(%d, %d): expected out of range, got %v", tc[0], tc[1], err)
		}
	}
	if surface.Len() != 0 {
		t.Fatalf("rejected presents must not mount anything, got %d", surface.Len())
	}
	if _, ok := w.Challenge(); ok {
		t.Fatalf("rejected presents must not set a challenge")
	}
}

func TestWidgetAcceptsEverySumInRange(t *testing.T) {
	for a := 0; a <= 20; a++ {
		for b := 0; b <= 20; b++ {
			w := newTestWidget()
			if err := w.Present(NewSurface("s"), a, b); err != nil {
				t.Fatalf("present(%d, %d): %v", a, b, err)
			}
			if err := w.Submit(fmt.Sprintf(" %d ", a+b)); err != nil {
				t.Fatalf("submit(%d) for %d + %d: %v", a+b, a, b, err)
			}
		}
	}
}

func TestWidgetRejectsOtherValues(t *testing.T) {
	w := newTestWidget()
	if err := w.Present(NewSurface("s"), 4, 9); err != nil {
		t.Fatalf("present: %v", err)
	}
	for x := -50; x <= 50; x++ {
		if x == 13 {
			continue
		}
		if err := w.Submit(fmt.Sprint(x)); !errors.Is(err, domain.ErrMismatch) {
			t.Fatalf("submit(%d): expected mismatch, got %v", x, err)
		}
	}
	for _, raw := range []string{"", " ", "13.0", "thirteen", "1 3", "0x0d"} {
		if err := w.Submit(raw); !errors.Is(err, domain.ErrParse) {
			t.Fatalf("submit(%q): expected parse error, got %v", raw, err)
		}
	}
}

func TestWidgetMountsOnePromptPerPresent(t *testing.T) {
	w := newTestWidget()
	surface := NewSurface("s")
	if err := w.Present(surface, 2, 2); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := w.Submit("3"); !errors.Is(err, domain.ErrMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := w.Present(surface, 6, 7); err != nil {
		t.Fatalf("present: %v", err)
	}
	if surface.Len() != 2 {
		t.Fatalf("expected two mounted prompts, got %d", surface.Len())
	}
	if w.State() != Unanswered {
		t.Fatalf("a new present should reset state, got %s", w.State())
	}
	if err := w.Submit("4"); !errors.Is(err, domain.ErrMismatch) {
		t.Fatalf("expected answer to the old challenge to mismatch, got %v", err)
	}
	if err := w.Submit("13"); err != nil {
		t.Fatalf("expected answer to the new challenge to succeed, got %v", err)
	}
}

func TestWidgetInlineFeedback(t *testing.T) {
	w := newTestWidget()
	surface := NewSurface("s")
	if err := w.PresentChallenge(surface, domain.Challenge{ID: "c-1", OperandA: 3, OperandB: 5}); err != nil {
		t.Fatalf("present: %v", err)
	}
	_ = w.Submit("<b>7</b>")
	html := renderSurface(t, surface)
	if !strings.Contains(html, "Please enter a whole number and try again.") {
		t.Fatalf("expected parse feedback in %q", html)
	}
	if strings.Contains(html, "<b>7</b>") {
		t.Fatalf("raw input must be escaped: %q", html)
	}
	if !strings.Contains(html, `name="challenge" value="c-1"`) {
		t.Fatalf("expected challenge id field in %q", html)
	}

	_ = w.Submit("7")
	html = renderSurface(t, surface)
	if !strings.Contains(html, "That is not the right answer. Please try again.") {
		t.Fatalf("expected mismatch feedback in %q", html)
	}

	_ = w.Submit("8")
	html = renderSurface(t, surface)
	if !strings.Contains(html, "Thanks! You can now take part in the survey.") {
		t.Fatalf("expected success message in %q", html)
	}
}

func TestWidgetNotifyFinnish(t *testing.T) {
	w := NewWidget(i18n.New(language.Finnish), DefaultTheme(), WidgetOptions{})
	surface := NewSurface("s")
	if err := w.Present(surface, 1, 2); err != nil {
		t.Fatalf("present: %v", err)
	}
	w.Notify("9", domain.ErrMismatch)
	html := renderSurface(t, surface)
	if !strings.Contains(html, i18n.New(language.Finnish).Text(i18n.CaptchaMismatch)) {
		t.Fatalf("expected finnish feedback in %q", html)
	}
	if w.State() != Incorrect {
		t.Fatalf("expected incorrect, got %s", w.State())
	}
}

func TestFeedbackKey(t *testing.T) {
	cases := []struct {
		err  error
		want i18n.Key
	}{
		{domain.ErrParse, i18n.CaptchaParseError},
		{domain.ErrMismatch, i18n.CaptchaMismatch},
		{domain.ErrChallengeNotFound, i18n.CaptchaExpired},
		{fmt.Errorf("%w: %w", domain.ErrTooManyAttempts, domain.ErrMismatch), i18n.CaptchaTooMany},
		{errors.New("boom"), i18n.ErrorInternal},
	}
	for _, tc := range cases {
		if got := FeedbackKey(tc.err); got != tc.want {
			t.Fatalf("FeedbackKey(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
