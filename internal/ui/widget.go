package ui

import (
	"errors"
	"sort"

	"survey-service/internal/domain"
	"survey-service/internal/i18n"
)

// WidgetState tracks a widget's progress through its challenge.
type WidgetState int

const (
	Unanswered WidgetState = iota
	Incorrect
	Correct
)

func (s WidgetState) String() string {
	switch s {
	case Unanswered:
		return "unanswered"
	case Incorrect:
		return "incorrect"
	case Correct:
		return "correct"
	}
	return "unknown"
}

// WidgetOptions configures where the prompt form posts and what it carries.
type WidgetOptions struct {
	MaxOperand int
	Action     string
	Hidden     map[string]string
}

// Widget presents an additive challenge and validates submitted answers.
// It is owned by a single request and is not safe for concurrent use.
type Widget struct {
	loc    i18n.Localizer
	theme  Theme
	opts   WidgetOptions
	active *prompt
	state  WidgetState
}

// prompt is the state behind one mounted prompt element.
type prompt struct {
	challenge domain.Challenge
	raw       string
	feedback  error
	solved    bool
}

func NewWidget(loc i18n.Localizer, theme Theme, opts WidgetOptions) *Widget {
	if opts.MaxOperand <= 0 {
		opts.MaxOperand = 20
	}
	return &Widget{loc: loc, theme: theme, opts: opts}
}

// Present starts a new challenge a + b and mounts its prompt into surface.
func (w *Widget) Present(surface *Surface, a, b int) error {
	return w.PresentChallenge(surface, domain.Challenge{OperandA: a, OperandB: b})
}

// PresentChallenge mounts a prompt for an already issued challenge, keeping its ID
// so the form can refer back to it. Exactly one element is mounted per call.
func (w *Widget) PresentChallenge(surface *Surface, challenge domain.Challenge) error {
	if !challenge.InRange(w.opts.MaxOperand) {
		return domain.ErrOperandOutOfRange
	}
	p := &prompt{challenge: challenge}
	w.active = p
	w.state = Unanswered
	surface.Mount(promptView(w, p))
	return nil
}

// Submit checks raw against the active challenge. It returns nil on success, or
// domain.ErrParse / domain.ErrMismatch; both leave the widget ready for another try.
// Once Correct the widget stays Correct.
func (w *Widget) Submit(raw string) error {
	if w.active == nil {
		return domain.ErrNoChallenge
	}
	err := w.active.challenge.Check(raw)
	w.record(raw, err)
	return err
}

// Notify shows the outcome of a check performed elsewhere, e.g. by the server-side verifier.
func (w *Widget) Notify(raw string, err error) {
	if w.active == nil {
		return
	}
	w.record(raw, err)
}

func (w *Widget) record(raw string, err error) {
	if err == nil {
		w.active.solved = true
		w.active.feedback = nil
		w.active.raw = ""
		w.state = Correct
		return
	}
	w.active.raw = raw
	w.active.feedback = err
	if w.state != Correct {
		w.state = Incorrect
	}
}

// State reports the widget's current state.
func (w *Widget) State() WidgetState {
	return w.state
}

// Challenge returns the active challenge.
func (w *Widget) Challenge() (domain.Challenge, bool) {
	if w.active == nil {
		return domain.Challenge{}, false
	}
	return w.active.challenge, true
}

// FeedbackKey maps a verification failure to the inline message inviting a retry.
func FeedbackKey(err error) i18n.Key {
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		return i18n.CaptchaTooMany
	case errors.Is(err, domain.ErrChallengeNotFound):
		return i18n.CaptchaExpired
	case errors.Is(err, domain.ErrParse):
		return i18n.CaptchaParseError
	case errors.Is(err, domain.ErrMismatch):
		return i18n.CaptchaMismatch
	}
	return i18n.ErrorInternal
}

type hiddenField struct {
	name, value string
}

// hiddenFields lists the extra form fields in name order.
func (w *Widget) hiddenFields() []hiddenField {
	fields := make([]hiddenField, 0, len(w.opts.Hidden))
	for name, value := range w.opts.Hidden {
		fields = append(fields, hiddenField{name: name, value: value})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })
	return fields
}
