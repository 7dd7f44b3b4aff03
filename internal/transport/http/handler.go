package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"survey-service/internal/app"
	"survey-service/internal/i18n"
	"survey-service/internal/ui"
)

// Options wires the handler to its services.
type Options struct {
	Captcha  *app.CaptchaService
	Surveys  *app.SurveyService
	Sessions sessions.Store
	Theme    ui.Theme
	Footer   ui.FooterContent
	Logger   *slog.Logger
	// Checks run on /healthz, keyed by dependency name.
	Checks map[string]func(context.Context) error
}

// Handler serves the survey pages, the JSON API and the live results feed.
type Handler struct {
	captcha  *app.CaptchaService
	surveys  *app.SurveyService
	sessions sessions.Store
	theme    ui.Theme
	footer   ui.FooterContent
	logger   *slog.Logger
	checks   map[string]func(context.Context) error
	ws       *WSHandler
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		captcha:  opts.Captcha,
		surveys:  opts.Surveys,
		sessions: opts.Sessions,
		theme:    opts.Theme.Merge(ui.DefaultTheme()),
		footer:   opts.Footer,
		logger:   logger,
		checks:   opts.Checks,
	}
	if len(h.footer.Links) == 0 && len(h.footer.Address) == 0 {
		h.footer = ui.DefaultFooterContent()
	}
	h.ws = NewWSHandler(opts.Surveys, func(r *http.Request, surveyID string) string {
		return h.visitor(r).username(surveyID)
	}, logger)
	return h
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(locale)

	r.Get("/", h.index)
	r.Get("/survey", h.surveyPage)
	r.Post("/survey/captcha", h.submitCaptchaForm)
	r.Post("/survey/answer", h.answerForm)
	r.Post("/survey/vote", h.voteForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/newcaptcha", h.newCaptcha)
		r.Post("/submitcaptcha", h.submitCaptcha)
		r.Post("/login", h.login)
		r.Post("/survey", h.answer)
		r.Post("/vote", h.vote)
		r.Get("/results", h.results)
	})

	r.Get("/ws", h.ws.ServeWS)
	r.Get("/healthz", h.health)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.errorPage(w, r, http.StatusNotFound, i18n.ErrorNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.errorPage(w, r, http.StatusMethodNotAllowed, i18n.ErrorMethodNotAllowed)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	code := http.StatusOK
	if len(h.checks) > 0 {
		checks := make(map[string]string, len(h.checks))
		for name, check := range h.checks {
			if err := check(r.Context()); err != nil {
				h.logger.Warn("health check failed", "check", name, "error", err)
				checks[name] = "unreachable"
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		status["checks"] = checks
	}
	JSON(w, code, status)
}

// page collects what every HTML page needs for this request.
func (h *Handler) page(r *http.Request) ui.Page {
	loc := localizerFrom(r.Context())
	links := make([]ui.LangLink, 0, len(i18n.Supported()))
	for _, tag := range i18n.Supported() {
		q := r.URL.Query()
		q.Set(i18n.LangParam, tag.String())
		links = append(links, ui.LangLink{
			Lang:    tag.String(),
			Href:    r.URL.Path + "?" + q.Encode(),
			Current: tag == loc.Tag(),
		})
	}
	return ui.Page{Loc: loc, Theme: h.theme, Footer: h.footer, LangLinks: links}
}

// render buffers c so a failed render still turns into a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("render page", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) errorPage(w http.ResponseWriter, r *http.Request, status int, message i18n.Key) {
	h.render(w, r, status, ui.ErrorPage(h.page(r), status, message))
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"success":false,"message":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON failure response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, apiResponse{Success: false, Message: message})
}
