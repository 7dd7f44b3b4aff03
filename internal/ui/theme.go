package ui

import (
	"strings"

	"github.com/a-h/templ/safehtml"
)

// Theme is the structured style configuration every renderer receives.
// Values are CSS values; Merge replaces any the sanitizer would reject with the default.
type Theme struct {
	FontFamily string      `yaml:"font_family" json:"fontFamily"`
	FontSize   string      `yaml:"font_size" json:"fontSize"`
	Background string      `yaml:"background" json:"background"`
	Text       string      `yaml:"text" json:"text"`
	Accent     string      `yaml:"accent" json:"accent"`
	MaxWidth   string      `yaml:"max_width" json:"maxWidth"`
	Footer     FooterTheme `yaml:"footer" json:"footer"`
	Widget     WidgetTheme `yaml:"widget" json:"widget"`
}

// FooterTheme styles the three-column footer.
type FooterTheme struct {
	Background     string `yaml:"background" json:"background"`
	Text           string `yaml:"text" json:"text"`
	Link           string `yaml:"link" json:"link"`
	FontSize       string `yaml:"font_size" json:"fontSize"`
	ColumnWidth    string `yaml:"column_width" json:"columnWidth"`
	ColumnMinWidth string `yaml:"column_min_width" json:"columnMinWidth"`
	PaddingY       string `yaml:"padding_y" json:"paddingY"`
	ExternalMarker string `yaml:"external_marker" json:"externalMarker"`
}

// WidgetTheme styles the challenge prompt.
type WidgetTheme struct {
	Background string `yaml:"background" json:"background"`
	Border     string `yaml:"border" json:"border"`
	Radius     string `yaml:"radius" json:"radius"`
	PromptSize string `yaml:"prompt_size" json:"promptSize"`
	ErrorText  string `yaml:"error_text" json:"errorText"`
	OKText     string `yaml:"ok_text" json:"okText"`
}

// DefaultTheme mirrors the organisation's footer palette.
func DefaultTheme() Theme {
	return Theme{
		FontFamily: `system-ui, "Segoe UI", Roboto, sans-serif`,
		FontSize:   "1rem",
		Background: "#ffffff",
		Text:       "#1b1b1b",
		Accent:     "#003d6d",
		MaxWidth:   "48rem",
		Footer: FooterTheme{
			Background:     "#003d6d",
			Text:           "#ffffff",
			Link:           "#ffffff",
			FontSize:       "0.875rem",
			ColumnWidth:    "30%",
			ColumnMinWidth: "300px",
			PaddingY:       "20px",
			ExternalMarker: "🡥",
		},
		Widget: WidgetTheme{
			Background: "#f4f7fa",
			Border:     "1px solid #003d6d",
			Radius:     "6px",
			PromptSize: "1.5rem",
			ErrorText:  "#b00020",
			OKText:     "#1e6b2f",
		},
	}
}

// Merge returns t with every empty or unsafe field taken from base.
func (t Theme) Merge(base Theme) Theme {
	return Theme{
		FontFamily: pick("font-family", t.FontFamily, base.FontFamily),
		FontSize:   pick("font-size", t.FontSize, base.FontSize),
		Background: pick("background-color", t.Background, base.Background),
		Text:       pick("color", t.Text, base.Text),
		Accent:     pick("color", t.Accent, base.Accent),
		MaxWidth:   pick("max-width", t.MaxWidth, base.MaxWidth),
		Footer: FooterTheme{
			Background:     pick("background-color", t.Footer.Background, base.Footer.Background),
			Text:           pick("color", t.Footer.Text, base.Footer.Text),
			Link:           pick("color", t.Footer.Link, base.Footer.Link),
			FontSize:       pick("font-size", t.Footer.FontSize, base.Footer.FontSize),
			ColumnWidth:    pick("width", t.Footer.ColumnWidth, base.Footer.ColumnWidth),
			ColumnMinWidth: pick("min-width", t.Footer.ColumnMinWidth, base.Footer.ColumnMinWidth),
			PaddingY:       pick("padding", t.Footer.PaddingY, base.Footer.PaddingY),
			ExternalMarker: pickText(t.Footer.ExternalMarker, base.Footer.ExternalMarker),
		},
		Widget: WidgetTheme{
			Background: pick("background-color", t.Widget.Background, base.Widget.Background),
			Border:     pick("border", t.Widget.Border, base.Widget.Border),
			Radius:     pick("border-radius", t.Widget.Radius, base.Widget.Radius),
			PromptSize: pick("font-size", t.Widget.PromptSize, base.Widget.PromptSize),
			ErrorText:  pick("color", t.Widget.ErrorText, base.Widget.ErrorText),
			OKText:     pick("color", t.Widget.OKText, base.Widget.OKText),
		},
	}
}

// pick keeps value only if the css components would render it unchanged.
func pick(property, value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" || safehtml.SanitizeCSSValue(property, value) == safehtml.InnocuousPropertyValue {
		return fallback
	}
	return value
}

func pickText(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
