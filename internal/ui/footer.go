package ui

import "survey-service/internal/i18n"

// FooterLink is one external link. Label wins over Text when set.
type FooterLink struct {
	Label i18n.Key
	Text  string
	Href  string
}

// FooterContent is the organisational content shown in every page footer.
type FooterContent struct {
	Links   []FooterLink
	Address []string
}

func DefaultFooterContent() FooterContent {
	return FooterContent{
		Links: []FooterLink{
			{Label: i18n.FooterPrivacyLink, Href: "https://digifinland.fi/tietosuoja/"},
			{Label: i18n.FooterInfoLink, Href: "https://digifinland.fi/toimintamme/polis-kansalaiskeskustelualusta/"},
			{Text: "The Computational Democracy Project", Href: "https://compdemocracy.org/Welcome/"},
			{Label: i18n.FooterSourceLink, Href: "https://github.com/compdemocracy/polis"},
		},
		Address: []string{
			"DigiFinland Oy",
			"Kuntatalo, Toinen linja 14",
			"00180 Helsinki",
		},
	}
}

func (l FooterLink) label(loc i18n.Localizer) string {
	if l.Label != "" {
		return loc.Text(l.Label)
	}
	return l.Text
}
