package gantt

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned by ParseLocale for unsupported locales.
var ErrInvalidLocale = errors.New("locale must be one of pt-BR, en")

// Locale selects the language of timeline labels.
type Locale string

const (
	LocalePtBR Locale = "pt-BR"
	LocaleEN   Locale = "en"
)

// DefaultLocale matches the product's original audience.
const DefaultLocale = LocalePtBR

var monthNames = map[Locale][12]string{
	LocalePtBR: {
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	LocaleEN: {
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
}

// ParseLocale parses a locale name. "pt", "pt-br" and "pt_BR" all map to pt-BR.
func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) {
	case "", "pt", "pt-br":
		return LocalePtBR, nil
	case "en", "en-us", "en-gb":
		return LocaleEN, nil
	default:
		return "", ErrInvalidLocale
	}
}

func (l Locale) tag() language.Tag {
	if l == LocaleEN {
		return language.English
	}
	return language.BrazilianPortuguese
}

func (l Locale) names() [12]string {
	if names, ok := monthNames[l]; ok {
		return names
	}
	return monthNames[DefaultLocale]
}

// MonthName returns the capitalized full month name, e.g. "Março".
func (l Locale) MonthName(m time.Month) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(l.tag()).String(l.names()[m-1])
}

// ShortMonth returns the abbreviated month name, e.g. "mar" or "Mar".
func (l Locale) ShortMonth(m time.Month) string {
	short := string([]rune(l.names()[m-1])[:3])
	if l == LocaleEN {
		return cases.Title(l.tag()).String(short)
	}
	return short
}

// WeekLabel returns the header label of an ISO week, e.g. "Sem 12".
func (l Locale) WeekLabel(week int) string {
	if l == LocaleEN {
		return "W" + strconv.Itoa(week)
	}
	return "Sem " + strconv.Itoa(week)
}
