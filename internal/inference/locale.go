// =============================================================================
// CSV Toolkit - Locale Definitions
// =============================================================================
//
// This file defines the locales used for typed-value inference. A locale
// determines:
//   - Which character acts as the decimal separator and which as the
//     grouping separator (German swaps them relative to US conventions)
//   - The ordered list of date/time layouts tried during inference
//   - The vocabulary recognized as boolean literals
//
// Locales are plain values passed explicitly into field construction; the
// engine keeps no global locale state.
//
// =============================================================================

package inference

import "strings"

// Locale describes the number, date, and boolean conventions of a country.
type Locale struct {
	// Name is the identifier used in configuration files, e.g. "de_DE".
	Name string

	// DecimalSep separates the integer and fractional part of a number.
	DecimalSep rune

	// GroupSep separates digit groups in the integer part of a number.
	GroupSep rune

	// DateLayouts is the ordered list of layouts tried during date/time
	// inference. Layouts that reproduce the input exactly win over layouts
	// that merely parse it.
	DateLayouts []string

	// TrueWords and FalseWords are the boolean vocabularies. The first
	// entry of each list is the canonical form used when formatting a
	// boolean value that has no retained raw text.
	TrueWords  []string
	FalseWords []string
}

// German is the de_DE locale: comma as decimal separator, dot as grouping
// separator, day-first date layouts. This is the locale of the DATEV and
// bank-export formats the toolkit was built for.
var German = Locale{
	Name:       "de_DE",
	DecimalSep: ',',
	GroupSep:   '.',
	DateLayouts: []string{
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
		"02.01.2006",
		"2.1.2006",
		"02.01.06",
		"2.1.06",
		"2006-01-02 15:04:05",
		"2006-01-02",
	},
	TrueWords:  []string{"true", "ja", "wahr", "yes"},
	FalseWords: []string{"false", "nein", "falsch", "no"},
}

// USEnglish is the en_US locale: dot as decimal separator, comma as grouping
// separator, month-first date layouts.
var USEnglish = Locale{
	Name:       "en_US",
	DecimalSep: '.',
	GroupSep:   ',',
	DateLayouts: []string{
		"01/02/2006 15:04:05",
		"01/02/2006 3:04 PM",
		"01/02/2006",
		"1/2/2006",
		"2006-01-02 15:04:05",
		"2006-01-02",
	},
	TrueWords:  []string{"true", "yes"},
	FalseWords: []string{"false", "no"},
}

// locales indexes the known locales by their configuration name.
var locales = map[string]Locale{
	"de_DE": German,
	"de":    German,
	"en_US": USEnglish,
	"en":    USEnglish,
}

// LocaleByName resolves a locale from its configuration name. The lookup is
// case-insensitive and accepts both the short ("de") and the long ("de_DE")
// form. The second return value reports whether the name was known.
func LocaleByName(name string) (Locale, bool) {
	loc, ok := locales[name]
	if ok {
		return loc, true
	}
	for key, l := range locales {
		if strings.EqualFold(key, name) {
			return l, true
		}
	}
	return Locale{}, false
}

// isTrueWord reports whether s is a boolean true literal in this locale.
func (l Locale) isTrueWord(s string) bool {
	return containsFold(l.TrueWords, s)
}

// isFalseWord reports whether s is a boolean false literal in this locale.
func (l Locale) isFalseWord(s string) bool {
	return containsFold(l.FalseWords, s)
}

func containsFold(words []string, s string) bool {
	for _, w := range words {
		if strings.EqualFold(w, s) {
			return true
		}
	}
	return false
}
