package language

import (
	"slices"
)

// The site is served in a closed set of languages. Japanese is the default
// and the language every published record must at minimum carry.
const (
	Japanese = "ja"
	English  = "en"
	Chinese  = "zh"

	Default = Japanese
)

var Supported = []string{Japanese, English, Chinese}

// IsSupported reports whether code belongs to the closed language set.
func IsSupported(code string) bool {
	return slices.Contains(Supported, code)
}

// Normalize returns code when supported, the default language otherwise.
func Normalize(code string) string {
	if IsSupported(code) {
		return code
	}

	return Default
}

// Text maps a language code to a translated string. Only codes from the
// closed set are meaningful; UnknownCodes surfaces anything else.
type Text map[string]string

// Get returns the variant for lang, falling back to the default language
// and then to any non-empty variant.
func (t Text) Get(lang string) string {
	if v := t[lang]; v != "" {
		return v
	}

	if v := t[Default]; v != "" {
		return v
	}

	for _, code := range Supported {
		if v := t[code]; v != "" {
			return v
		}
	}

	return ""
}

// IsEmpty reports whether no supported variant is set.
func (t Text) IsEmpty() bool {
	for _, code := range Supported {
		if t[code] != "" {
			return false
		}
	}

	return true
}

// HasDefault reports whether the default-language variant is set.
func (t Text) HasDefault() bool {
	return t[Default] != ""
}

// Columns splits a Text into the per-language columns of a record.
func (t Text) Columns() (ja, en, zh string) {
	return t[Japanese], t[English], t[Chinese]
}

// FromColumns assembles a Text from the per-language columns of a record,
// dropping empty variants.
func FromColumns(ja, en, zh string) Text {
	text := Text{}

	if ja != "" {
		text[Japanese] = ja
	}
	if en != "" {
		text[English] = en
	}
	if zh != "" {
		text[Chinese] = zh
	}

	return text
}

// Pick reduces the text to the single requested variant, applying the Get
// fallback chain. An empty code returns t unchanged.
func (t Text) Pick(code string) Text {
	if code == "" || t.IsEmpty() {
		return t
	}

	return Text{code: t.Get(code)}
}

// UnknownCodes returns the keys of t that are not in the closed set.
func (t Text) UnknownCodes() []string {
	var unknown []string

	for code := range t {
		if !IsSupported(code) {
			unknown = append(unknown, code)
		}
	}

	slices.Sort(unknown)

	return unknown
}
