package entity

import "strings"

// Language represents supported language codes using ISO-style abbreviations.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageGerman      Language = "de"
	LanguageEnglish     Language = "en"
	LanguageKannada     Language = "kn"
)

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// CodeOrDefault returns the language code, falling back to English when unspecified.
func (l Language) CodeOrDefault() string {
	if l.Code() == "" {
		return string(LanguageEnglish)
	}
	return l.Code()
}

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "de", "german":
		return LanguageGerman
	case "en", "english":
		return LanguageEnglish
	case "kn", "kannada":
		return LanguageKannada
	default:
		return LanguageUnspecified
	}
}

// SupportLanguage reports whether the language may be used to explain the
// target language to the learner.
func SupportLanguage(lang Language) bool {
	return lang == LanguageEnglish || lang == LanguageKannada
}

// Translation carries a phrase in the target language and both support languages.
type Translation struct {
	German  string `json:"text"`
	English string `json:"english"`
	Kannada string `json:"kannada"`
}

// In returns the text for the given language, defaulting to German.
func (t Translation) In(lang Language) string {
	switch lang {
	case LanguageEnglish:
		return t.English
	case LanguageKannada:
		return t.Kannada
	default:
		return t.German
	}
}

// Normalize trims surrounding whitespace from every variant.
func (t Translation) Normalize() Translation {
	return Translation{
		German:  strings.TrimSpace(t.German),
		English: strings.TrimSpace(t.English),
		Kannada: strings.TrimSpace(t.Kannada),
	}
}

// Bilingual carries display text in both support languages.
type Bilingual struct {
	English string `json:"english"`
	Kannada string `json:"kannada"`
}

// In returns the text for the given support language, defaulting to English.
func (b Bilingual) In(lang Language) string {
	if lang == LanguageKannada && b.Kannada != "" {
		return b.Kannada
	}
	return b.English
}

func (b Bilingual) Normalize() Bilingual {
	return Bilingual{
		English: strings.TrimSpace(b.English),
		Kannada: strings.TrimSpace(b.Kannada),
	}
}
