package i18n

// Language is the closed set of languages the guide speaks.
type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
	French  Language = "fr"
	Spanish Language = "es"
)

// DefaultLanguage is the fallback for message-table lookups.
const DefaultLanguage = English

var languages = []Language{Arabic, English, French, Spanish}

var labels = map[Language]string{
	Arabic:  "العربية",
	English: "English",
	French:  "Français",
	Spanish: "Español",
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// ParseLanguage validates an inbound language code.
func ParseLanguage(code string) (Language, bool) {
	for _, lang := range languages {
		if string(lang) == code {
			return lang, true
		}
	}
	return "", false
}

// Label returns the native display name of the language.
func (l Language) Label() string {
	if label, ok := labels[l]; ok {
		return label
	}
	return string(l)
}

func (l Language) String() string {
	return string(l)
}
