package model

// Language is a language a course can teach.
type Language string

const (
	LanguageEnglish    Language = "English"
	LanguageSpanish    Language = "Spanish"
	LanguageFrench     Language = "French"
	LanguageGerman     Language = "German"
	LanguageItalian    Language = "Italian"
	LanguagePortuguese Language = "Portuguese"
	LanguageJapanese   Language = "Japanese"
	LanguageChinese    Language = "Chinese"
)

// Languages lists every supported language in display order.
var Languages = []Language{
	LanguageEnglish,
	LanguageSpanish,
	LanguageFrench,
	LanguageGerman,
	LanguageItalian,
	LanguagePortuguese,
	LanguageJapanese,
	LanguageChinese,
}

// Level is a proficiency level.
type Level string

const (
	LevelBeginner          Level = "Beginner"
	LevelElementary        Level = "Elementary"
	LevelIntermediate      Level = "Intermediate"
	LevelUpperIntermediate Level = "Upper Intermediate"
	LevelAdvanced          Level = "Advanced"
	LevelProficient        Level = "Proficient"
)

// Levels lists every proficiency level from lowest to highest.
var Levels = []Level{
	LevelBeginner,
	LevelElementary,
	LevelIntermediate,
	LevelUpperIntermediate,
	LevelAdvanced,
	LevelProficient,
}

// ParseLanguage reports whether s is exactly one of the supported languages.
func ParseLanguage(s string) (Language, bool) {
	for _, l := range Languages {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// ParseLevel reports whether s is exactly one of the supported levels.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}
