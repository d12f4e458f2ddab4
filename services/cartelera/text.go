package cartelera

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Spanish)

// Capitalize upper-cases the first rune and locale-lowers the rest.
// cases.Title is not used on purpose: it capitalizes the first cased
// letter of a word, so "2d" would become "2D" instead of staying "2d".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + lower.String(string(r[1:]))
}

// ToTitleCase capitalizes every space-delimited word.
func ToTitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// nameCorrections fixes known upstream misspellings and locale-encoding
// artifacts in cinema display names.
var nameCorrections = map[string]string{
	"Hoyts Nuevocentro": "Hoyts Nuevo Centro",
	"Cinemark Tortugas": "Cinemark Tortuguitas",
	"Hoyts Moron":       "Hoyts Morón",
	"Cinemark Neuquen":  "Cinemark Neuquén",
}

// FixName returns the corrected display name for known cinemas, otherwise
// the name unchanged.
func FixName(name string) string {
	if fixed, ok := nameCorrections[name]; ok {
		return fixed
	}
	return name
}

// FixFeatures title-cases the first pipe-delimited segment of a feature
// tag list and applies the Y→y conjunction fix to the rest.
func FixFeatures(features string) string {
	parts := strings.Split(features, "|")
	for i, p := range parts {
		if i == 0 {
			parts[i] = ToTitleCase(p)
		} else {
			parts[i] = strings.Replace(p, "Y", "y", 1)
		}
	}
	return strings.Join(parts, "|")
}

var categoryEmojis = map[string]string{
	"Drama":     "🎭",
	"Acción":    "💥",
	"Terror":    "☠️",
	"Thriller":  "😱",
	"Animación": "🦄",
	"Aventuras": "🤠",
	"Biografia": "✍️",
	"Comedia":   "😂",
	"Policial":  "👮‍",
}

// Emoji maps a genre label to its symbol, empty when unlisted.
func Emoji(category string) string {
	return categoryEmojis[category]
}
