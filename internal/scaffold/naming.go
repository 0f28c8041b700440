package scaffold

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Pascal converts any casing to PascalCase ("user-card" -> "UserCard").
func Pascal(s string) string {
	return strcase.ToCamel(s)
}

// Camel converts any casing to camelCase ("use-counter" -> "useCounter").
func Camel(s string) string {
	return strcase.ToLowerCamel(s)
}

// Snake converts any casing to snake_case ("firstName" -> "first_name").
func Snake(s string) string {
	return strcase.ToSnake(s)
}

// Kebab converts any casing to kebab-case ("UserCard" -> "user-card").
func Kebab(s string) string {
	return strcase.ToKebab(s)
}

// Title converts any casing to space separated title words ("user-card" -> "User Card").
func Title(s string) string {
	words := strings.Fields(strings.ReplaceAll(Snake(s), "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

var irregularPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"tooth":  "teeth",
	"foot":   "feet",
	"mouse":  "mice",
	"goose":  "geese",
}

// Plural returns a naive English plural of word.
func Plural(word string) string {
	if p, ok := irregularPlurals[strings.ToLower(word)]; ok {
		return p
	}
	n := len(word)
	switch {
	case n > 1 && strings.HasSuffix(word, "y") && !strings.ContainsRune("aeiou", rune(word[n-2])):
		return word[:n-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"), strings.HasSuffix(word, "z"),
		strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// IsGoIdentifier reports whether name is a valid, non-keyword Go identifier.
func IsGoIdentifier(name string) bool {
	return token.IsIdentifier(name) && !token.IsKeyword(name)
}

// namePattern is the input accepted for generated identifiers. strcase drops
// anything outside ASCII letters and digits, so other runes are refused.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ExportedName returns the PascalCase identifier of name. ok is false when
// name is not plain ASCII or does not case to an exported Go identifier.
func ExportedName(name string) (string, bool) {
	if !namePattern.MatchString(name) {
		return "", false
	}
	pascal := Pascal(name)
	return pascal, IsGoIdentifier(pascal) && token.IsExported(pascal)
}

var packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// IsPackageName reports whether name is usable as an npm package directory.
func IsPackageName(name string) bool {
	return packageNamePattern.MatchString(name)
}
