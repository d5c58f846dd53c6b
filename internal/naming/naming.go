// Package naming provides shared string case conversion and identifier
// sanitization utilities used by the name resolver and the classifier.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// reservedWords contains target-language keywords that cannot be used as
// identifiers. Only actual keywords are listed, not predeclared names,
// because those can be shadowed and commonly appear as type names.
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// EscapeReserved checks whether a name is a reserved keyword and escapes it
// by appending an underscore. The check is case-insensitive because
// PascalCase names like "Range" or "Type" should still be escaped.
func EscapeReserved(name string) string {
	if reservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// ToPascalCase converts a string to PascalCase.
// Any non-alphanumeric rune acts as a separator and triggers titlecasing
// of the next letter. Input is NFC-normalized first so composed and
// decomposed spellings of the same name yield the same identifier.
// Example: "user_profile" -> "UserProfile"
// Example: "login-status.v2" -> "LoginStatusV2"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range norm.NFC.String(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToTitle(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToSnakeCase converts a string to snake_case.
// Uppercase letters are prefixed with underscore and lowercased.
// Existing separators (hyphen, dot, slash) are converted to underscores.
// Example: "LoginStatus" -> "login_status"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == '.' || r == '/' {
			result.WriteRune('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToIdentifier converts an arbitrary schema name to a valid exported
// identifier: PascalCase, starting with a letter, reserved words escaped.
// Empty input yields "Type"; a leading digit gains a "T" prefix.
func ToIdentifier(s string) string {
	name := ToPascalCase(s)
	if name == "" {
		return "Type"
	}
	if first, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(first) {
		name = "T" + name
	}
	return EscapeReserved(name)
}
