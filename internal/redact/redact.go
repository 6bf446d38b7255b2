// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. This prevents accidental leakage of
// connection strings, tokens, and user emails through error messages
// bubbled up from the database driver or auth layer.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(mongodb(\+srv)?|postgres|mysql)://[^@\s]+@`)

	// JWT tokens: three base64url segments, first two starting with eyJ
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Secrets and keys in key=value or key: value form. The separator must
	// contain an actual = or : so prose like "token rejected" is left alone.
	secretRegex = regexp.MustCompile(
		`(?i)(secret|token|api[_-]?key|password|passwd)(['"]?\s*[:=]\s*['"]?)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	patternPlaceholders = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, RedactedCredentialPlaceholder},
		{jwtTokenRegex, RedactedJWTPlaceholder},
		{secretRegex, RedactedKeyPlaceholder},
		{emailRegex, RedactedEmailPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patternPlaceholders {
		result = p.pattern.ReplaceAllString(result, p.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
