package logger

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// piiKeys are field names whose values are redacted as email addresses.
var piiKeys = []string{"email", "recipient", "to", "from", "sender"}

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" → "jo***@example.com"
// Short local parts (≤2 chars) are fully masked: "ab@example.com" → "***@example.com"
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

// redactValue masks emails in a log field. Fields named after addresses
// are redacted wholesale; any other field has embedded addresses masked.
func redactValue(key, val string) string {
	lower := strings.ToLower(key)
	for _, k := range piiKeys {
		if strings.Contains(lower, k) {
			if strings.Contains(val, "@") {
				return RedactEmail(val)
			}
			return val
		}
	}
	return emailPattern.ReplaceAllStringFunc(val, RedactEmail)
}
