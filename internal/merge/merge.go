package merge

import (
	"regexp"
	"strings"
	"time"

	"github.com/ignite/jobmailer/internal/domain"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Merge substitutes every {{key}} token that has a bound variable.
// Keys match case-insensitively; unbound tokens stay verbatim. The
// scan is single-pass, so substituted values are never re-expanded.
func Merge(text string, vars map[string]string) string {
	if text == "" || len(vars) == 0 {
		return text
	}
	lower := make(map[string]string, len(vars))
	for k, v := range vars {
		lower[strings.ToLower(k)] = v
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		if value, ok := lower[strings.ToLower(name)]; ok {
			return value
		}
		return token
	})
}

// Placeholders lists the distinct placeholder names in a template, in
// order of first appearance.
func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// RecipientVars builds the variable set for one recipient. Aliases are
// bound alongside the canonical names so templates written against
// either vocabulary render the same.
func RecipientVars(r *domain.Recipient, now time.Time) map[string]string {
	return map[string]string{
		"name":         r.Name,
		"hr_name":      r.Name,
		"email":        r.Email,
		"company":      r.Company,
		"company_name": r.Company,
		"position":     r.Role,
		"job_role":     r.Role,
		"date":         now.Format("January 2, 2006"),
	}
}

// SenderVars builds the variable set for the sending applicant.
func SenderVars(d domain.SenderDetails) map[string]string {
	return map[string]string{
		"your_name":  d.Name,
		"your_email": d.Email,
		"your_role":  d.Role,
		"your_phone": d.Phone,
		"linkedin":   d.LinkedIn,
		"portfolio":  d.Portfolio,
	}
}

// Combine merges variable maps left to right. Later maps win on key
// collisions, so custom notes can override standard variables.
func Combine(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
