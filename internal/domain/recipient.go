package domain

import (
	"regexp"
	"strings"
	"time"
)

// emailRegex is the syntactic email check applied at creation and import.
// Deliberately loose: one @, no whitespace, a dot in the domain part.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// NormalizeEmail lower-cases and trims an address for case-insensitive
// duplicate comparison. Stored emails keep their original casing.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Recipient is an HR contact that application emails are sent to.
//
// Email is unique (case-insensitive) within the collection; uniqueness and
// format are checked at creation and bulk-import time, not retroactively
// on edit.
type Recipient struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
	Role      string    `json:"role,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// HasTag reports whether the recipient carries the given tag.
func (r *Recipient) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
