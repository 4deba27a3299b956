package domain

import "time"

// TemplateCategory enumerates the kinds of application emails a template
// is written for.
type TemplateCategory string

const (
	TemplateColdApplication TemplateCategory = "cold-application"
	TemplateReferral        TemplateCategory = "referral"
	TemplateFollowUp        TemplateCategory = "follow-up"
	TemplateInternship      TemplateCategory = "internship"
	TemplateExperienced     TemplateCategory = "experienced"
)

// ValidTemplateCategory reports whether c is a known category.
func ValidTemplateCategory(c TemplateCategory) bool {
	switch c {
	case TemplateColdApplication, TemplateReferral, TemplateFollowUp,
		TemplateInternship, TemplateExperienced:
		return true
	}
	return false
}

// EmailTemplate is a reusable application email with {{placeholder}}
// variables in its subject and body.
//
// ID is unique and immutable after creation. UpdatedAt advances on every
// mutation.
type EmailTemplate struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Subject   string           `json:"subject"`
	Body      string           `json:"body"`
	Category  TemplateCategory `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
