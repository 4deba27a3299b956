package templates

import (
	"time"

	"github.com/ignite/jobmailer/internal/domain"
)

const coldBody = `Hi {{hr_name}},

I hope this email finds you well. I'm {{your_name}}, a passionate {{your_role}} with expertise in building modern web applications.

I'm writing to express my strong interest in the {{job_role}} position at {{company_name}}. Your company's work on innovative solutions has truly impressed me.

I bring experience in:
• React, TypeScript, and modern frontend frameworks
• Building scalable and performant applications
• Collaborating with cross-functional teams

I've attached my resume for your review. I would love the opportunity to discuss how my skills align with your team's needs.

Thank you for considering my application.

Best regards,
{{your_name}}
{{your_phone}}
{{linkedin}}`

const followUpBody = `Hi {{hr_name}},

I hope you're doing well. I wanted to follow up on my application for the {{job_role}} position that I submitted last week.

I remain very interested in joining {{company_name}} and contributing to your team. Please let me know if you need any additional information from my end.

Looking forward to hearing from you.

Best regards,
{{your_name}}`

// defaultTemplates returns the starter library seeded into an empty
// store.
func defaultTemplates(now time.Time) []domain.EmailTemplate {
	return []domain.EmailTemplate{
		{
			ID:        "default-cold",
			Name:      "Cold Application - Frontend Developer",
			Subject:   "Application for {{job_role}} Position at {{company_name}}",
			Body:      coldBody,
			Category:  domain.TemplateColdApplication,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "default-followup",
			Name:      "Follow-Up Email",
			Subject:   "Following Up - {{job_role}} Application at {{company_name}}",
			Body:      followUpBody,
			Category:  domain.TemplateFollowUp,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
