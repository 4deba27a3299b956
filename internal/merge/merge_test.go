package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/jobmailer/internal/domain"
)

func TestMergeCaseInsensitive(t *testing.T) {
	out := Merge("Dear {{Name}}, welcome {{NAME}} {{name}}", map[string]string{"name": "Dana"})
	assert.Equal(t, "Dear Dana, welcome Dana Dana", out)
}

func TestMergeUnboundLeftVerbatim(t *testing.T) {
	out := Merge("Hi {{name}}, re {{job_role}} at {{company}}", map[string]string{"name": "Dana"})
	assert.Equal(t, "Hi Dana, re {{job_role}} at {{company}}", out)
}

func TestMergeReplacesAllOccurrences(t *testing.T) {
	vars := map[string]string{"company": "Acme"}
	out := Merge("{{company}} is hiring. Join {{company}} today.", vars)
	assert.Equal(t, "Acme is hiring. Join Acme today.", out)
}

func TestMergeValueNotRescanned(t *testing.T) {
	vars := map[string]string{"name": "{{company}}", "company": "Acme"}
	out := Merge("{{name}}", vars)
	assert.Equal(t, "{{company}}", out)
}

func TestPlaceholders(t *testing.T) {
	names := Placeholders("Hi {{name}}, {{ company }} needs {{name}}")
	assert.Equal(t, []string{"name", "company"}, names)

	assert.Empty(t, Placeholders("no tokens here"))
}

func TestRecipientVars(t *testing.T) {
	r := &domain.Recipient{Name: "Dana", Email: "dana@acme.com", Company: "Acme", Role: "Recruiter"}
	now := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	vars := RecipientVars(r, now)
	assert.Equal(t, "Dana", vars["name"])
	assert.Equal(t, "Dana", vars["hr_name"])
	assert.Equal(t, "Acme", vars["company_name"])
	assert.Equal(t, "Recruiter", vars["job_role"])
	assert.Equal(t, "March 5, 2026", vars["date"])
}

func TestCombineLaterWins(t *testing.T) {
	out := Combine(
		map[string]string{"name": "Dana", "company": "Acme"},
		map[string]string{"company": "Initech"},
	)
	assert.Equal(t, "Initech", out["company"])
	assert.Equal(t, "Dana", out["name"])
}
