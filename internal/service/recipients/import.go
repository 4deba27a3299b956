package recipients

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignite/jobmailer/internal/csvimport"
	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

// ImportResult summarizes one CSV import.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ImportCSV adds recipients from CSV text. Rows with a missing or
// invalid email, or an email already in the list (including earlier
// rows of the same batch), are counted as skipped. The whole batch is
// persisted once.
func (s *Service) ImportCSV(ctx context.Context, csvText string) (*ImportResult, error) {
	rows, err := csvimport.Parse(csvText)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.recipients)
	for _, row := range rows {
		email := csvimport.Field(row, csvimport.EmailAliases)
		if !domain.ValidEmail(email) {
			result.Skipped++
			continue
		}
		if s.findByEmailLocked(email) != nil {
			result.Skipped++
			continue
		}

		role := csvimport.Field(row, csvimport.RoleAliases)
		if role == "" {
			role = "HR"
		}

		s.recipients = append(s.recipients, domain.Recipient{
			ID:        uuid.New().String(),
			Email:     email,
			Name:      csvimport.Field(row, csvimport.NameAliases),
			Company:   csvimport.Field(row, csvimport.CompanyAliases),
			Role:      role,
			Tags:      csvimport.SplitTags(csvimport.Field(row, csvimport.TagAliases)),
			CreatedAt: s.now(),
		})
		result.Added++
	}

	if result.Added > 0 {
		if err := s.persist(ctx); err != nil {
			s.recipients = s.recipients[:before]
			return nil, err
		}
		s.notifyLocked()
	}

	logger.Info("csv import", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}
