package maillog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/kvstore"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

const storeKey = "email-logs"

// Service manages the send log. All public methods are safe for
// concurrent use.
type Service struct {
	mu        sync.RWMutex
	store     kvstore.Store
	logs      []domain.EmailLog
	listeners []func()
	now       func() time.Time
}

// NewService loads the log from the store. A missing key or a read
// failure yields an empty log.
func NewService(ctx context.Context, store kvstore.Store) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}

	var loaded []domain.EmailLog
	if err := store.Get(ctx, storeKey, &loaded); err != nil {
		if err != kvstore.ErrNotFound {
			logger.Warn("loading email logs failed, starting empty", "error", err)
		}
	} else {
		s.logs = loaded
	}

	return s
}

// AddInput holds the snapshot fields for a new log entry.
type AddInput struct {
	RecipientID    string           `json:"recipient_id"`
	RecipientEmail string           `json:"recipient_email"`
	RecipientName  string           `json:"recipient_name"`
	Company        string           `json:"company"`
	TemplateID     string           `json:"template_id"`
	TemplateName   string           `json:"template_name"`
	Status         domain.LogStatus `json:"status"`
	Error          string           `json:"error"`
}

// List returns all entries, newest first.
func (s *Service) List(_ context.Context) []domain.EmailLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EmailLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// Get returns one entry by ID.
func (s *Service) Get(_ context.Context, id string) (*domain.EmailLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.logs {
		if s.logs[i].ID == id {
			l := s.logs[i]
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

// ByStatus returns entries with the given status, newest first.
func (s *Service) ByStatus(_ context.Context, status domain.LogStatus) ([]domain.EmailLog, error) {
	if !domain.ValidLogStatus(status) {
		return nil, ErrInvalidStatus
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.EmailLog
	for _, l := range s.logs {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

// Add prepends a new entry so the log stays newest-first.
func (s *Service) Add(ctx context.Context, input AddInput) (*domain.EmailLog, error) {
	if !domain.ValidLogStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	l := domain.EmailLog{
		ID:             uuid.New().String(),
		RecipientID:    input.RecipientID,
		RecipientEmail: input.RecipientEmail,
		RecipientName:  input.RecipientName,
		Company:        input.Company,
		TemplateID:     input.TemplateID,
		TemplateName:   input.TemplateName,
		Status:         input.Status,
		SentAt:         s.now(),
		Error:          input.Error,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append([]domain.EmailLog{l}, s.logs...)
	if err := s.persist(ctx); err != nil {
		s.logs = s.logs[1:]
		return nil, err
	}
	s.notifyLocked()
	return &l, nil
}

// Subscribe registers fn to run after every successful mutation.
// Listeners run with the service lock held and must not call back into
// the Service.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// UpdateStatus moves an entry through the transition graph. The errMsg
// replaces the stored error; OpenedAt is stamped when entering "opened"
// and never cleared afterwards. An unknown id is a no-op and returns a
// nil entry.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.LogStatus, errMsg string) (*domain.EmailLog, error) {
	if !domain.ValidLogStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ID != id {
			continue
		}
		if !domain.CanTransition(s.logs[i].Status, status) {
			return nil, ErrInvalidTransition
		}
		prev := s.logs[i]
		s.logs[i].Status = status
		s.logs[i].Error = errMsg
		if status == domain.LogOpened && s.logs[i].OpenedAt == nil {
			opened := s.now()
			s.logs[i].OpenedAt = &opened
		}
		if err := s.persist(ctx); err != nil {
			s.logs[i] = prev
			return nil, err
		}
		s.notifyLocked()
		l := s.logs[i]
		return &l, nil
	}
	return nil, nil
}

// Stats aggregates entry counts by status.
func (s *Service) Stats(_ context.Context) domain.LogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.LogStats{Total: len(s.logs)}
	for _, l := range s.logs {
		switch l.Status {
		case domain.LogPending:
			stats.Pending++
		case domain.LogSent:
			stats.Sent++
		case domain.LogOpened:
			stats.Opened++
		case domain.LogFailed:
			stats.Failed++
		}
	}
	return stats
}

// Clear empties the log.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.logs
	s.logs = nil
	if err := s.persist(ctx); err != nil {
		s.logs = prev
		return err
	}
	s.notifyLocked()
	return nil
}

// persist writes the full log. Callers must hold the write lock.
func (s *Service) persist(ctx context.Context) error {
	return s.store.Set(ctx, storeKey, s.logs)
}

// notifyLocked fires the registered listeners. Callers must hold the
// write lock.
func (s *Service) notifyLocked() {
	for _, fn := range s.listeners {
		fn()
	}
}
