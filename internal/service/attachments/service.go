package attachments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/jobmailer/internal/blob"
	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/kvstore"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

const storeKey = "attachments"

// Service manages attachment metadata and content. All public methods
// are safe for concurrent use.
type Service struct {
	mu          sync.RWMutex
	store       kvstore.Store
	blobs       blob.Store
	attachments []domain.Attachment
	listeners   []func()
	now         func() time.Time
}

// NewService loads attachment metadata from the store. A missing key or
// a read failure yields an empty list.
func NewService(ctx context.Context, store kvstore.Store, blobs blob.Store) *Service {
	s := &Service{
		store: store,
		blobs: blobs,
		now:   time.Now,
	}

	var loaded []domain.Attachment
	if err := store.Get(ctx, storeKey, &loaded); err != nil {
		if err != kvstore.ErrNotFound {
			logger.Warn("loading attachments failed, starting empty", "error", err)
		}
	} else {
		s.attachments = loaded
	}

	return s
}

// List returns all attachments in upload order.
func (s *Service) List(_ context.Context) []domain.Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attachment, len(s.attachments))
	copy(out, s.attachments)
	return out
}

// Get returns one attachment's metadata by ID.
func (s *Service) Get(_ context.Context, id string) (*domain.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.attachments {
		if s.attachments[i].ID == id {
			a := s.attachments[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// ByCategory returns attachments of one category.
func (s *Service) ByCategory(_ context.Context, category domain.AttachmentCategory) []domain.Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Attachment
	for _, a := range s.attachments {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Upload validates the file, stores its bytes in the blob store, and
// persists the metadata. Size is checked before type, matching the
// order upload errors are reported to the user.
func (s *Service) Upload(ctx context.Context, filename, contentType string, category domain.AttachmentCategory, content []byte) (*domain.Attachment, error) {
	if filename == "" {
		return nil, ErrMissingFilename
	}
	if int64(len(content)) > domain.MaxAttachmentSize {
		return nil, ErrTooLarge
	}
	if !domain.AllowedAttachmentTypes[contentType] {
		return nil, ErrInvalidType
	}
	if !domain.ValidAttachmentCategory(category) {
		return nil, ErrInvalidCategory
	}

	ref, err := s.blobs.Put(ctx, filename, contentType, content)
	if err != nil {
		return nil, err
	}

	a := domain.Attachment{
		ID:          uuid.New().String(),
		Filename:    filename,
		Category:    category,
		ContentType: contentType,
		Size:        int64(len(content)),
		ContentRef:  ref,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments = append(s.attachments, a)
	if err := s.persist(ctx); err != nil {
		s.attachments = s.attachments[:len(s.attachments)-1]
		if derr := s.blobs.Delete(ctx, ref); derr != nil {
			logger.Warn("orphaned blob after failed persist", "ref", ref, "error", derr)
		}
		return nil, err
	}
	s.notifyLocked()

	logger.Info("attachment uploaded", "filename", filename, "size", domain.FormatFileSize(a.Size))
	return &a, nil
}

// Subscribe registers fn to run after every successful mutation.
// Listeners run with the service lock held and must not call back into
// the Service.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Content resolves an attachment's bytes from the blob store.
func (s *Service) Content(ctx context.Context, id string) (*domain.Attachment, []byte, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.blobs.Get(ctx, a.ContentRef)
	if err != nil {
		return nil, nil, err
	}
	return a, content, nil
}

// Delete removes the metadata and discards the stored bytes. An
// unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attachments {
		if s.attachments[i].ID != id {
			continue
		}
		removed := s.attachments[i]
		s.attachments = append(s.attachments[:i], s.attachments[i+1:]...)
		if err := s.persist(ctx); err != nil {
			s.attachments = append(s.attachments[:i], append([]domain.Attachment{removed}, s.attachments[i:]...)...)
			return err
		}
		if err := s.blobs.Delete(ctx, removed.ContentRef); err != nil {
			logger.Warn("deleting blob failed", "ref", removed.ContentRef, "error", err)
		}
		s.notifyLocked()
		return nil
	}
	return nil
}

// persist writes the full metadata list. Callers must hold the write
// lock.
func (s *Service) persist(ctx context.Context) error {
	return s.store.Set(ctx, storeKey, s.attachments)
}

// notifyLocked fires the registered listeners. Callers must hold the
// write lock.
func (s *Service) notifyLocked() {
	for _, fn := range s.listeners {
		fn()
	}
}
