package attachments

import (
	"errors"
	"fmt"

	"github.com/ignite/jobmailer/internal/domain"
)

// Sentinel errors for the attachment service layer.
var (
	ErrNotFound        = errors.New("attachment not found")
	ErrTooLarge        = fmt.Errorf("file too large, maximum size is %s", domain.FormatFileSize(domain.MaxAttachmentSize))
	ErrInvalidType     = errors.New("invalid file type, allowed: PDF, DOC, DOCX, PNG, JPG")
	ErrInvalidCategory = errors.New("invalid attachment category")
	ErrMissingFilename = errors.New("filename is required")
)
