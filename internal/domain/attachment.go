package domain

import (
	"fmt"
	"time"
)

// AttachmentCategory enumerates what an uploaded file is used as.
type AttachmentCategory string

const (
	AttachmentResume      AttachmentCategory = "resume"
	AttachmentPortfolio   AttachmentCategory = "portfolio"
	AttachmentCoverLetter AttachmentCategory = "cover-letter"
	AttachmentOther       AttachmentCategory = "other"
)

// ValidAttachmentCategory reports whether c is a known category.
func ValidAttachmentCategory(c AttachmentCategory) bool {
	switch c {
	case AttachmentResume, AttachmentPortfolio, AttachmentCoverLetter, AttachmentOther:
		return true
	}
	return false
}

// MaxAttachmentSize is the per-file upload limit.
const MaxAttachmentSize = 10 * 1024 * 1024 // 10 MiB

// AllowedAttachmentTypes is the MIME allow-list enforced before persistence.
var AllowedAttachmentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/png":  true,
	"image/jpeg": true,
}

// Attachment is the metadata for an uploaded file. ContentRef is an opaque
// reference into the blob store (inline data reference or object key);
// nothing outside the blob store interprets it.
type Attachment struct {
	ID          string             `json:"id"`
	Filename    string             `json:"filename"`
	Category    AttachmentCategory `json:"category"`
	ContentType string             `json:"content_type"`
	Size        int64              `json:"size"`
	ContentRef  string             `json:"content_ref"`
	CreatedAt   time.Time          `json:"created_at"`
}

// FormatFileSize renders a byte count for humans (1024 base, two decimals).
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
