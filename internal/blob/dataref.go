package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// DataRefStore encodes content directly into the ref as a data URL.
// Nothing is stored anywhere; the ref carries the bytes. Suitable for
// single-user deployments where attachments stay under the size cap.
type DataRefStore struct{}

// NewDataRefStore creates an inline content store.
func NewDataRefStore() *DataRefStore {
	return &DataRefStore{}
}

func (s *DataRefStore) Put(_ context.Context, _, contentType string, content []byte) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(content)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}

func (s *DataRefStore) Get(_ context.Context, ref string) ([]byte, error) {
	if !strings.HasPrefix(ref, "data:") {
		return nil, ErrNotFound
	}
	_, payload, ok := strings.Cut(ref, ";base64,")
	if !ok {
		return nil, fmt.Errorf("blob: malformed data ref")
	}
	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("blob: decoding data ref: %w", err)
	}
	return content, nil
}

func (s *DataRefStore) Delete(_ context.Context, _ string) error {
	return nil
}
