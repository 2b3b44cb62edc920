package imagestore

import (
	"context"
	"fmt"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// NoopStore discards image payloads and returns a synthetic URL. Used when no
// object storage is configured.
type NoopStore struct{}

// NewNoopStore constructs the store.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) Put(_ context.Context, userID, itemID string, _ []byte) (string, error) {
	return fmt.Sprintf("memory://%s/%s", userID, itemID), nil
}

var _ wardrobe.ImageStore = (*NoopStore)(nil)
