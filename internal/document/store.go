package document

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
)

const ContentType = "application/pdf"

// Store persists rendered documents by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ContractKey returns a fresh key for a contract document. Every render gets
// its own key so a regenerated document never overwrites the previous one.
func ContractKey(contractID uint) string {
	return fmt.Sprintf("contracts/%d/%s.pdf", contractID, uuid.NewString())
}

func errDocumentNotFound() error {
	return httperr.ErrNotFound("document_not_found", "Document introuvable.")
}

type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	m.docs[key] = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.docs[key]
	m.mu.RUnlock()

	if !ok {
		return nil, errDocumentNotFound()
	}
	return data, nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
