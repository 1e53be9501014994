package registry

import (
	"anonymity-service/domain"
	"fmt"
)

// MemoryStore keeps messages in a slice indexed by identifier.
type MemoryStore struct {
	messages []domain.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(msg domain.Message) error {
	if msg.ID != uint64(len(m.messages)) {
		return fmt.Errorf("non sequential id %d, expected %d", msg.ID, len(m.messages))
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MemoryStore) Get(id uint64) (domain.Message, bool, error) {
	if id >= uint64(len(m.messages)) {
		return domain.Message{}, false, nil
	}
	return m.messages[id], true, nil
}

func (m *MemoryStore) Len() int {
	return len(m.messages)
}
