package basket

import (
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one Basket per client session. Sessions are created
// lazily; ids are opaque uuids the client echoes back per request.
type Manager struct {
	mu      sync.Mutex
	baskets map[string]*Basket
}

func NewManager() *Manager {
	return &Manager{baskets: make(map[string]*Basket)}
}

var (
	managerOnce     sync.Once
	managerInstance *Manager
)

// GetManager returns the process-wide basket manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		managerInstance = NewManager()
	})
	return managerInstance
}

// Session returns the basket for id, creating id and basket as needed. The
// returned id equals the input unless a new session was opened.
func (m *Manager) Session(id string) (string, *Basket) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	b, ok := m.baskets[id]
	if !ok {
		b = New()
		m.baskets[id] = b
	}
	return id, b
}

// Drop discards a session's basket.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.baskets, id)
}
