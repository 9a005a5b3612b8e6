package catalog

// Store exposes the price list to handlers.
type Store interface {
	List() []Service
	FindByID(id string) (Service, bool)
	FindByName(name string) (Service, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Service
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied services.
func NewMemoryStore(items []Service) *MemoryStore {
	return &MemoryStore{items: append([]Service(nil), items...)}
}

// List returns the services in display order.
func (s *MemoryStore) List() []Service {
	return append([]Service(nil), s.items...)
}

// FindByID looks up a service by identifier.
func (s *MemoryStore) FindByID(id string) (Service, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Service{}, false
}

// FindByName looks up a service by its display name, which is what the booking form submits.
func (s *MemoryStore) FindByName(name string) (Service, bool) {
	for _, item := range s.items {
		if item.Name == name {
			return item, true
		}
	}
	return Service{}, false
}
