package audit

import "sync"

type Repository interface {
	Save(rec LoadRecord) error
	List(limit int) ([]LoadRecord, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	records []LoadRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make([]LoadRecord, 0)}
}

func (r *InMemoryRepository) Save(rec LoadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, len(rec.Keys))
	copy(keys, rec.Keys)
	rec.Keys = keys
	r.records = append(r.records, rec)
	return nil
}

// List returns the newest records first.
func (r *InMemoryRepository) List(limit int) ([]LoadRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LoadRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.records[i])
	}
	return out, nil
}
