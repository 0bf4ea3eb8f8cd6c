package audit

import (
	"github.com/wichananm65/wp-envconfig/internal/envfile"
	"github.com/wichananm65/wp-envconfig/internal/wpconfig"
)

// Service keeps a history of configuration loads.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Record stores the shape of set. overlay may be nil when no file was consulted.
func (s *Service) Record(set *wpconfig.Set, overlay *envfile.Overlay) (LoadRecord, error) {
	rec := LoadRecord{
		ID:          set.LoadID(),
		Environment: set.Environment(),
		Keys:        set.Keys(),
		LoadedAt:    set.LoadedAt(),
	}
	if overlay != nil {
		rec.EnvFile = overlay.Path
		rec.EnvFileFound = overlay.Found
	}
	if err := s.repo.Save(rec); err != nil {
		return LoadRecord{}, err
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (s *Service) Recent(limit int) ([]LoadRecord, error) {
	return s.repo.List(limit)
}
