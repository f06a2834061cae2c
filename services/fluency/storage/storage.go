package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/eduvox/backend/services/fluency/entity"
)

var ErrNotFound = errors.New("report not found")

type Storage interface {
	SaveReport(ctx context.Context, report *entity.Report) error
	GetReport(ctx context.Context, id string) (*entity.Report, error)
	// ListReports returns the owner's reports, newest first.
	ListReports(ctx context.Context, ownerID string) ([]*entity.Report, error)
}

type storage struct {
	mu      sync.RWMutex
	reports map[string]*entity.Report
}

// New returns an in-memory Storage.
func New() Storage {
	return &storage{
		reports: make(map[string]*entity.Report),
	}
}

func (s *storage) SaveReport(ctx context.Context, report *entity.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *report
	s.reports[report.ID] = &stored
	return nil
}

func (s *storage) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, exists := s.reports[id]
	if !exists {
		return nil, ErrNotFound
	}

	out := *report
	return &out, nil
}

func (s *storage) ListReports(ctx context.Context, ownerID string) ([]*entity.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*entity.Report, 0)
	for _, report := range s.reports {
		if report.OwnerID != ownerID {
			continue
		}
		out := *report
		reports = append(reports, &out)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].ID > reports[j].ID
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	return reports, nil
}
