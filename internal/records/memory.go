package records

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/admin-panel-kit/attachment-service/internal/models"
)

// MemoryStore implements Store on a plain map. It backs the test suites and
// local development without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.FileRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.FileRecord)}
}

func (m *MemoryStore) Create(_ context.Context, record *models.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = *record
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (models.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, exists := m.records[id]
	if !exists {
		return models.FileRecord{}, ErrNotFound
	}
	return record, nil
}

func (m *MemoryStore) FindByFingerprint(_ context.Context, fingerprint, name string) (models.FileRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.records {
		if record.Fingerprint == fingerprint && record.Name == name && record.Status != models.StatusRemoved {
			return record, true, nil
		}
	}
	return models.FileRecord{}, false, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, ids []string, status int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, id := range ids {
		if record, exists := m.records[id]; exists {
			record.Status = status
			m.records[id] = record
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) UpdateContent(_ context.Context, id, name, fingerprint, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, exists := m.records[id]
	if !exists {
		return ErrNotFound
	}
	record.Name = name
	record.Fingerprint = fingerprint
	record.Reference = reference
	m.records[id] = record
	return nil
}

func (m *MemoryStore) matches(record models.FileRecord, filters ListFilters) bool {
	if record.Status <= 0 {
		return false
	}
	if filters.Name != "" && !strings.Contains(record.Name, filters.Name) {
		return false
	}
	if filters.Status != 0 && record.Status != filters.Status {
		return false
	}
	if !filters.DateStart.IsZero() && record.CreatedAt.Before(filters.DateStart) {
		return false
	}
	if !filters.DateEnd.IsZero() && record.CreatedAt.After(filters.DateEnd) {
		return false
	}
	return true
}

func (m *MemoryStore) List(_ context.Context, filters ListFilters, current, pageSize int) ([]models.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []models.FileRecord
	for _, record := range m.records {
		if m.matches(record, filters) {
			files = append(files, record)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].SortOrder != files[j].SortOrder {
			return files[i].SortOrder > files[j].SortOrder
		}
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})

	if current < 1 {
		current = 1
	}
	offset := (current - 1) * pageSize
	if offset >= len(files) {
		return nil, nil
	}
	end := offset + pageSize
	if end > len(files) {
		end = len(files)
	}
	return files[offset:end], nil
}

func (m *MemoryStore) Count(_ context.Context, filters ListFilters) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, record := range m.records {
		if m.matches(record, filters) {
			total++
		}
	}
	return total, nil
}
