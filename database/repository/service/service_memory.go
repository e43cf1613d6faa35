package serviceRepo

import (
	"context"
	"sync"
	"time"

	"shoecare/models"
)

var _ ServiceRepository = (*MemoryServiceRepo)(nil)

// MemoryServiceRepo keeps services in process memory. It applies the same defaults and validation as the Mongo repository.
type MemoryServiceRepo struct {
	mu       sync.Mutex
	services []models.ServiceRecord
	now      func() time.Time
}

// NewMemoryServiceRepo returns an empty in-memory repository.
func NewMemoryServiceRepo(seed ...models.ServiceRecord) *MemoryServiceRepo {
	return &MemoryServiceRepo{
		services: cloneAll(seed),
		now:      time.Now,
	}
}

// EnsureSchema has nothing to prepare; validation runs on every insert.
func (r *MemoryServiceRepo) EnsureSchema(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryServiceRepo) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.services))
	r.services = nil
	return n, nil
}

func (r *MemoryServiceRepo) InsertMany(ctx context.Context, records []models.ServiceRecord) ([]models.ServiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepared, err := prepareBatch(records, r.now().UTC())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = append(r.services, cloneAll(prepared)...)
	return prepared, nil
}

func (r *MemoryServiceRepo) GetAll(ctx context.Context) ([]models.ServiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.services), nil
}

func (r *MemoryServiceRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.services)), nil
}

func cloneAll(in []models.ServiceRecord) []models.ServiceRecord {
	out := make([]models.ServiceRecord, len(in))
	for i, rec := range in {
		rec.Features = append([]string(nil), rec.Features...)
		out[i] = rec
	}
	return out
}
