package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"shoecare/models"
)

// CollectionName is the collection holding the service catalog.
const CollectionName = "services"

type ServiceRepository interface {
	// EnsureSchema prepares the collection (validator, indexes). Callers run it after DeleteAll.
	EnsureSchema(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, records []models.ServiceRecord) ([]models.ServiceRecord, error)
	GetAll(ctx context.Context) ([]models.ServiceRecord, error)
	Count(ctx context.Context) (int64, error)
}

// prepareBatch copies the records, fills defaults and validates every one of them.
// Nothing is written when any record is rejected.
func prepareBatch(records []models.ServiceRecord, now time.Time) ([]models.ServiceRecord, error) {
	prepared := make([]models.ServiceRecord, len(records))
	for i, rec := range records {
		rec.Features = append([]string(nil), rec.Features...)
		rec.ApplyDefaults(now)
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d rejected: %w", i, err)
		}
		prepared[i] = rec
	}
	return prepared, nil
}
