package seeder

import (
	"context"
	"fmt"
	"io"
	"time"

	serviceRepo "shoecare/database/repository/service"
	"shoecare/models"
	"shoecare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LockName is the seed lock guarding the services collection.
const LockName = serviceRepo.CollectionName

// Locker keeps two seed runs from interleaving their clear and insert steps.
type Locker interface {
	Acquire(ctx context.Context, owner string) (utils.ReleaseFunc, error)
}

// Seeder replaces the stored service catalog with a fixed list.
type Seeder struct {
	Repo     serviceRepo.ServiceRepository
	Lock     Locker
	Logger   *zap.Logger
	Out      io.Writer
	Endpoint string
}

// NewSeeder wires a seeder. A nil lock means runs are not serialized; a nil logger discards logs.
func NewSeeder(repo serviceRepo.ServiceRepository, lock Locker, logger *zap.Logger, out io.Writer, endpoint string) *Seeder {
	if lock == nil {
		lock = utils.NoopLock{}
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{Repo: repo, Lock: lock, Logger: logger, Out: out, Endpoint: endpoint}
}

// Run takes the lock, clears the collection, prepares its schema and inserts records as one batch, then prints the report.
// It does not retry and does not restore cleared records when the insert fails.
func (s *Seeder) Run(ctx context.Context, records []models.ServiceRecord) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.Logger.With(zap.String("runId", runID))

	release, err := s.Lock.Acquire(ctx, runID)
	if err != nil {
		return nil, NewSeedError(StageLock, err)
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			log.Warn("Failed to release seed lock", zap.Error(err))
		}
	}()

	deleted, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return nil, NewSeedError(StageClear, err)
	}
	log.Debug("Cleared services", zap.Int64("deleted", deleted))
	fmt.Fprintf(s.Out, "Cleared %d existing services\n", deleted)

	// Schema changes wait for the clear so leftover documents cannot break index builds.
	if err := s.Repo.EnsureSchema(ctx); err != nil {
		return nil, NewSeedError(StageSchema, err)
	}

	inserted, err := s.Repo.InsertMany(ctx, records)
	if err != nil {
		return nil, NewSeedError(StageInsert, err)
	}

	report := &Report{
		RunID:    runID,
		Deleted:  deleted,
		Inserted: inserted,
		Endpoint: s.Endpoint,
		Duration: time.Since(start),
	}
	if err := report.Print(s.Out); err != nil {
		log.Warn("Failed to print seed report", zap.Error(err))
	}
	log.Info("Seeded services",
		zap.Int("inserted", len(inserted)),
		zap.Int64("deleted", deleted),
		zap.Duration("took", report.Duration))
	return report, nil
}
