package seeder

import (
	"context"
	"fmt"
	"slices"

	serviceRepo "shoecare/database/repository/service"
	"shoecare/models"
)

// Drift lists how the stored catalog differs from the seed list.
type Drift struct {
	Missing    []string
	Unexpected []string
	Changed    []string
	Stored     int
	Expected   int
}

// Clean reports whether the stored catalog equals the seed list by content.
func (d *Drift) Clean() bool {
	return len(d.Missing) == 0 && len(d.Unexpected) == 0 && len(d.Changed) == 0 && d.Stored == d.Expected
}

func (d *Drift) String() string {
	if d.Clean() {
		return fmt.Sprintf("catalog in sync (%d services)", d.Stored)
	}
	return fmt.Sprintf("catalog drift: stored=%d expected=%d missing=%v unexpected=%v changed=%v",
		d.Stored, d.Expected, d.Missing, d.Unexpected, d.Changed)
}

// Verify compares the stored services with expected. Ids and timestamps are ignored.
func Verify(ctx context.Context, repo serviceRepo.ServiceRepository, expected []models.ServiceRecord) (*Drift, error) {
	stored, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	drift := &Drift{Stored: len(stored), Expected: len(expected)}
	want := make(map[string]models.ServiceRecord, len(expected))
	for _, rec := range expected {
		want[rec.Title] = rec
	}

	seen := make(map[string]bool, len(stored))
	for _, got := range stored {
		exp, ok := want[got.Title]
		switch {
		case !ok || seen[got.Title]:
			drift.Unexpected = append(drift.Unexpected, got.Title)
		case !sameContent(got, exp):
			drift.Changed = append(drift.Changed, got.Title)
		}
		seen[got.Title] = true
	}
	for _, rec := range expected {
		if !seen[rec.Title] {
			drift.Missing = append(drift.Missing, rec.Title)
		}
	}
	return drift, nil
}

func sameContent(a, b models.ServiceRecord) bool {
	popular := func(s string) string {
		if s == "" {
			return models.DefaultPopularCount
		}
		return s
	}
	return a.Description == b.Description &&
		a.Price == b.Price &&
		a.Turnaround == b.Turnaround &&
		popular(a.PopularCount) == popular(b.PopularCount) &&
		a.BackgroundImageURL == b.BackgroundImageURL &&
		a.Rating == b.Rating &&
		slices.Equal(a.Features, b.Features) &&
		a.Icon == b.Icon &&
		a.IsActive == b.IsActive
}
