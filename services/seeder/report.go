package seeder

import (
	"fmt"
	"io"
	"time"

	"shoecare/models"
)

// Report summarizes a successful seed run.
type Report struct {
	RunID    string
	Deleted  int64
	Inserted []models.ServiceRecord
	Endpoint string
	Duration time.Duration
}

// Print writes the human-readable summary: one line per inserted service, then the read API hint.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Inserted %d services:\n", len(r.Inserted)); err != nil {
		return err
	}
	for _, s := range r.Inserted {
		if _, err := fmt.Fprintf(w, "  - %s: %s (rating %.1f) %s\n", s.Title, s.Price, s.Rating, s.BackgroundImageURL); err != nil {
			return err
		}
	}
	if r.Endpoint != "" {
		if _, err := fmt.Fprintf(w, "View services at: %s\n", r.Endpoint); err != nil {
			return err
		}
	}
	return nil
}
