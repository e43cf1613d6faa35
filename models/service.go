// File: models/service.go
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultPopularCount is stored when a service has no order-count label.
const DefaultPopularCount = "0 orders"

// ServiceRecord is one purchasable service in the shoe-care catalog.
type ServiceRecord struct {
	ID                 string    `bson:"id" json:"id"`
	Title              string    `bson:"title" json:"title" validate:"required"`
	Description        string    `bson:"description" json:"description" validate:"required"`
	Price              string    `bson:"price" json:"price"` // formatted, e.g. "$75"
	Turnaround         string    `bson:"turnaround" json:"turnaround"`
	PopularCount       string    `bson:"popularCount" json:"popularCount"`
	BackgroundImageURL string    `bson:"backgroundImageUrl" json:"backgroundImageUrl" validate:"required,url"`
	Rating             float64   `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	Features           []string  `bson:"features" json:"features"`
	Icon               string    `bson:"icon" json:"icon" validate:"required"`
	IsActive           bool      `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ApplyDefaults fills the fields a stored record must always carry.
func (s *ServiceRecord) ApplyDefaults(now time.Time) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.PopularCount == "" {
		s.PopularCount = DefaultPopularCount
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
}

// Validate reports the first field constraint the record breaks. Out-of-range ratings are rejected, not clamped.
func (s *ServiceRecord) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Title: s.Title, Field: fe.Field(), Rule: fe.Tag(), Value: fmt.Sprint(fe.Value())}
		}
		return fmt.Errorf("service %q: %w", s.Title, err)
	}
	return nil
}

// ValidationError describes a service record rejected before it reaches the store.
type ValidationError struct {
	Title string
	Field string
	Rule  string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("service %q: field %s fails %q (value %s)", e.Title, e.Field, e.Rule, e.Value)
}
