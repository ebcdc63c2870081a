package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups subscriptions for display and filtering.
type Category string

const (
	CategoryEntertainment Category = "Entertainment"
	CategoryUtility       Category = "Utility"
	CategoryFood          Category = "Food"
	CategoryHealth        Category = "Health"
	CategoryMusic         Category = "Music"
	CategoryGaming        Category = "Gaming"
	CategoryNews          Category = "News"
	CategoryOther         Category = "Other"
)

// AllCategories lists the valid categories in display order.
var AllCategories = []Category{
	CategoryEntertainment, CategoryUtility, CategoryFood, CategoryHealth,
	CategoryMusic, CategoryGaming, CategoryNews, CategoryOther,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

const (
	DefaultIconKey = "custom"
	DefaultColor   = "#6366F1"
)

// Subscription is a tracked recurring (or one-time) payment.
type Subscription struct {
	ID            string       `yaml:"id" json:"id"`
	Name          string       `yaml:"name" json:"name" validate:"required,max=100"`
	Cost          float64      `yaml:"cost" json:"cost" validate:"gte=0"`
	Cycle         BillingCycle `yaml:"billing_cycle" json:"billing_cycle" validate:"billing_cycle"`
	StartDate     CivilDate    `yaml:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	Category      Category     `yaml:"category" json:"category" validate:"required,oneof=Entertainment Utility Food Health Music Gaming News Other"`
	IconKey       string       `yaml:"icon_key,omitempty" json:"icon_key,omitempty"`
	Color         string       `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,hexcolor"`
	PaymentMethod string       `yaml:"payment_method,omitempty" json:"payment_method,omitempty" validate:"max=100"`
	Active        bool         `yaml:"active" json:"active"`
	CreatedAt     time.Time    `yaml:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `yaml:"updated_at" json:"updated_at"`
}

// NewSubscription returns an active subscription with a fresh ID and defaults
// for the presentation fields.
func NewSubscription(name string, cost float64, cycle BillingCycle, start CivilDate, category Category) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Cost:      cost,
		Cycle:     cycle,
		StartDate: start,
		Category:  category,
		IconKey:   DefaultIconKey,
		Color:     DefaultColor,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MonthlyCost returns the subscription's cost normalized to one month.
func (s *Subscription) MonthlyCost() float64 {
	return MonthlyCost(s.Cost, s.Cycle)
}

// NextRenewal returns the renewal date following the start date.
func (s *Subscription) NextRenewal() CivilDate {
	return NextRenewal(s.StartDate, s.Cycle)
}

// Renew marks the current cycle as paid by moving the start date to the next
// renewal. One-time payments can't be renewed.
func (s *Subscription) Renew() error {
	if !s.Cycle.Recurring() {
		return fmt.Errorf("renewing %q: %w", s.Name, ErrOneTimePayment)
	}
	s.StartDate = s.NextRenewal()
	s.UpdatedAt = time.Now().UTC()
	return nil
}
