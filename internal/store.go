package internal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store persists subscriptions. Deleting is a soft delete: Deactivate clears
// the Active flag and the record stays available with includeInactive.
type Store interface {
	List(ctx context.Context, includeInactive bool) ([]Subscription, error)
	Get(ctx context.Context, id string) (*Subscription, error)
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	Deactivate(ctx context.Context, id string) error
	Close() error
}

// OpenStore opens the store selected by driver ("yaml" or "sqlite") at path.
func OpenStore(driver, path string, log *logrus.Logger) (Store, error) {
	if log == nil {
		log = logrus.New()
	}
	var (
		s   Store
		err error
	)
	switch driver {
	case "", "yaml":
		s, err = NewFileStore(path, log)
	case "sqlite":
		s, err = NewSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store at %s: %w", driver, path, err)
	}
	log.WithFields(logrus.Fields{"driver": driver, "path": path}).Debug("store opened")
	return s, nil
}

// prepareCreate fills in the ID and timestamps of a new record and validates it.
func prepareCreate(sub *Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	return sub.Validate()
}

// ResolveID finds the subscription whose ID equals or uniquely starts with
// prefix, so the CLI can accept the short IDs it prints.
func ResolveID(ctx context.Context, s Store, prefix string) (*Subscription, error) {
	if sub, err := s.Get(ctx, prefix); err == nil {
		return sub, nil
	}
	subs, err := s.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var match *Subscription
	for i := range subs {
		if len(prefix) >= 4 && len(subs[i].ID) >= len(prefix) && subs[i].ID[:len(prefix)] == prefix {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = &subs[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}

// sortByStartDate mirrors the listing order of the stores: oldest start first.
func sortByStartDate(subs []Subscription) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].StartDate.Before(subs[j].StartDate)
	})
}
