package internal

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reminder logs upcoming renewals from a store.
type Reminder struct {
	Store    Store
	Calendar *Calendar
	Currency Currency
	Days     int
	Log      *logrus.Logger
}

// Check loads active subscriptions and logs one line per renewal due within
// r.Days. It returns what it logged.
func (r *Reminder) Check(ctx context.Context) ([]Upcoming, error) {
	subs, err := r.Store.List(ctx, false)
	if err != nil {
		return nil, err
	}
	due := DueWithin(subs, r.Calendar, r.Days)

	r.Log.WithFields(logrus.Fields{
		"today":   r.Calendar.Today().String(),
		"horizon": r.Days,
		"due":     len(due),
	}).Info("renewal check")

	for _, u := range due {
		entry := r.Log.WithFields(logrus.Fields{
			"id":      u.Subscription.ID,
			"name":    u.Subscription.Name,
			"renewal": u.Renewal.String(),
			"days":    u.Days,
			"cost":    r.Currency.FormatCents(u.Subscription.Cost),
		})
		if u.Days < 0 {
			entry.Warn("subscription renewal overdue")
		} else {
			entry.Info("subscription renewing soon")
		}
	}
	return due, nil
}

// Scheduler runs a Reminder on a cron schedule evaluated in the calendar's
// timezone.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewScheduler registers r under spec, a standard five-field cron expression.
func NewScheduler(spec string, r *Reminder) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(r.Calendar.Location()))
	_, err := c.AddFunc(spec, func() {
		if _, err := r.Check(context.Background()); err != nil {
			r.Log.WithError(err).Error("renewal check failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid remind schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c, log: r.Log}, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.WithField("next", e.Next.Format("2006-01-02 15:04 MST")).Info("reminder scheduled")
	}
}

// Stop halts the scheduler and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
