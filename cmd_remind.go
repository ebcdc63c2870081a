package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type RemindParams struct {
	GlobalParams
	Days     int    `descr:"Reminder horizon in days (default: due_within_days from config)" optional:"true"`
	Watch    bool   `descr:"Keep running and check on the remind_schedule cron spec" optional:"true"`
	Schedule string `descr:"Cron spec overriding remind_schedule (with --watch)" optional:"true"`
}

func remindCmd() *cobra.Command {
	return boa.NewCmdT[RemindParams]("remind").
		WithShort("Log reminders for renewals that are due soon or overdue").
		WithLong("Checks once and logs one line per upcoming renewal. With --watch, keeps running and " +
			"repeats the check on a cron schedule evaluated in the configured timezone until interrupted.").
		WithRunFunc(func(params *RemindParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				return runRemind(ctx, a, params)
			})
		}).
		ToCobra()
}

func runRemind(ctx context.Context, a *app, params *RemindParams) error {
	// Reminder lines are logged at info.
	if !a.log.IsLevelEnabled(logrus.InfoLevel) {
		a.log.SetLevel(logrus.InfoLevel)
	}

	days := params.Days
	if days <= 0 {
		days = a.cfg.DueWithinDays
	}
	reminder := &internal.Reminder{
		Store:    a.store,
		Calendar: a.cal,
		Currency: a.currency,
		Days:     days,
		Log:      a.log,
	}

	if !params.Watch {
		due, err := reminder.Check(ctx)
		if err != nil {
			return err
		}
		internal.PrintUpcomingTable(os.Stdout, due, days, a.currency)
		return nil
	}

	spec := a.cfg.RemindSchedule
	if params.Schedule != "" {
		spec = params.Schedule
	}
	scheduler, err := internal.NewScheduler(spec, reminder)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := reminder.Check(ctx); err != nil {
		return err
	}
	scheduler.Start()
	<-ctx.Done()
	a.log.Info("stopping reminder scheduler")
	scheduler.Stop()
	return nil
}
