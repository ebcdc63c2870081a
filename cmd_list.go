package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/spf13/cobra"
)

type ListParams struct {
	GlobalParams
	Show     string   `descr:"Which subscriptions to show" alts:"active,inactive,all" strict:"true" default:"active"`
	Category []string `descr:"Only show these categories (comma-separated)" optional:"true"`
	Sort     string   `descr:"Sort by field" alts:"renewal,name,cost,monthly" strict:"true" default:"renewal"`
	Order    string   `descr:"Sort direction" alts:"asc,desc" strict:"true" default:"asc"`
	Output   string   `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
}

func listCmd() *cobra.Command {
	return boa.NewCmdT[ListParams]("list").
		WithShort("List subscriptions sorted by next renewal").
		WithRunFunc(func(params *ListParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				return runList(ctx, a, params)
			})
		}).
		ToCobra()
}

func runList(ctx context.Context, a *app, params *ListParams) error {
	all, err := a.store.List(ctx, true)
	if err != nil {
		return err
	}
	for _, c := range params.Category {
		if _, err := internal.ParseCategory(c); err != nil {
			return err
		}
	}

	display := internal.FilterByStatus(all, params.Show)
	display = internal.FilterByCategory(display, params.Category)

	opts := internal.OutputOptions{
		ShowFilter:     params.Show,
		CategoryFilter: params.Category,
		SortField:      params.Sort,
		SortDir:        params.Order,
		Currency:       a.currency,
		Calendar:       a.cal,
	}

	if params.Output == "json" {
		internal.SortSubscriptions(display, opts)
		return internal.PrintSubscriptionsJSON(os.Stdout, display, a.cal, a.currency)
	}
	if len(all) == 0 {
		fmt.Println("No subscriptions yet. Add one with `subscription-tracker add` or `subscription-tracker presets`.")
		return nil
	}
	internal.PrintSubscriptionsTable(os.Stdout, all, display, opts)
	return nil
}

type NextParams struct {
	GlobalParams
	Days int `descr:"Horizon in days (default: due_within_days from config)" optional:"true"`
}

func nextCmd() *cobra.Command {
	return boa.NewCmdT[NextParams]("next").
		WithShort("Show renewals coming up soon, including overdue ones").
		WithRunFunc(func(params *NextParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				days := params.Days
				if days <= 0 {
					days = a.cfg.DueWithinDays
				}
				subs, err := a.store.List(ctx, false)
				if err != nil {
					return err
				}
				internal.PrintUpcomingTable(os.Stdout, internal.DueWithin(subs, a.cal, days), days, a.currency)
				return nil
			})
		}).
		ToCobra()
}
