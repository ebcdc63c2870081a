package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type AddParams struct {
	GlobalParams
	Name     string `descr:"Subscription name" positional:"true" optional:"true"`
	Preset   string `descr:"Create from a preset service (see 'presets')" optional:"true"`
	Plan     string `descr:"Preset plan name, required when the preset has several plans" optional:"true"`
	Cost     string `descr:"Amount charged per billing cycle" optional:"true"`
	Cycle    string `descr:"Billing cycle: Monthly, Quarterly, Bi-Annual, Yearly or Once" default:"Monthly"`
	Start    string `descr:"First payment date (YYYY-MM-DD, default: today)" optional:"true"`
	Category string `descr:"Category" default:"Other"`
	Color    string `descr:"Display color (#RRGGBB)" optional:"true"`
	Payment  string `descr:"Payment method" optional:"true"`
}

func addCmd() *cobra.Command {
	return boa.NewCmdT[AddParams]("add").
		WithShort("Add a subscription").
		WithLong("Adds a subscription, either from explicit values or from a preset service and plan.").
		WithRunFunc(func(params *AddParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				sub, err := buildSubscription(a, params)
				if err != nil {
					return err
				}
				if err := a.store.Create(ctx, sub); err != nil {
					return err
				}
				a.log.WithField("id", sub.ID).Info("subscription added")
				printSaved("Added", a, sub)
				return nil
			})
		}).
		ToCobra()
}

func buildSubscription(a *app, params *AddParams) (*internal.Subscription, error) {
	start := a.cal.Today()
	if params.Start != "" {
		var err error
		if start, err = internal.ParseDate(params.Start); err != nil {
			return nil, err
		}
	}

	var sub *internal.Subscription
	if params.Preset != "" {
		preset, err := a.cfg.Catalog().Find(params.Preset)
		if err != nil {
			return nil, err
		}
		if sub, err = preset.NewSubscription(params.Plan, start); err != nil {
			return nil, err
		}
		if params.Name != "" {
			sub.Name = strings.TrimSpace(params.Name)
		}
		if params.Cost != "" {
			if sub.Cost, err = parseCost(params.Cost); err != nil {
				return nil, err
			}
		}
	} else {
		if params.Name == "" {
			return nil, fmt.Errorf("a name is required unless --preset is given")
		}
		if params.Cost == "" {
			return nil, fmt.Errorf("--cost is required unless --preset is given")
		}
		cost, err := parseCost(params.Cost)
		if err != nil {
			return nil, err
		}
		cycle, err := internal.ParseBillingCycle(params.Cycle)
		if err != nil {
			return nil, err
		}
		category, err := internal.ParseCategory(params.Category)
		if err != nil {
			return nil, err
		}
		sub = internal.NewSubscription(params.Name, cost, cycle, start, category)
	}

	if params.Color != "" {
		sub.Color = params.Color
	}
	sub.PaymentMethod = strings.TrimSpace(params.Payment)
	return sub, sub.Validate()
}

func parseCost(s string) (float64, error) {
	cost, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q", s)
	}
	return cost, nil
}

type EditParams struct {
	GlobalParams
	ID       string `descr:"Subscription ID or unique prefix" positional:"true"`
	Name     string `descr:"New name" optional:"true"`
	Cost     string `descr:"New cost per billing cycle" optional:"true"`
	Cycle    string `descr:"New billing cycle" optional:"true"`
	Start    string `descr:"New start date (YYYY-MM-DD)" optional:"true"`
	Category string `descr:"New category" optional:"true"`
	Color    string `descr:"New display color (#RRGGBB)" optional:"true"`
	Payment  string `descr:"New payment method" optional:"true"`
	Active   string `descr:"Reactivate or deactivate" alts:"true,false" strict:"true" optional:"true"`
}

func editCmd() *cobra.Command {
	return boa.NewCmdT[EditParams]("edit").
		WithShort("Change fields of a subscription").
		WithRunFunc(func(params *EditParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				sub, err := internal.ResolveID(ctx, a.store, params.ID)
				if err != nil {
					return err
				}
				if err := applyEdits(sub, params); err != nil {
					return err
				}
				if err := a.store.Update(ctx, sub); err != nil {
					return err
				}
				a.log.WithField("id", sub.ID).Info("subscription updated")
				printSaved("Updated", a, sub)
				return nil
			})
		}).
		ToCobra()
}

func applyEdits(sub *internal.Subscription, params *EditParams) error {
	var err error
	if params.Name != "" {
		sub.Name = strings.TrimSpace(params.Name)
	}
	if params.Cost != "" {
		if sub.Cost, err = parseCost(params.Cost); err != nil {
			return err
		}
	}
	if params.Cycle != "" {
		if sub.Cycle, err = internal.ParseBillingCycle(params.Cycle); err != nil {
			return err
		}
	}
	if params.Start != "" {
		if sub.StartDate, err = internal.ParseDate(params.Start); err != nil {
			return err
		}
	}
	if params.Category != "" {
		if sub.Category, err = internal.ParseCategory(params.Category); err != nil {
			return err
		}
	}
	if params.Color != "" {
		sub.Color = params.Color
	}
	if params.Payment != "" {
		sub.PaymentMethod = strings.TrimSpace(params.Payment)
	}
	if params.Active != "" {
		sub.Active = params.Active == "true"
	}
	return nil
}

type IDParams struct {
	GlobalParams
	ID string `descr:"Subscription ID or unique prefix" positional:"true"`
}

func removeCmd() *cobra.Command {
	return boa.NewCmdT[IDParams]("remove").
		WithShort("Deactivate a subscription (it stays visible with --show all)").
		WithRunFunc(func(params *IDParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				sub, err := internal.ResolveID(ctx, a.store, params.ID)
				if err != nil {
					return err
				}
				if err := a.store.Deactivate(ctx, sub.ID); err != nil {
					return err
				}
				a.log.WithField("id", sub.ID).Info("subscription deactivated")
				fmt.Printf("Removed %s (%s)\n", sub.Name, internal.ShortID(sub.ID))
				return nil
			})
		}).
		ToCobra()
}

func renewCmd() *cobra.Command {
	return boa.NewCmdT[IDParams]("renew").
		WithShort("Mark the current billing cycle as paid").
		WithLong("Moves the start date to the next renewal, so the following renewal becomes the next one due.").
		WithRunFunc(func(params *IDParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				sub, err := internal.ResolveID(ctx, a.store, params.ID)
				if err != nil {
					return err
				}
				if err := sub.Renew(); err != nil {
					return err
				}
				if err := a.store.Update(ctx, sub); err != nil {
					return err
				}
				a.log.WithFields(logrus.Fields{"id": sub.ID, "start_date": sub.StartDate.String()}).Info("subscription renewed")
				printSaved("Renewed", a, sub)
				return nil
			})
		}).
		ToCobra()
}

func printSaved(verb string, a *app, sub *internal.Subscription) {
	status := a.cal.RenewalStatus(sub.StartDate, sub.Cycle)
	fmt.Printf("%s %s (%s): %s %s, %s\n",
		verb, sub.Name, internal.ShortID(sub.ID),
		a.currency.FormatCents(sub.Cost), sub.Cycle, status.Label)
	if sub.Cycle.Recurring() {
		fmt.Printf("Next renewal: %s\n", status.Next)
	}
}
