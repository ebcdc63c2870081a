package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/spf13/cobra"
)

type DetectParams struct {
	GlobalParams
	File      string  `descr:"Transaction file; prefix with format: to force a parser (e.g. simple-json:data.json)" positional:"true"`
	Source    string  `descr:"Transaction file format (default: from prefix or extension)" alts:"simple-json,xlsx" strict:"true" optional:"true"`
	Tolerance float64 `descr:"Max price change between consecutive payments (0.35 = 35%)" optional:"true"`
	Category  string  `descr:"Category for imported subscriptions" default:"Other"`
	Save      bool    `descr:"Add active detected subscriptions to the store" optional:"true"`
}

func detectCmd() *cobra.Command {
	return boa.NewCmdT[DetectParams]("detect").
		WithShort("Detect recurring payments in bank transactions").
		WithLong("Finds payees charged on a monthly, quarterly, half-yearly or yearly cadence with " +
			"similar amounts, and optionally adds the active ones as subscriptions.").
		WithRunFunc(func(params *DetectParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				return runDetect(ctx, a, params)
			})
		}).
		ToCobra()
}

func runDetect(ctx context.Context, a *app, params *DetectParams) error {
	parser, path, err := internal.ParserForFile(params.Source, params.File)
	if err != nil {
		return err
	}
	txs, err := parser.Parse(path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	a.log.WithField("transactions", len(txs)).Debug("transactions loaded")

	tolerance := params.Tolerance
	if tolerance <= 0 {
		tolerance = internal.DefaultTolerance
	}
	candidates := internal.DetectRecurring(txs, tolerance)
	if len(candidates) == 0 {
		fmt.Println("No recurring payments detected.")
		return nil
	}
	internal.PrintCandidatesTable(os.Stdout, candidates, a.currency)

	if !params.Save {
		return nil
	}
	category, err := internal.ParseCategory(params.Category)
	if err != nil {
		return err
	}
	saved := 0
	for _, c := range candidates {
		if !c.Active {
			continue
		}
		sub := c.ToSubscription(category)
		if err := a.store.Create(ctx, sub); err != nil {
			return fmt.Errorf("adding %s: %w", sub.Name, err)
		}
		saved++
	}
	fmt.Printf("\nAdded %d active subscriptions\n", saved)
	return nil
}
