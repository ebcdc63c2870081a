package main

import (
	"context"
	"fmt"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/spf13/cobra"
)

type ExportParams struct {
	GlobalParams
	File string `descr:"Path of the xlsx file to write" positional:"true"`
	All  bool   `descr:"Include inactive subscriptions" optional:"true"`
}

func exportCmd() *cobra.Command {
	return boa.NewCmdT[ExportParams]("export").
		WithShort("Export subscriptions to an Excel workbook").
		WithRunFunc(func(params *ExportParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				subs, err := a.store.List(ctx, params.All)
				if err != nil {
					return err
				}
				internal.SortByRenewal(subs, a.cal)
				if err := internal.ExportWorkbook(params.File, subs, a.cal); err != nil {
					return err
				}
				fmt.Printf("Exported %d subscriptions to %s\n", len(subs), params.File)
				return nil
			})
		}).
		ToCobra()
}

type ImportParams struct {
	GlobalParams
	File   string `descr:"Path of the xlsx file to read" positional:"true"`
	DryRun bool   `descr:"Validate and show what would be imported without saving" optional:"true"`
}

func importCmd() *cobra.Command {
	return boa.NewCmdT[ImportParams]("import").
		WithShort("Import subscriptions from an Excel workbook").
		WithLong("Reads a workbook with at least Name, Cycle, Cost and Start Date columns, " +
			"such as one written by 'export', and adds every row as a new subscription.").
		WithRunFunc(func(params *ImportParams) {
			run(params.GlobalParams, func(ctx context.Context, a *app) error {
				subs, err := internal.ImportWorkbook(params.File)
				if err != nil {
					return fmt.Errorf("importing %s: %w", params.File, err)
				}
				a.log.WithField("rows", len(subs)).Debug("workbook read")
				for _, sub := range subs {
					if params.DryRun {
						printSaved("Would add", a, sub)
						continue
					}
					if err := a.store.Create(ctx, sub); err != nil {
						return fmt.Errorf("adding %s: %w", sub.Name, err)
					}
				}
				if !params.DryRun {
					fmt.Printf("Imported %d subscriptions from %s\n", len(subs), params.File)
				}
				return nil
			})
		}).
		ToCobra()
}
