package main

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/raghavtripped/subscription-tracker/internal"
	"github.com/spf13/cobra"
)

type PresetsParams struct {
	GlobalParams
	Query string `descr:"Filter presets by name" positional:"true" optional:"true"`
}

func presetsCmd() *cobra.Command {
	return boa.NewCmdT[PresetsParams]("presets").
		WithShort("List preset services and plans usable with 'add --preset'").
		WithRunFunc(func(params *PresetsParams) {
			a, err := loadAppWithoutStore(params.GlobalParams)
			if err != nil {
				fail(err)
			}
			presets := a.cfg.Catalog().Search(params.Query)
			if len(presets) == 0 {
				fail(fmt.Errorf("%w: no preset matches %q", internal.ErrUnknownPreset, params.Query))
			}
			internal.PrintPresetsTable(os.Stdout, presets, a.currency)
		}).
		ToCobra()
}
