package main

import (
	_ "time/tzdata"

	"github.com/GiGurra/boa/pkg/boa"
)

func main() {
	boa.NewCmdT[boa.NoParams]("subscription-tracker").
		WithShort("Track recurring subscriptions and their renewals").
		WithLong("Records recurring payments, projects their next renewal in a fixed civil timezone, " +
			"totals monthly spend and the yearly projection, and reminds you about upcoming renewals.").
		WithSubCmds(
			listCmd(),
			nextCmd(),
			addCmd(),
			editCmd(),
			removeCmd(),
			renewCmd(),
			remindCmd(),
			presetsCmd(),
			importCmd(),
			exportCmd(),
			detectCmd(),
		).
		Run()
}
