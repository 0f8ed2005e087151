// README: fee and firms commands; price a single trip against a built-in or ad-hoc policy.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"claimcipher/internal/modules/firm"
	"claimcipher/internal/modules/mileage"
	"claimcipher/internal/types"
)

const customFirmID types.ID = "custom"

type feeOptions struct {
	firmID    string
	name      string
	freeMiles float64
	rate      float64
	distance  float64
	roundTrip bool
	from      string
	to        string
	note      string
}

func newFeeCmd(root *rootOptions) *cobra.Command {
	o := &feeOptions{}
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Compute the billable mileage fee for one trip",
		Example: `  claimcipher fee --firm sedgwick --distance 40
  claimcipher fee --free-miles 50 --rate 0.67 --distance 40 --round-trip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFee(cmd, root, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.firmID, "firm", "", "built-in firm id, see the firms command")
	f.StringVar(&o.name, "name", "Custom", "firm name for an ad-hoc policy")
	f.Float64Var(&o.freeMiles, "free-miles", 0, "free miles for an ad-hoc policy")
	f.Float64Var(&o.rate, "rate", 0, "rate per mile for an ad-hoc policy")
	f.Float64Var(&o.distance, "distance", 0, "one-way distance in miles")
	f.BoolVar(&o.roundTrip, "round-trip", false, "bill the trip both ways (defaults to the firm setting)")
	f.StringVar(&o.from, "from", "Point A", "starting point label")
	f.StringVar(&o.to, "to", "Point B", "destination label")
	f.StringVar(&o.note, "note", "", "note appended to the summary")
	cmd.MarkFlagsMutuallyExclusive("firm", "rate")
	return cmd
}

func runFee(cmd *cobra.Command, root *rootOptions, o *feeOptions) error {
	store := firm.NewMemoryStore(firm.DefaultPolicies()...)
	firmID := types.ID(o.firmID)
	if firmID == "" {
		p := firm.Policy{
			ID:          customFirmID,
			Name:        o.name,
			FreeMiles:   o.freeMiles,
			RatePerMile: o.rate,
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := store.Insert(cmd.Context(), p); err != nil {
			return err
		}
		firmID = customFirmID
	}

	svc := mileage.NewService(firm.NewService(store, root.logger), nil, nil, root.logger)
	calcCmd := mileage.CalculateCommand{
		FirmID:        firmID,
		PointA:        o.from,
		PointB:        o.to,
		DistanceMiles: o.distance,
		Note:          o.note,
	}
	if cmd.Flags().Changed("round-trip") {
		calcCmd.RoundTrip = &o.roundTrip
	}
	calc, err := svc.Calculate(cmd.Context(), calcCmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), calc.Summary())
	return nil
}

func newFirmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "firms",
		Short: "List the built-in billing policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, p := range firm.DefaultPolicies() {
				trip := "one way"
				if p.RoundTripDefault {
					trip = "round trip"
				}
				fmt.Fprintf(out, "%-18s %-20s %g free  $%.2f/mi  %s\n", p.ID, p.Name, p.FreeMiles, p.RatePerMile, trip)
			}
			return nil
		},
	}
}
