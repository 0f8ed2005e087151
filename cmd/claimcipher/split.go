// README: split command; groups comma-separated leg distances into travel days.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"claimcipher/internal/modules/route"
	"claimcipher/internal/types"
)

type splitOptions struct {
	legs    string
	minutes string
	maxLeg  float64
	noSplit bool
}

func newSplitCmd(root *rootOptions) *cobra.Command {
	o := &splitOptions{}
	cmd := &cobra.Command{
		Use:     "split",
		Short:   "Split a sequence of legs into travel days",
		Example: `  claimcipher split --max-leg 50 --legs 10,60,15,70 --minutes 15,70,20,80`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			legs, err := parseLegs(o.legs, o.minutes)
			if err != nil {
				return err
			}
			svc := route.NewService(nil, nil, route.Options{}, root.logger)
			r, err := svc.Split(legs, route.Settings{MaxLegMiles: o.maxLeg, SplitEnabled: !o.noSplit})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), r.Summary())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.legs, "legs", "", "comma-separated leg distances in miles")
	f.StringVar(&o.minutes, "minutes", "", "comma-separated leg durations in minutes (optional)")
	f.Float64Var(&o.maxLeg, "max-leg", 50, "a leg longer than this starts a new day")
	f.BoolVar(&o.noSplit, "no-split", false, "keep every leg in a single day")
	_ = cmd.MarkFlagRequired("legs")
	return cmd
}

// parseLegs builds legs between generated stop labels "Stop 1", "Stop 2", ...
func parseLegs(distances, minutes string) ([]route.Leg, error) {
	miles, err := parseFloats("legs", distances)
	if err != nil {
		return nil, err
	}
	mins, err := parseFloats("minutes", minutes)
	if err != nil {
		return nil, err
	}
	if len(mins) > 0 && len(mins) != len(miles) {
		return nil, types.Invalid("minutes", fmt.Sprintf("expected %d values, got %d", len(miles), len(mins)))
	}

	legs := make([]route.Leg, len(miles))
	for i, d := range miles {
		legs[i] = route.Leg{
			Origin:        fmt.Sprintf("Stop %d", i+1),
			Destination:   fmt.Sprintf("Stop %d", i+2),
			DistanceMiles: d,
		}
		if len(mins) > 0 {
			legs[i].DurationMinutes = mins[i]
		}
	}
	return legs, nil
}

func parseFloats(field, raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, types.Invalid(field, fmt.Sprintf("%q is not a number", p))
		}
		out = append(out, v)
	}
	return out, nil
}
