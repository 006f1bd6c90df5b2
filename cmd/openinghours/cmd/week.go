package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	openinghours "github.com/Xevion/go-openinghours"
)

func newWeekCmd(o *options) *cobra.Command {
	var (
		at      string
		regular bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the hours of the week",
		Long: `Print the effective hours of each day of the week containing --at,
exceptions and closing periods included. With --regular, print the regular
schedule instead, days with identical hours grouped together.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := instant(at)
			if err != nil {
				return err
			}
			venues, err := o.loadVenues(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range venues {
				fmt.Fprintf(out, "%s:\n", v.name)
				if regular {
					printRegular(out, v.hours)
					continue
				}
				week := v.hours.ForWeekOf(t)
				for _, day := range openinghours.Days() {
					fmt.Fprintf(out, "  %-9s %s\n", day.Name(), formatHours(week[day]))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "any instant in the week, RFC 3339 (default: now)")
	cmd.Flags().BoolVar(&regular, "regular", false, "print the regular schedule, grouped by identical days")
	return cmd
}

func printRegular(out io.Writer, hours *openinghours.OpeningHours) {
	for _, group := range hours.ForWeekCombined() {
		names := make([]string, len(group.Days))
		for i, day := range group.Days {
			names[i] = day.Name()
		}
		fmt.Fprintf(out, "  %s: %s\n", strings.Join(names, ", "), formatHours(group.Hours))
	}
}

func formatHours(h openinghours.OpeningHoursForDay) string {
	if h.IsEmpty() {
		return "closed"
	}
	return strings.ReplaceAll(h.String(), ",", ", ")
}
