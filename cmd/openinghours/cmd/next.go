package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	openinghours "github.com/Xevion/go-openinghours"
)

func newNextCmd(o *options) *cobra.Command {
	var (
		at      string
		horizon time.Duration
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show when each venue next opens and closes",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := instant(at)
			if err != nil {
				return err
			}
			if err := checkHorizon(horizon); err != nil {
				return err
			}

			venues, err := o.loadVenues(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range venues {
				fmt.Fprintf(out, "%s:\n", v.name)
				fmt.Fprintf(out, "  opens:  %s\n", describe(v.hours.NextOpenWithin(t, horizon)))
				fmt.Fprintf(out, "  closes: %s\n", describe(v.hours.NextCloseWithin(t, horizon)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "instant to search from, RFC 3339 (default: now)")
	cmd.Flags().DurationVar(&horizon, "horizon", defaultHorizon(), "how far ahead to search, e.g. 72h")
	return cmd
}

func describe(next time.Time, err error) string {
	if errors.Is(err, openinghours.ErrNoTransition) {
		return "not within horizon"
	}
	return next.Format(time.RFC3339)
}
