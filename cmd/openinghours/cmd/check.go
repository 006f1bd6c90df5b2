package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errAllClosed = errors.New("all venues are closed")

func newCheckCmd(o *options) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Tell whether each venue is open",
		Long: `Tell whether each venue is open now, or at the instant given with --at.

Exits with an error when none of the venues is open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := instant(at)
			if err != nil {
				return err
			}
			venues, err := o.loadVenues(cmd.Context())
			if err != nil {
				return err
			}

			anyOpen := false
			for _, v := range venues {
				state := "closed"
				if v.hours.IsOpenAt(t) {
					state = "open"
					anyOpen = true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", v.name, state)
			}

			if !anyOpen {
				return errAllClosed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "instant to check, RFC 3339 (default: now)")
	return cmd
}
