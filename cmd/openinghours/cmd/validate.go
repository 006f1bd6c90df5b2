package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errInvalidConfig = errors.New("invalid configuration")

func newValidateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration files",
		Long: `Load every --config and report the problems found in each one.
Every error of a file is reported, not just the first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(o.configs) == 0 {
				return fmt.Errorf("at least one --config is required")
			}

			invalid := 0
			for _, source := range o.configs {
				if _, err := load(cmd.Context(), source); err != nil {
					printError(cmd.OutOrStdout(), source, err)
					invalid++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", source)
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d files", errInvalidConfig, invalid, len(o.configs))
			}
			return nil
		},
	}
}
