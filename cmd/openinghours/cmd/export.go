package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	openinghours "github.com/Xevion/go-openinghours"
)

func newExportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export schema.org OpeningHoursSpecification records",
		Long: `Export the regular hours and exceptions of each venue as schema.org
OpeningHoursSpecification records, keyed by venue name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			venues, err := o.loadVenues(cmd.Context())
			if err != nil {
				return err
			}

			export := make(map[string][]openinghours.OpeningHoursSpecification, len(venues))
			for _, v := range venues {
				export[v.name] = v.hours.AsStructuredData()
			}

			data, err := json.MarshalIndent(export, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
