package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/spf13/cobra"

	openinghours "github.com/Xevion/go-openinghours"
	"github.com/Xevion/go-openinghours/internal"
)

// options holds the global flags shared by every command.
type options struct {
	configs  []string
	timezone string
	verbose  bool
}

func NewRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "openinghours",
		Short: "Query the opening hours of venues",
		Long: `openinghours answers "is it open?", "when does it open or close next?"
and "what are the hours this week?" for venues described by YAML or TOML
configuration files, local or published over HTTP.

Each --config names one venue, after its file name without extension.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), o.verbose))
		},
	}

	rootCmd.PersistentFlags().StringSliceVarP(&o.configs, "config", "c", nil, "venue configuration file or http(s) URL (repeatable)")
	rootCmd.PersistentFlags().StringVar(&o.timezone, "timezone", "", "override the timezone of every venue")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newCheckCmd(o),
		newNextCmd(o),
		newWeekCmd(o),
		newExportCmd(o),
		newValidateCmd(o),
		newServeCmd(o),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if verbose {
		return slog.New(devslog.NewHandler(w, &devslog.Options{
			HandlerOptions:  &slog.HandlerOptions{Level: slog.LevelDebug},
			NewLineAfterLog: true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// venue is a loaded configuration.
type venue struct {
	name  string
	hours *openinghours.OpeningHours
}

// venueName derives a venue name from a path or URL: "shops/bakery.yaml"
// is "bakery".
func venueName(source string) string {
	base := path.Base(filepath.ToSlash(source))
	return strings.TrimSuffix(base, path.Ext(base))
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func load(ctx context.Context, source string) (*openinghours.OpeningHours, error) {
	if isURL(source) {
		return openinghours.LoadURL(ctx, source)
	}
	return openinghours.LoadFile(source)
}

// loadVenues loads every --config, in order.
func (o *options) loadVenues(ctx context.Context) ([]venue, error) {
	if len(o.configs) == 0 {
		return nil, fmt.Errorf("at least one --config is required")
	}

	venues := make([]venue, 0, len(o.configs))
	for _, source := range o.configs {
		hours, err := load(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		if o.timezone != "" {
			if err := hours.SetTimezone(o.timezone); err != nil {
				return nil, err
			}
		}
		venues = append(venues, venue{name: venueName(source), hours: hours})
	}
	return venues, nil
}

// instant parses an optional RFC 3339 --at flag.
func instant(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at must be RFC 3339, e.g. 2024-03-04T10:00:00Z: %w", err)
	}
	return t, nil
}

// defaultHorizon is the --horizon default of next and serve.
func defaultHorizon() time.Duration {
	return internal.ParseDuration(string(openinghours.DefaultHorizon))
}

func checkHorizon(horizon time.Duration) error {
	if horizon <= 0 {
		return fmt.Errorf("--horizon must be positive, got %s", horizon)
	}
	return nil
}

func printError(w io.Writer, msg string, err error) {
	fmt.Fprintf(w, "Error: %s: %v\n", msg, err)
}
