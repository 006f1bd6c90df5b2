package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	openinghours "github.com/Xevion/go-openinghours"
	"github.com/Xevion/go-openinghours/internal/server"
	"github.com/Xevion/go-openinghours/types"
)

func newServeCmd(o *options) *cobra.Command {
	var (
		addr    string
		horizon time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the venues over HTTP",
		Long: `Serve the venues' opening hours over HTTP, with Prometheus metrics on
/metrics and a websocket stream of open/close transitions on /ws.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkHorizon(horizon); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			venues, err := o.loadVenues(ctx)
			if err != nil {
				return err
			}
			hours := make(map[string]*openinghours.OpeningHours, len(venues))
			for _, v := range venues {
				hours[v.name] = v.hours
			}

			srv := server.New(hours)
			watcher := openinghours.NewWatcher(openinghours.WithHorizon(types.DurationString(horizon.String())))
			if err := srv.Watch(watcher); err != nil {
				slog.Warn("Some venues are not watched", "error", err)
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				watcher.Start(ctx)
			}()

			err = srv.ListenAndServe(ctx, addr)
			stop()
			wg.Wait()
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&horizon, "horizon", defaultHorizon(), "how far ahead the watcher looks for transitions")
	return cmd
}

