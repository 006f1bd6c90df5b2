package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/golang-cz/devslog"

	oh "github.com/Xevion/go-openinghours"
)

func main() {
	slog.SetDefault(slog.New(devslog.NewHandler(os.Stdout, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{Level: slog.LevelDebug},
	})))

	bakery, err := oh.NewBuilder().
		Day(oh.Monday, "07:00-12:30", "13:30-18:00").
		Day(oh.Tuesday, "07:00-12:30", "13:30-18:00").
		Day(oh.Thursday, "07:00-12:30", "13:30-18:00").
		Day(oh.Friday, "07:00-12:30", "13:30-18:00").
		Day(oh.Saturday, "07:00-16:00").
		Exception("12-25").
		Exception("12-24", "07:00-12:00").
		ClosingPeriod("08-01", "08-15").
		Timezone("Europe/Brussels").
		Build()
	if err != nil {
		slog.Error("Invalid opening hours", "error", err)
		os.Exit(1)
	}

	// open every afternoon in July and August
	summer, err := oh.CronFilter("* 7-8 *", "16:00-27:00")
	if err != nil {
		slog.Error("Invalid filter", "error", err)
		os.Exit(1)
	}

	bar, err := oh.NewBuilder().
		Day(oh.Thursday, "18:00-25:00").
		Day(oh.Friday, "18:00-27:00").
		Day(oh.Saturday, "18:00-27:00").
		Filter(summer).
		Timezone("Europe/Brussels").
		Build()
	if err != nil {
		slog.Error("Invalid opening hours", "error", err)
		os.Exit(1)
	}

	terrace, err := oh.NewBuilder().
		Filter(oh.SunFilter(50.85, 4.35, -30*time.Minute)).
		Timezone("Europe/Brussels").
		Build()
	if err != nil {
		slog.Error("Invalid opening hours", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	slog.Info("Bakery", "open", bakery.IsOpenAt(now), "next_open", bakery.NextOpen(now), "next_close", bakery.NextClose(now))
	for _, group := range bakery.ForWeekCombined() {
		slog.Info("Regular hours", "days", group.Days, "hours", group.Hours.String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher := oh.NewWatcher(oh.WithHorizon("720h"))
	if err := watcher.Register("bakery", bakery, announce); err != nil {
		slog.Warn("Not watching bakery", "error", err)
	}
	if err := watcher.Register("bar", bar, announce); err != nil {
		slog.Warn("Not watching bar", "error", err)
	}
	if err := watcher.Register("terrace", terrace, announce); err != nil {
		slog.Warn("Not watching terrace", "error", err)
	}

	watcher.Start(ctx)
}

func announce(t oh.Transition) {
	slog.Info("Transition", "what", t.String())
}
