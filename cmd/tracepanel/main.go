package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/tracepanel/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/tracepanel/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	interval := flag.Duration("interval", 0, "demo workload interval (optional, overrides demo.interval)")
	noDemo := flag.Bool("no-demo", false, "do not run the demo workload")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		NoDemo:     *noDemo,
	}
	if d := *interval; d > 0 {
		opts.Interval = d
	} else if d < 0 {
		fmt.Fprintf(os.Stderr, "tracepanel: -interval must be positive, got %s\n", d)
		return 2
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tracepanel: %v\n", err)
		return 1
	}
	return 0
}
