package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/app"
	"github.com/ternarybob/sitescore/internal/common"
)

var (
	configPath   = flag.String("config", "", "Configuration file path")
	configPathC  = flag.String("c", "", "Configuration file path (shorthand)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("sitescore version %s\n", common.GetVersion())
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = *configPathC
	}
	// Auto-discover a config file next to the binary when none is given
	if path == "" {
		if _, err := os.Stat("sitescore.toml"); err == nil {
			path = "sitescore.toml"
		}
	}

	config, err := common.LoadConfig(path)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Str("path", path).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	application, err := app.New(config)
	if err != nil {
		common.GetLogger().Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.Start(ctx)
	application.Logger.Info().Msg("sitescore ready - Press Ctrl+C to stop")

	<-ctx.Done()
	application.Logger.Info().Msg("Interrupt signal received, shutting down")
}
