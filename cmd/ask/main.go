// Command ask runs one question through the answer pipeline and prints the
// result, using the same configuration as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/arturoeanton/portfolio-rag/internal/app"
	"github.com/arturoeanton/portfolio-rag/pkg/config"
)

func main() {
	wait := flag.Duration("wait", 2*time.Minute, "how long to wait for the embedding model to load")
	verbose := flag.Bool("v", false, "log pipeline stages to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <question>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	if *verbose {
		cfg.LogLevel = "debug"
	} else if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	logger := app.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		color.Red("invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeline, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		color.Red("failed to build pipeline: %v", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	waitCtx, cancel := context.WithTimeout(ctx, *wait)
	defer cancel()
	select {
	case <-pipeline.Embedder.Ready():
	case <-waitCtx.Done():
		color.Yellow("embedding model not ready after %s, answering anyway", *wait)
	}

	result, err := pipeline.Service.Answer(ctx, question)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}

	color.New(color.FgCyan, color.Bold).Println("Answer")
	fmt.Println(result.Text)

	if len(result.Images) > 0 {
		fmt.Println()
		color.New(color.FgGreen, color.Bold).Println("Images")
		for _, img := range result.Images {
			fmt.Printf("  %s\n", img)
		}
	}
}
