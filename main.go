package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/fillgen/internal/adapters/factory"
	"github.com/hailam/fillgen/internal/adapters/progress"
	"github.com/hailam/fillgen/internal/adapters/sink"
	adapterutils "github.com/hailam/fillgen/internal/adapters/utils"
	"github.com/hailam/fillgen/internal/application"
	"github.com/hailam/fillgen/internal/config"
	"github.com/hailam/fillgen/internal/ports"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Println("Usage: fillgen <output-path> <size> [zero|random]")
		os.Exit(1)
	}
	outputPath := os.Args[1]
	sizeStr := os.Args[2]

	setupLogging(os.Stderr)

	cfg := config.Default()
	if len(os.Args) == 4 {
		mode, err := ports.ParseContentMode(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid mode: %v\n", err)
			os.Exit(1)
		}
		cfg.Mode = mode
	}

	service := application.NewFileService(
		factory.NewStaticGeneratorFactory(cfg),
		adapterutils.NewSpecSizeParser(),
		sink.NewFileOpener(0),
		progress.NewLogReporter(log.Logger),
	)
	written, err := service.CreateFile(context.Background(), outputPath, sizeStr, cfg.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s (%d bytes)\n", outputPath, written)
}

// setupLogging logs to w at info level, matching the cobra command's default.
func setupLogging(w io.Writer) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
}
