package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/richard-senior/hoops/internal/app"
	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/internal/processor"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	inputFile := flag.String("input", "", "Input file path (if not provided, stdin will be used)")
	outputFile := flag.String("output", "", "Output file path (if not provided, stdout will be used)")
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}
	defer a.Close()
	if *debug {
		logger.SetLevel(logger.DEBUG)
		logger.Debug("Debug logging enabled")
	}

	var input []byte
	if *inputFile != "" {
		input, err = os.ReadFile(*inputFile)
		if err != nil {
			logger.Fatal("Failed to read input file", err)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal("Failed to read from stdin", err)
		}
	}

	result, procErr := processor.ProcessRequest(ctx, a.Tools, input)
	if result == nil {
		logger.Error("Failed to process request", procErr)
		a.Close()
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, result, 0644); err != nil {
			logger.Fatal("Failed to write to output file", err)
		}
	} else {
		fmt.Print(string(result))
	}

	if procErr != nil {
		a.Close()
		os.Exit(1)
	}
}
