package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/hoops/internal/app"
	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/server"
	"github.com/richard-senior/hoops/pkg/tools"
	"github.com/richard-senior/hoops/pkg/transport"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [import <url|file>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()
	a, err := app.New(ctx, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}
	defer a.Close()

	args := flag.Args()
	if len(args) > 0 {
		logger.Info("Command line arguments received:", len(args))
		switch args[0] {
		case "import":
			if len(args) != 2 {
				flag.Usage()
				os.Exit(2)
			}
			if err := runImport(ctx, a.Tools, args[1]); err != nil {
				logger.Error("Import failed:", err)
				a.Close()
				os.Exit(1)
			}
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	s := server.New(transport.NewStdioTransport(), a.Tools, a.Prompts)
	logger.Info("Starting MCP server...")
	if err := s.Start(ctx); err != nil {
		logger.Error("Server error:", err)
		a.Close()
		os.Exit(1)
	}
	logger.Info("MCP server shutting down")
}

// runImport loads a stats page or a local HTML/CSV export into the store and
// prints the ingestion report
func runImport(ctx context.Context, tb *tools.Toolbox, source string) error {
	var req tools.ImportRequest
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req.URL = source
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}
		if strings.EqualFold(filepath.Ext(source), ".csv") {
			req.CSV = string(data)
		} else {
			req.HTML = string(data)
		}
	}

	resp, err := tb.ImportStats(ctx, req)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
