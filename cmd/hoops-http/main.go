package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/richard-senior/hoops/internal/app"
	"github.com/richard-senior/hoops/internal/httpapi"
	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	flag.Parse()

	a, err := app.New(context.Background(), *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}
	defer a.Close()

	rpc := server.New(nil, a.Tools, a.Prompts)
	srv := &http.Server{
		Addr:              a.Config.HTTPAddr,
		Handler:           httpapi.NewRouter(a.Config, a.Tools, rpc),
		ReadHeaderTimeout: 10 * time.Second,
		// imports fetch remote pages, give them longer than the fetch timeout
		WriteTimeout: a.Config.FetchTimeout + 10*time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on", a.Config.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Received signal:", sig.String())
	case err := <-errChan:
		logger.Error("Server error:", err)
		a.Close()
		os.Exit(1)
	}

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown:", err)
	}
	logger.Info("Server stopped")
}
