// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database/memdb"

	"github.com/ava-labs/countervm/countervm"
)

const (
	baseURL         = "/ext/counter"
	shutdownTimeout = 10 * time.Second
)

func main() {
	config, err := BuildConfig(os.Args[1:])
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print version and exit
	if config.PrintVersion {
		fmt.Printf("%s@%s\n", countervm.Name, countervm.Version)
		os.Exit(0)
	}

	log.Root().SetHandler(log.LvlFilterHandler(config.LogLevel, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	if err := run(config); err != nil {
		log.Error("countervm failed", "err", err)
		os.Exit(1)
	}
	log.Info("Terminated successfully.")
}

func run(config Config) error {
	host := (&countervm.Factory{}).New(memdb.New())
	defer host.Shutdown()

	handlers, err := host.CreateHandlers()
	if err != nil {
		return fmt.Errorf("failed to create handlers: %w", err)
	}
	mux := http.NewServeMux()
	for endpoint, handler := range handlers {
		mux.Handle(path.Join(baseURL, endpoint), handler)
	}

	server := &http.Server{
		Addr:              config.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// register signals to kill the application
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting countervm", "version", countervm.Version, "addr", config.Addr(), "endpoint", baseURL)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-signals:
		log.Info("Shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
