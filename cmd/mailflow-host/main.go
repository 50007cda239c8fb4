package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/XIYBHK/MailFlow/internal/config"
	"github.com/XIYBHK/MailFlow/internal/hostsim"
	"github.com/XIYBHK/MailFlow/internal/rpc"
)

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mailflow-host version %s\n", version)
		os.Exit(0)
	}

	_ = godotenv.Load()

	// Set up logging. The wire protocol owns stdout, so logs go to stderr.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting MailFlow host simulator")

	// Open the simulator database
	host, err := hostsim.Open(cfg.DataPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open host database")
	}
	defer host.Close()

	// Serve the command surface over stdio
	server := rpc.NewServer(host, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Error("Server error")
		}
		cancel()
	}

	logger.Info("Shutting down MailFlow host simulator")
}
