package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/app"
	"github.com/vancomm/hintsweeper/internal/board"
	"github.com/vancomm/hintsweeper/internal/config"
)

var configPath string

func init() {
	const usage = "config file path (yaml, json or toml)"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("unable to load config: ", err)
	}

	log, err := config.NewLogger(cfg)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	board.Log = log

	log.WithFields(cfg.Fields()).Debug("config")

	a, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("unable to create app: ", err)
	}

	if err := a.Start(ctx); err != nil {
		log.Errorf("exit reason: %s", err)
		os.Exit(1)
	}
	log.Info("bye")
}
