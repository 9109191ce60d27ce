package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/TykTechnologies/tyk-rpc-router/cli"
	"github.com/TykTechnologies/tyk-rpc-router/config"
	"github.com/TykTechnologies/tyk-rpc-router/gateway"
	"github.com/TykTechnologies/tyk-rpc-router/internal/build"
	logger "github.com/TykTechnologies/tyk-rpc-router/log"
)

var (
	log     = logger.Get()
	mainLog = log.WithField("prefix", "main")

	confPaths = []string{
		"tyk-rpc-router.conf",
		"/etc/tyk-rpc-router/tyk-rpc-router.conf",
	}
)

func main() {
	cli.Init(build.Info(), os.Stdout)
	cli.MustParse()

	// Only the start command runs the router.
	if !cli.DefaultMode {
		os.Exit(0)
	}

	conf := config.Config{}
	paths := confPaths
	if *cli.Conf != "" {
		paths = []string{*cli.Conf}
	}
	if err := config.Load(paths, &conf); err != nil {
		mainLog.WithError(err).Fatal("Error loading config")
	}

	if *cli.Port != "" {
		port, err := strconv.Atoi(*cli.Port)
		if err != nil {
			mainLog.WithError(err).Fatal("Invalid --port")
		}
		conf.ListenPort = port
	}

	if conf.LogFormat != "" && logger.LogFormat == "" {
		log.Formatter = logger.NewFormatter(conf.LogFormat)
	}
	level := conf.LogLevel
	if *cli.Debug {
		level = "debug"
	}
	logger.SetLevel(level)

	mainLog.Infof("Tyk RPC Router %s", build.Info())
	mainLog.Infof("Loaded configuration from %s", conf.OriginalPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gateway.Start(ctx, &conf); err != nil {
		mainLog.WithError(err).Fatal("Router stopped with error")
	}
}
