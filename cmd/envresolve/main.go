package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/envresolve/internal/application"
	"github.com/eugenenazirov/envresolve/internal/config"
	"github.com/eugenenazirov/envresolve/internal/logging"
	"github.com/eugenenazirov/envresolve/internal/render"
)

var (
	signalNotify     = signal.Notify
	defaultNewLogger = logging.New
	newLogger        = defaultNewLogger
)

const (
	exitOK       = 0
	exitNotFound = 1
	exitUsage    = 2
	exitFailure  = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("envresolve", "Resolve and load the .env file for the current runtime mode")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	var mergeSet, rpsSet, burstSet bool
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	dir := app.Flag("dir", "Directory holding the .env files").String()
	modeVar := app.Flag("mode-var", "Environment variable holding the runtime mode").String()
	merge := app.Flag("merge", "Merge every existing candidate instead of loading only the best match").IsSetByUser(&mergeSet).Bool()
	format := app.Flag("format", "Output format: json, yaml or dotenv").String()
	logLevel := app.Flag("log-level", "Log level").String()

	resolveCmd := app.Command("resolve", "Print the env file that applies to the current mode")

	loadCmd := app.Command("load", "Print the variables of the resolved env file")
	loadFile := loadCmd.Flag("file", "Load this file instead of resolving one").String()

	getCmd := app.Command("get", "Print a variable from the process environment")
	getKey := getCmd.Arg("key", "Variable name").Required().String()
	var defaultSet bool
	getDefault := getCmd.Flag("default", "Value returned when the variable is not defined").IsSetByUser(&defaultSet).String()

	serveCmd := app.Command("serve", "Serve env resolution over HTTP")
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPS := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").IsSetByUser(&rpsSet).Float64()
	rateLimitBurst := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").IsSetByUser(&burstSet).Int()

	command, err := app.Parse(args)
	if err != nil {
		app.Errorf("%v", err)
		return exitUsage
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		Dir:        dir,
		ModeVar:    modeVar,
		Format:     format,
		LogLevel:   logLevel,
		Port:       port,
	}
	if mergeSet {
		overrides.Merge = merge
	}
	if rpsSet {
		overrides.RateLimitRPS = rateLimitRPS
	}
	if burstSet {
		overrides.RateLimitBurst = rateLimitBurst
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitUsage
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer func() {
		_ = logger.Sync()
	}()
	defer zap.ReplaceGlobals(logger)()

	ctx := context.Background()
	components := application.NewComponents(cfg, logger)

	switch command {
	case resolveCmd.FullCommand():
		name, ok := components.Loader.Resolver().Resolve(ctx)
		if !ok {
			return exitNotFound
		}
		if cfg.Dir != "" {
			name = filepath.Join(cfg.Dir, name)
		}
		fmt.Fprintln(stdout, name)

	case loadCmd.FullCommand():
		var vars map[string]string
		if *loadFile != "" {
			vars = components.Loader.LoadFile(ctx, *loadFile)
		} else {
			vars = components.Loader.Load(ctx)
		}
		if err := render.Vars(stdout, cfg.Format, vars); err != nil {
			logger.Error("failed to render variables", zap.Error(err))
			return exitFailure
		}

	case getCmd.FullCommand():
		var defaults []string
		if defaultSet {
			defaults = append(defaults, *getDefault)
		}
		value, ok := components.Lookup.Get(*getKey, defaults...)
		if !ok {
			return exitNotFound
		}
		fmt.Fprintln(stdout, value)

	case serveCmd.FullCommand():
		server := application.New(cfg, logger)
		if err := server.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
		shutdown(server.Server(), cfg.ShutdownGracePeriod, logger)
	}

	return exitOK
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
