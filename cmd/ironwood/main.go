// Command ironwood runs a single Ironwood source file.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/TheServer-lab/ironwood/internal/buildinfo"
	"github.com/TheServer-lab/ironwood/internal/config"
	"github.com/TheServer-lab/ironwood/interp"
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ironwood"),
		kong.Description("Run an Ironwood script."),
		kong.UsageOnError(),
		versionVars,
	)

	if cli.Config != "" {
		cfg, err := config.Load(cli.Config)
		kctx.FatalIfErrorf(err)
		applyConfigDefaults(&cli, cfg)
	}

	logger := newLogger(cli.LogLevel, cli.LogFormat)
	slog.SetDefault(logger)

	if cli.Pprof != "" {
		defer startProfile(cli.Pprof)()
	}

	src, err := os.ReadFile(cli.Script)
	if err != nil {
		logger.Error("cannot read script", "path", cli.Script, "error", err)
		os.Exit(1)
	}

	it := interp.New(interp.WithArgs(cli.Args), interp.WithLogger(logger))

	ctx := context.Background()
	if cli.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cli.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- it.RunSource(string(src)) }()

	select {
	case runErr := <-done:
		if runErr != nil {
			logArgs := []any{"error", runErr}
			switch e := runErr.(type) {
			case *interp.SyntaxError:
				logArgs = append(logArgs, "line", e.Line)
			case *interp.RuntimeError:
				logArgs = append(logArgs, "line", e.Line)
			}
			logger.Error("run failed", logArgs...)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Error("script exceeded timeout", "timeout", cli.Timeout)
		os.Exit(1)
	}
}

// applyConfigDefaults fills in CLI fields still at their flag defaults from
// the loaded config file, so a flag passed with a non-default value always
// wins. A field is judged by its value alone: a flag passed explicitly with
// its default value (e.g. --log-level info) is replaced by the config file.
func applyConfigDefaults(cli *CLI, cfg *config.Config) {
	if cli.LogLevel == "info" && cfg.LogLevel != "" {
		cli.LogLevel = cfg.LogLevel
	}
	if cli.LogFormat == "text" && cfg.LogFormat != "" {
		cli.LogFormat = cfg.LogFormat
	}
	if cli.Timeout == 0 && cfg.Timeout != 0 {
		cli.Timeout = cfg.Timeout
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("version", buildinfo.Version)
}

func startProfile(mode string) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "block":
		opt = profile.BlockProfile
	case "trace":
		opt = profile.TraceProfile
	default:
		return func() {}
	}
	p := profile.Start(opt, profile.Quiet)
	return p.Stop
}
