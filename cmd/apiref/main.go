package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/apiref/internal/config"
	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/examples"
	"git.home.luguber.info/inful/apiref/internal/fsio"
	"git.home.luguber.info/inful/apiref/internal/history"
	"git.home.luguber.info/inful/apiref/internal/metrics"
	"git.home.luguber.info/inful/apiref/internal/pipeline"
	"git.home.luguber.info/inful/apiref/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"apiref.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct{} `cmd:"" help:"Generate the documentation site from the configured sources"`

	Verify struct{} `cmd:"" help:"Type-check embedded examples without writing any documentation"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Watch struct {
		Debounce    time.Duration `help:"Quiet period before a rebuild fires" default:"500ms"`
		MetricsAddr string        `help:"Expose Prometheus metrics on this address (empty disables)"`
	} `cmd:"" help:"Rebuild the documentation whenever sources change"`

	History struct {
		Limit int    `short:"n" help:"Number of runs to list" default:"10"`
		Run   string `help:"Show the full report for one run id"`
	} `cmd:"" help:"Inspect recent build runs"`
}

func main() {
	kctx := kong.Parse(&CLI)

	if kctx.Command() == "init" {
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			fatal(err)
		}
		fmt.Println("wrote", CLI.Config)
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fatal(err)
	}
	config.SetupLogger(cfg.Logging, CLI.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch kctx.Command() {
	case "build":
		err = runBuild(ctx, cfg)
	case "verify":
		err = runVerify(ctx, cfg)
	case "watch":
		err = runWatch(ctx, cfg)
	case "history":
		err = runHistory(ctx, cfg)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "apiref: "+aerrors.FatalMessage(err))
	os.Exit(aerrors.ExitCodeFor(err))
}

func newBuilder(cfg *config.Config, reg *prom.Registry) *pipeline.Builder {
	return pipeline.NewBuilder(cfg, fsio.OSFileSystem{}, examples.ExecRunner{}, metrics.NewPrometheusRecorder(reg))
}

func runBuild(ctx context.Context, cfg *config.Config) error {
	builder := newBuilder(cfg, nil)
	report, err := builder.Run(ctx)
	recordRun(ctx, cfg, report)
	return err
}

func runVerify(ctx context.Context, cfg *config.Config) error {
	builder := newBuilder(cfg, nil)
	report, err := builder.Verify(ctx)
	recordRun(ctx, cfg, report)
	return err
}

// recordRun stores the report when a history path is configured. Failed
// runs are stored too; storage problems must never change the run outcome.
func recordRun(ctx context.Context, cfg *config.Config, report *pipeline.Report) {
	if cfg.History.Path == "" || report == nil {
		return
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		slog.Warn("Unable to open run history", "path", cfg.History.Path, "error", err)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, report.Record()); err != nil {
		slog.Warn("Unable to record run", "run", report.RunID, "error", err)
	}
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	var reg *prom.Registry
	if CLI.Watch.MetricsAddr != "" {
		reg = prom.NewRegistry()
		go serveMetrics(CLI.Watch.MetricsAddr, reg)
	}
	builder := newBuilder(cfg, reg)

	rebuild := func(ctx context.Context) error {
		report, err := builder.Run(ctx)
		recordRun(ctx, cfg, report)
		return err
	}

	// Initial build; failures are reported but keep the watch alive so a
	// fixing edit triggers the next attempt.
	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", "error", err)
	}

	watcher, err := watch.NewWatcher(cfg, CLI.Watch.Debounce, rebuild)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}

	<-ctx.Done()
	slog.Info("Shutting down watcher")
	return watcher.Stop()
}

func serveMetrics(addr string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	slog.Info("Serving metrics", "addr", addr)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Metrics server stopped", "error", err)
	}
}

func runHistory(ctx context.Context, cfg *config.Config) error {
	if cfg.History.Path == "" {
		return aerrors.ConfigRequired("history.path")
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if CLI.History.Run != "" {
		rec, err := store.Get(ctx, CLI.History.Run)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	recent, err := store.Recent(ctx, CLI.History.Limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, rec := range recent {
		fmt.Printf("%s  %s  %-8s modules=%d documents=%d examples=%d duration=%s\n",
			rec.Start.Format(time.RFC3339), rec.RunID, rec.Outcome,
			rec.Modules, rec.Documents, rec.ExamplesChecked,
			rec.End.Sub(rec.Start).Truncate(time.Millisecond))
	}
	return nil
}
