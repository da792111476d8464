// Command healthmock runs the mock health-check server.
//
// Usage:
//
//	healthmock [-addr 0.0.0.0:18080] [-profile full|components|single]
//	           [-default-component mailer] [-components a,b,c]
//	           [-admin-addr 127.0.0.1:18081] [-log-level info]
//	           [-tracing-exporter none] [-metrics-exporter prometheus]
//
// The server runs until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/healthmock/observe"
	"github.com/jonwraymond/healthmock/server"
)

var version = "dev"

const shutdownTimeout = 5 * time.Second

type options struct {
	server          server.Config
	adminAddr       string
	logLevel        string
	tracingExporter string
	metricsExporter string
	samplePct       float64
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var (
		opts       options
		components string
	)
	opts.server.Profile = server.ProfileFull

	fs := flag.NewFlagSet("healthmock", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.server.Addr, "addr", server.DefaultAddr, "mock listen address")
	fs.Var(&opts.server.Profile, "profile", "route profile: "+choices(server.ValidProfiles))
	fs.StringVar(&opts.server.DefaultComponent, "default-component", server.DefaultComponent, "component behind /health and toggles without a component")
	fs.StringVar(&components, "components", "", "comma-separated components seeded healthy (default: per profile)")
	fs.StringVar(&opts.adminAddr, "admin-addr", "", "admin listen address for /healthz, /readyz, /components, /metrics (disabled when empty)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: "+choices(observe.ValidLogLevels))
	fs.StringVar(&opts.tracingExporter, "tracing-exporter", "none", "tracing exporter: "+choices(observe.ValidTracingExporters))
	fs.StringVar(&opts.metricsExporter, "metrics-exporter", "prometheus", "metrics exporter: "+choices(observe.ValidMetricsExporters))
	fs.Float64Var(&opts.samplePct, "trace-sample", 1.0, "trace sampling ratio 0.0-1.0")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if components != "" {
		opts.server.Components = splitList(components)
	}
	return opts, nil
}

func choices(names []string) string {
	return strings.Join(names, "|")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// run serves until ctx is done. ready, when non-nil, receives the bound
// addresses; admin is nil when the admin listener is disabled.
func run(ctx context.Context, opts options, logOutput io.Writer, ready func(mock, admin net.Addr)) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "healthmock",
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   opts.tracingExporter != "none",
			Exporter:  opts.tracingExporter,
			SamplePct: opts.samplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:    opts.metricsExporter != "none",
			Exporter:   opts.metricsExporter,
			Registerer: reg,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   opts.logLevel,
			Writer:  logOutput,
		},
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()
	logger := obs.Logger()

	telemetry, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	srv, err := server.New(opts.server,
		server.WithLogger(logger),
		server.WithTelemetry(telemetry),
	)
	if err != nil {
		return err
	}

	mockLn, err := net.Listen("tcp", srv.Config().Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Config().Addr, err)
	}

	var (
		admin   *http.Server
		adminLn net.Listener
	)
	if opts.adminAddr != "" {
		adminLn, err = net.Listen("tcp", opts.adminAddr)
		if err != nil {
			_ = mockLn.Close()
			return fmt.Errorf("listen admin %s: %w", opts.adminAddr, err)
		}
		admin = &http.Server{
			Handler:           server.NewAdminHandler(srv.Table(), reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		logger.Info(ctx, "admin listener enabled", observe.F("addr", adminLn.Addr().String()))
	}

	if ready != nil {
		var adminAddr net.Addr
		if adminLn != nil {
			adminAddr = adminLn.Addr()
		}
		ready(mockLn.Addr(), adminAddr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(mockLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if admin != nil {
		g.Go(func() error {
			if err := admin.Serve(adminLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("admin: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if admin != nil {
			if err := admin.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("admin shutdown: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "healthmock:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stderr, nil); err != nil {
		fmt.Fprintln(os.Stderr, "healthmock:", err)
		return 1
	}
	return 0
}
