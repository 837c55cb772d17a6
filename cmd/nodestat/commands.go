package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Guliveer/nodestat/internal/collector"
	"github.com/Guliveer/nodestat/internal/config"
	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
	"github.com/Guliveer/nodestat/internal/platform"
	"github.com/Guliveer/nodestat/internal/scheduler"
)

const shutdownTimeout = 5 * time.Second

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *engine.Engine
	out    io.Writer
}

// setup loads the layered configuration for cmd and builds an engine with
// the built-in plugins registered.
func setup(cmd *cli.Command, overrides config.CLIOverrides) (*app, error) {
	overrides.LogLevel = cmd.String("log-level")

	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadLayered(overrides, path)
	} else {
		cfg, err = config.LoadLayered(overrides)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := initLogger(cfg)
	e := engine.New(logger)
	collector.Register(e, collector.Options{
		ProcRoot: cfg.Paths.Proc,
		DFPath:   cfg.Paths.DF,
	})

	return &app{
		cfg:    cfg,
		logger: logger,
		engine: e,
		out:    cmd.Root().Writer,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) writeJSON(v any, indent bool) error {
	enc := json.NewEncoder(a.out)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "nodestat",
		Usage:   "Collect system statistics through pluggable collectors",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Commands: []*cli.Command{
			getCmd(),
			readCmd(),
			linesCmd(),
			execCmd(),
			listCmd(),
			watchCmd(),
			infoCmd(),
			configCmd(),
		},
	}
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Run the named plugins in order and print their values as JSON",
		ArgsUsage: "[plugin...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd, config.CLIOverrides{})
			if err != nil {
				return err
			}
			defer a.close()

			names := cmd.Args().Slice()
			if len(names) == 0 {
				names = a.cfg.Collection.Plugins
			}

			ctx, cancel := context.WithTimeout(ctx, a.cfg.Collection.Timeout.Duration)
			defer cancel()

			result, err := a.engine.Get(ctx, names...)
			if err != nil {
				return err
			}
			return a.writeJSON(result, true)
		},
	}
}

func readCmd() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Print the concatenated content of files",
		ArgsUsage: "<file...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return errors.New("read: at least one file is required")
			}
			a, err := setup(cmd, config.CLIOverrides{})
			if err != nil {
				return err
			}
			defer a.close()

			content, err := a.engine.Read(ctx, files...)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, content)
			return err
		},
	}
}

func linesCmd() *cli.Command {
	return &cli.Command{
		Name:      "lines",
		Usage:     "Print every line of files as it is read",
		ArgsUsage: "<file...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "number",
				Aliases: []string{"n"},
				Usage:   "Prefix each line with its delivery number",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return errors.New("lines: at least one file is required")
			}
			a, err := setup(cmd, config.CLIOverrides{})
			if err != nil {
				return err
			}
			defer a.close()

			number := cmd.Bool("number")
			n := 0
			var writeErr error
			err = a.engine.Lines(ctx, func(line string) {
				if writeErr != nil {
					return
				}
				n++
				if number {
					_, writeErr = fmt.Fprintf(a.out, "%d\t%s\n", n, line)
				} else {
					_, writeErr = fmt.Fprintln(a.out, line)
				}
			}, files...)
			if err != nil {
				return err
			}
			return writeErr
		},
	}
}

func execCmd() *cli.Command {
	return &cli.Command{
		Name:            "exec",
		Usage:           "Run a command and print its standard output",
		ArgsUsage:       "<path> [arg...]",
		SkipFlagParsing: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errors.New("exec: a command path is required")
			}
			a, err := setup(cmd, config.CLIOverrides{})
			if err != nil {
				return err
			}
			defer a.close()

			out, err := a.engine.Exec(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, out)
			return err
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered plugins and whether their data source is available",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd, config.CLIOverrides{})
			if err != nil {
				return err
			}
			defer a.close()

			for _, name := range a.engine.Registry().Names() {
				p, _ := a.engine.Lookup(name)
				status := "unknown"
				if av, ok := p.(engine.Availability); ok {
					status = "unavailable"
					if av.IsAvailable() {
						status = "available"
					}
				}
				if _, err := fmt.Fprintf(a.out, "%s\t%s\n", name, status); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Print host identification",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd, config.CLIOverrides{})
			if err != nil {
				return err
			}
			defer a.close()

			info, err := platform.Host(ctx)
			if err != nil {
				return fmt.Errorf("reading host info: %w", err)
			}
			return a.writeJSON(info, true)
		},
	}
}

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Value: config.DefaultPath(),
						Usage: "Destination file",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("path")
					if !cmd.Bool("force") {
						if _, err := os.Stat(path); err == nil {
							return fmt.Errorf("%s already exists (use --force to overwrite)", path)
						}
					}
					if err := config.WriteConfig(config.DefaultConfig(), path); err != nil {
						return err
					}
					_, err := fmt.Fprintln(cmd.Root().Writer, path)
					return err
				},
			},
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Poll plugins periodically and print one JSON snapshot per line",
		ArgsUsage: "[plugin...]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Polling interval (overrides collection.interval)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address, e.g. :9100",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd, config.CLIOverrides{
				Plugins:  cmd.Args().Slice(),
				Interval: cmd.Duration("interval"),
				Listen:   cmd.String("metrics-addr"),
			})
			if err != nil {
				return err
			}
			defer a.close()

			if host, err := platform.Host(ctx); err == nil {
				a.logger.Info("Starting nodestat watch",
					zap.String("version", version),
					zap.String("hostname", host.Hostname),
					zap.String("platform", host.Platform),
					zap.String("kernel", host.KernelVersion))
			}

			return a.watch(ctx)
		},
	}
}

// watch runs the scheduler and, when configured, the metrics endpoint until
// ctx is cancelled or the endpoint fails.
func (a *app) watch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	sched := scheduler.New(a.engine, a.cfg, a.logger)
	sched.OnSnapshot(func(snap models.Snapshot) {
		if err := a.writeJSON(snap, false); err != nil {
			a.logger.Error("Failed to write snapshot", zap.Error(err))
		}
	})

	a.logger.Info("Watching plugins",
		zap.Strings("plugins", a.cfg.Collection.Plugins),
		zap.Duration("interval", a.cfg.Collection.Interval.Duration))

	g.Go(func() error {
		sched.Start(ctx)
		return nil
	})

	if addr := a.cfg.Metrics.Listen; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			a.logger.Info("Serving metrics", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
