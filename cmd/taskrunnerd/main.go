// Command taskrunnerd wires the scheduler and command subsystem into a
// standalone process: load configuration, build the task-type
// registry, start the scheduler, install the built-in schedule.*
// commands, optionally serve read-only HTTP introspection, and wait
// for a shutdown signal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/enigma-engine/taskrunner/internal/command"
	"github.com/enigma-engine/taskrunner/internal/platform/config"
	"github.com/enigma-engine/taskrunner/internal/platform/httpapi"
	"github.com/enigma-engine/taskrunner/internal/platform/logger"
	"github.com/enigma-engine/taskrunner/internal/scheduler"
)

func main() {
	cfg, err := config.Load("taskrunnerd")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg.Logger)
	log.Info("starting taskrunnerd", "version", cfg.Version, "environment", cfg.Service.Environment)

	registry := scheduler.BuildRegistry(config.NewSchedulerTypeSource(cfg), log)

	var schedOpts []scheduler.Option
	schedOpts = append(schedOpts, scheduler.WithLogger(log))
	if cfg.Telemetry.MetricsEnabled {
		metrics, err := scheduler.NewMetricsRecorder(prometheus.DefaultRegisterer)
		if err != nil {
			log.Warn("failed to register scheduler metrics, continuing without them", "error", err)
		} else {
			schedOpts = append(schedOpts, scheduler.WithMetricsRecorder(metrics))
		}
	}

	sched := scheduler.New(registry, schedOpts...)
	if err := sched.Startup(); err != nil {
		log.Fatal("failed to start scheduler", "error", err)
	}
	scheduler.SetDefault(sched)

	cmdRegistry := command.NewRegistry()
	registerSchedulerCommands(cmdRegistry, sched)

	var httpSrv *httpapi.Server
	errCh := make(chan error, 1)
	if cfg.HTTP.Enabled {
		httpSrv, err = httpapi.New(
			httpapi.WithConfig(cfg),
			httpapi.WithLogger(log),
			httpapi.WithScheduler(sched),
			httpapi.WithCommandRegistry(cmdRegistry),
		)
		if err != nil {
			log.Fatal("failed to create introspection server", "error", err)
		}
		go func() {
			if err := httpSrv.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("introspection server error", "error", err)
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if httpSrv != nil {
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error("introspection server shutdown error", "error", err)
		}
	}
	if err := sched.Shutdown(ctx); err != nil {
		log.Error("scheduler shutdown error", "error", err)
	}

	log.Info("taskrunnerd stopped gracefully")
}

// registerSchedulerCommands installs the schedule.stats and
// schedule.types operator commands against sched.
func registerSchedulerCommands(reg *command.Registry, sched *scheduler.Scheduler) {
	_ = reg.Register(command.Spec{
		Name:        "schedule.types",
		Description: "List registered task types and their worker counts",
		Usage:       "schedule.types",
		Callback: func(args *command.Args) command.Result {
			types := sched.Registry().AllTypes()
			lines := make([]string, len(types))
			for i, t := range types {
				lines[i] = fmt.Sprintf("%s: %d workers - %s", t, sched.Registry().WorkerCount(t), sched.Registry().Description(t))
			}
			return command.Result{
				Status:  command.StatusSuccess,
				Message: fmt.Sprintf("%d task types", len(types)),
				Details: joinLines(lines),
			}
		},
	})

	_ = reg.Register(command.Spec{
		Name:        "schedule.stats",
		Description: "Show per-type pending/executing/completed task counts",
		Usage:       "schedule.stats [type]",
		Callback: func(args *command.Args) command.Result {
			types := sched.Registry().AllTypes()
			if v, ok := args.GetPositional(0); ok {
				types = []string{v.AsString()}
			}

			lines := make([]string, 0, len(types))
			for _, t := range types {
				if !sched.Registry().IsRegistered(t) {
					return command.NotFound(fmt.Sprintf("unknown task type: %s", t))
				}
				lines = append(lines, fmt.Sprintf("%s: pending=%s executing=%s completed=%s",
					t,
					strconv.Itoa(sched.PendingCount(t)),
					strconv.Itoa(sched.ExecutingCount(t)),
					strconv.Itoa(sched.CompletedCount(t)),
				))
			}
			return command.Result{
				Status:  command.StatusSuccess,
				Message: fmt.Sprintf("stats for %d type(s)", len(lines)),
				Details: joinLines(lines),
			}
		},
	})
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
