// Command motionsim runs scripted players through a level headlessly and reports their telemetry.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/player/state"
	"github.com/oomph-ac/motion/stats"
	"github.com/oomph-ac/motion/world"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func command() *cli.Command {
	return &cli.Command{
		Name:  "motionsim",
		Usage: "simulate character movement through a level",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "world config (.toml or .yaml)"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides the configured log level"},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a scripted player through a level",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Required: true},
					&cli.StringFlag{Name: "script", Aliases: []string{"s"}, Usage: "input script, idle when empty"},
					&cli.StringSliceFlag{Name: "stats", Usage: "stats profiles, the first one active"},
					&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Usage: "ticks to run, the script length when zero"},
					&cli.IntFlag{Name: "players", Value: 1},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the telemetry as YAML"},
					&cli.StringFlag{Name: "statsview", Usage: "serve runtime charts on this address"},
					&cli.StringFlag{Name: "sentry-dsn", Sources: cli.EnvVars("SENTRY_DSN")},
				},
				Action: run,
			},
			{
				Name:  "init",
				Usage: "write the default world config and stats profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "stats", Value: "stats.toml"},
				},
				Action: initFiles,
			},
		},
	}
}

func config(cmd *cli.Command) (world.Config, error) {
	conf := world.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		if conf, err = world.LoadConfig(path); err != nil {
			return conf, err
		}
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		conf.Log.Level = lvl
	}
	return conf, nil
}

func profiles(paths []string) ([]stats.Stats, error) {
	if len(paths) == 0 {
		return []stats.Stats{stats.Default()}, nil
	}
	all := make([]stats.Stats, 0, len(paths))
	for _, path := range paths {
		s, err := stats.Load(path)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	conf, err := config(cmd)
	if err != nil {
		return err
	}
	log, err := world.NewLogger(conf.Log, os.Stderr)
	if err != nil {
		return err
	}

	if dsn := cmd.String("sentry-dsn"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			return fmt.Errorf("sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if addr := cmd.String("statsview"); addr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	w, err := world.New(conf, log)
	if err != nil {
		return err
	}
	l, err := world.LoadLevel(cmd.String("level"))
	if err != nil {
		return err
	}
	if err := w.Load(l); err != nil {
		return err
	}

	var script *input.Script
	if path := cmd.String("script"); path != "" {
		if script, err = input.LoadScript(path); err != nil {
			return err
		}
	}
	all, err := profiles(cmd.StringSlice("stats"))
	if err != nil {
		return err
	}
	players := max(int(cmd.Int("players")), 1)
	for i := range players {
		sm, err := stats.NewManager(all...)
		if err != nil {
			return err
		}
		var source world.Source
		if script != nil {
			source = script
		}
		if _, err := w.AddPlayer(fmt.Sprintf("player-%d", i+1), sm, source, state.Default()...); err != nil {
			return err
		}
	}

	frames := int(cmd.Int("frames"))
	if frames <= 0 && script != nil {
		frames = script.Length()
	}
	if frames <= 0 {
		return errors.New("nothing to run: pass --frames or a --script")
	}

	start := time.Now()
	if err := w.Run(ctx, frames); err != nil {
		return err
	}
	log.Info("simulation finished", "frames", frames, "players", players, "took", time.Since(start))

	report := make(map[string][]player.Snapshot, players)
	for _, p := range w.Players() {
		s := p.Snapshot()
		log.Info("final state", "player", s.Name, "state", s.Current, "position", s.Position,
			"grounded", s.Grounded, "health", s.Health)
		report[p.Name()] = w.Telemetry(p.Name())
	}
	if out := cmd.String("out"); out != "" {
		return writeReport(out, report, log)
	}
	return nil
}

func writeReport(path string, report map[string][]player.Snapshot, log *slog.Logger) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed encoding telemetry: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing telemetry: %w", err)
	}
	log.Info("telemetry written", "path", path)
	return nil
}

func initFiles(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = "world.toml"
	}
	if err := world.SaveDefaultConfig(path); err != nil {
		return err
	}
	return stats.SaveDefault(cmd.String("stats"))
}
