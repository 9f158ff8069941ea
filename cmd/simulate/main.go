package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/emberfall/internal/ai"
	"github.com/udisondev/emberfall/internal/config"
	"github.com/udisondev/emberfall/internal/game/campaign"
	"github.com/udisondev/emberfall/internal/game/combat"
	"github.com/udisondev/emberfall/internal/game/geo"
	"github.com/udisondev/emberfall/internal/game/power"
	"github.com/udisondev/emberfall/internal/game/scenario"
	"github.com/udisondev/emberfall/internal/game/skirmish"
	"github.com/udisondev/emberfall/internal/i18n"
)

const ConfigPath = "config/simulate.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("EMBERFALL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableTrace(logLevel == slog.LevelDebug)

	slog.Info("emberfall simulate starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"campaign", cfg.Campaign.Driver)

	store, closeStore, err := openStore(ctx, cfg.Campaign)
	if err != nil {
		return err
	}
	defer closeStore()

	camp := campaign.NewManager(store)
	if err := camp.Load(ctx); err != nil {
		return err
	}

	catalog, err := power.Load(cfg.PowersPath)
	if err != nil {
		return err
	}
	sc, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		return err
	}

	mapPath := cfg.MapPath
	if sc.Map != "" {
		mapPath = sc.Map
		if !filepath.IsAbs(mapPath) {
			mapPath = filepath.Join(filepath.Dir(cfg.ScenarioPath), mapPath)
		}
	}
	m, err := geo.LoadMap(mapPath)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = combat.CryptoSeed()
	}
	slog.Info("combat rng seeded", "seed", seed)
	dice := combat.NewRand(seed)

	text := &combat.TextLog{Verbose: logLevel == slog.LevelDebug}
	resolver := combat.NewResolver(cfg.Combat, dice, catalog, m, camp, text)
	resolver.SetPrinter(i18n.Printer(i18n.Resolve(cfg.Language)))
	resolver.SetShakeFunc(func(ticks int) {
		slog.Debug("screen shake", "ticks", ticks)
	})

	world, err := skirmish.Build(sc, m, catalog, resolver, skirmish.Options{
		Dice:         dice,
		Audio:        newLogAudio(),
		Campaign:     camp,
		FramesPerSec: cfg.Combat.MaxFramesPerSec,
	})
	if err != nil {
		return fmt.Errorf("building skirmish: %w", err)
	}

	var interval time.Duration
	if cfg.Realtime {
		interval = time.Second / time.Duration(cfg.Combat.MaxFramesPerSec)
	}

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	if cfg.WatchPowers {
		g.Go(func() error {
			return catalog.Watch(watchCtx, cfg.PowersPath)
		})
		slog.Info("watching powers", "path", cfg.PowersPath)
	}

	g.Go(func() error {
		defer stopWatch()
		res, err := world.Run(gctx, cfg.Ticks, interval)
		if err != nil {
			return err
		}
		slog.Info("result",
			"hero_alive", res.HeroAlive,
			"enemies_alive", res.EnemiesAlive,
			"hits", res.Hits,
			"crits", res.Crits,
			"misses", res.Misses,
			"damage", res.Damage,
			"hazards", res.Hazards,
			"combat_texts", len(text.Events))
		return nil
	})

	runErr := g.Wait()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("running skirmish: %w", runErr)
	}

	// сохраняем даже после Ctrl+C: статусы уже получены
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := camp.Save(saveCtx); err != nil {
		return err
	}

	slog.Info("emberfall simulate stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
