// Command steamraiders runs the game core: the deterministic tick
// simulation, the SQLite persistence layer, and the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talgya/steamraiders/internal/alliance"
	"github.com/talgya/steamraiders/internal/api"
	"github.com/talgya/steamraiders/internal/apiclient"
	"github.com/talgya/steamraiders/internal/colony"
	"github.com/talgya/steamraiders/internal/config"
	"github.com/talgya/steamraiders/internal/engine"
	"github.com/talgya/steamraiders/internal/galaxy"
	"github.com/talgya/steamraiders/internal/message"
	"github.com/talgya/steamraiders/internal/mission"
	"github.com/talgya/steamraiders/internal/notify"
	"github.com/talgya/steamraiders/internal/persistence"
	"github.com/talgya/steamraiders/internal/shipyard"
	"github.com/talgya/steamraiders/internal/universe"
)

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Steam Raiders — Aethership Command Core")

	cfgPath := os.Getenv("STEAMRAIDERS_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("configuration loaded",
		"tick_interval", cfg.TickInterval,
		"server_speed", cfg.ServerSpeed,
		"port", cfg.ListenPort,
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	nowMillis := func() int64 { return time.Now().UnixMilli() }
	notifier := notify.NewCenter(nowMillis)

	// Persist every emitted notification; the log survives restarts.
	events, unsubscribe := notifier.Subscribe(128)
	defer unsubscribe()
	go func() {
		for n := range events {
			if err := db.AppendNotifications([]notify.Notification{n}); err != nil {
				slog.Error("failed to log notification", "error", err)
			}
		}
	}()

	// ── Galaxy Directory (backend with offline fallback) ──────────────
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		directory     *galaxy.Directory
		allianceStore *alliance.Store
	)

	if cfg.APIBaseURL != "" {
		client := apiclient.New(cfg.APIBaseURL)
		snap, err := client.FetchDirectorySnapshot(ctx)
		if err == nil {
			slog.Info("directory loaded from backend",
				"systems", len(snap.Systems),
				"players", len(snap.Players),
			)
			directory = galaxy.NewDirectory(snap.Systems, snap.Players, snap.CurrentPlayerID)
			allianceStore = alliance.NewStore(func(ctx context.Context) ([]alliance.Alliance, map[string]string, string, error) {
				dir, err := client.FetchAllianceDirectory(ctx)
				if err != nil {
					return nil, nil, "", err
				}
				return dir.Alliances, dir.Invites, dir.CurrentAllianceID, nil
			}, nil, directory)
		} else {
			slog.Warn("directory backend unreachable, falling back to mock universe", "error", err)
		}
	}

	if directory == nil {
		genCfg := universe.DefaultGenConfig()
		genCfg.Seed = cfg.Seed
		uni := universe.Generate(genCfg)
		slog.Info("mock universe generated",
			"seed", genCfg.Seed,
			"systems", len(uni.Systems),
			"players", len(uni.Players),
			"alliances", len(uni.Alliances),
		)
		directory = galaxy.NewDirectory(uni.Systems, uni.Players, uni.CurrentPlayerID)
		allianceStore = alliance.NewStore(nil, uni.Alliances, directory)
	}
	allianceStore.Refresh(ctx)

	// ── Simulation State ──────────────────────────────────────────────
	col := colony.New(cfg.ServerSpeed, notifier)
	missions := mission.NewStore(directory, notifier)

	var yard *shipyard.Yard
	if snap, ok, err := db.LoadShipyard(); err != nil {
		slog.Error("failed to load shipyard", "error", err)
		os.Exit(1)
	} else if ok {
		yard = shipyard.Restore(snap, col, notifier)
		slog.Info("shipyard restored", "queued_orders", len(snap.Queue))
	} else {
		yard = shipyard.New(col, notifier)
	}

	messages := message.NewStore(nowMillis)

	if tickStr, ok, err := db.GetMeta("last_tick"); err == nil && ok {
		if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
			slog.Info("resuming session", "last_tick", t)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.New(cfg.TickInterval,
		engine.AdvanceFunc(col.Tick),
		missions,
		yard,
	)

	// ── HTTP API ──────────────────────────────────────────────────────
	hub := api.NewHub(notifier)
	server := api.NewServer(cfg.ListenPort)
	server.Colony = col
	server.Directory = directory
	server.Missions = missions
	server.Yard = yard
	server.Alliances = allianceStore
	server.Messages = messages
	server.Notifier = notifier
	server.Hub = hub
	server.Start()

	if cfg.DeepLink != "" {
		server.SelectSystem(cfg.DeepLink)
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nSteam Raiders core online.\n")
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.ListenPort)
	fmt.Println("Simulation running... (Ctrl+C to stop)")

	eng.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveShipyard(yard.Snapshot()); err != nil {
		slog.Error("shipyard save failed", "error", err)
	}
	if err := db.SaveMeta("last_tick", strconv.FormatUint(eng.Ticks(), 10)); err != nil {
		slog.Error("meta save failed", "error", err)
	}
	hub.Close()

	fmt.Println("Simulation stopped. State saved.")
}
