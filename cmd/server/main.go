package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/plomlompom/plomrogue2-experiments/internal/engine"
	"github.com/plomlompom/plomrogue2-experiments/internal/infrastructure/storage"
	"github.com/plomlompom/plomrogue2-experiments/internal/server"
	"github.com/plomlompom/plomrogue2-experiments/internal/version"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	cfg.Port = envInt("PLOM_PORT", cfg.Port)
	cfg.HTTPPort = os.Getenv("PLOM_HTTP_PORT")
	cfg.PostgresDSN = os.Getenv("PLOM_PG_DSN")

	flag.IntVar(&cfg.Port, "port", cfg.Port, "TCP port of the '$'-framed protocol")
	flag.StringVar(&cfg.HTTPPort, "http", cfg.HTTPPort, "HTTP port for /ws, /health, /version (empty disables)")
	flag.StringVar(&cfg.Geometry, "geometry", cfg.Geometry, "Map geometry: hex or square")
	flag.IntVar(&cfg.ViewRadius, "radius", cfg.ViewRadius, "View radius of animate things")
	flag.DurationVar(&cfg.AutosaveEvery, "autosave", cfg.AutosaveEvery, "Autosave period (0 disables)")
	flag.StringVar(&cfg.PostgresDSN, "pg", cfg.PostgresDSN, "PostgreSQL DSN for snapshot copies (empty disables)")
	replay := flag.Bool("replay", false, "Replay GAME_FILE, print a summary and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] GAME_FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.GameFile = flag.Arg(0)

	logger.Log.Info("Starting plomrogue server...")
	logger.Log.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Инициализация игры
	game, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Bad configuration")
	}
	defer func() {
		if err := game.Close(); err != nil {
			logger.Log.WithError(err).Warn("Closing snapshot stores failed")
		}
	}()

	var initial []string
	if cfg.PostgresDSN != "" {
		pg, err := storage.NewPostgresStore(ctx, cfg.PostgresDSN, cfg.GameFile)
		if err != nil {
			logger.Log.WithError(err).Fatal("PostgreSQL unavailable")
		}
		game.AddSnapshotStore(pg)

		// Без журнала игра начинается с последнего снимка из базы
		if _, statErr := os.Stat(cfg.GameFile); errors.Is(statErr, os.ErrNotExist) {
			snap, err := pg.LatestSnapshot(ctx)
			switch {
			case err == nil:
				logger.Log.WithField("turn", snap.Turn).Info("Restoring from database snapshot")
				initial = snap.Lines
			case !errors.Is(err, sql.ErrNoRows):
				logger.Log.WithError(err).Fatal("Reading database snapshot failed")
			}
		}
	}

	// РЕЖИМ РЕПЛЕЯ
	if *replay {
		if _, err := os.Stat(cfg.GameFile); err != nil {
			logger.Log.WithError(err).Fatal("Nothing to replay")
		}
		if err := game.LoadGame(nil); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		printSummary(game)
		return
	}

	if err := game.LoadGame(initial); err != nil {
		logger.Log.WithError(err).Fatal("Loading game failed")
	}

	// 3. Запуск цикла и серверов
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		game.Run(ctx)
	}()

	tcp := server.NewTCPServer(":"+strconv.Itoa(cfg.Port), game.Inbox)
	if err := tcp.Listen(); err != nil {
		logger.Log.WithError(err).Fatal("Server start error")
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcp.Serve(ctx); err != nil {
			logger.Log.WithError(err).Error("Protocol server failed")
			stop()
		}
	}()

	if cfg.HTTPPort != "" {
		srv := server.NewHTTPServer(game, cfg.HTTPPort)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				logger.Log.WithError(err).Error("HTTP server failed")
				stop()
			}
		}()
	}

	<-ctx.Done()
	logger.Log.Info("Shutting down...")
	wg.Wait()
	logger.Log.Info("Done.")
}

// printSummary печатает итог реплея.
func printSummary(game *engine.GameService) {
	w := game.World
	fmt.Printf("turn:   %d\n", w.Turn)
	fmt.Printf("seed:   %q\n", w.Seed)
	fmt.Printf("tiles:  %d of %s\n", w.Maps.Len(), w.Maps.TileSize)
	fmt.Printf("things: %d\n", len(w.Things()))
	if p := w.Player(); p != nil {
		fmt.Printf("player: %d %s at %s/%s, health %d, alive %t\n",
			p.ID, p.Type, p.Position.Big, p.Position.Small, p.Health, w.PlayerIsAlive)
	}
}

// envInt читает целое из окружения, при ошибке оставляет def.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Log.WithField(key, v).Warn("Ignoring non-integer environment value")
		return def
	}
	return n
}
