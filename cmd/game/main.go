// cmd/game/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/audio"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/logging"
	"go-lane-defense/internal/registry"
	"go-lane-defense/internal/render"
	"go-lane-defense/internal/state"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := float64(now.Sub(a.lastUpdateTime).Microseconds()) / 1000
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "", "unit configuration YAML (default: embedded)")
	dbURL := flag.String("db", "", "postgres connection string for the player registry (default: in memory)")
	seed := flag.Int64("seed", 0, "strategy seed, 0 for random")
	human := flag.Bool("human", true, "play the blue side")
	mute := flag.Bool("mute", false, "disable sound")
	logLevel := flag.String("log", "info", "log level")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address")
	flag.Parse()

	logger, err := logging.New(*logLevel, "console", "stderr")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof stopped", zap.Error(http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	lib, err := loadLibrary(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	store, err := openStore(ctx, *dbURL)
	if err != nil {
		logger.Fatal("failed to open registry", zap.Error(err))
	}
	defer store.Close()

	var sounds *audio.SoundManager
	if !*mute {
		sink, err := audio.NewSpeakerSink()
		if err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		} else {
			defer sink.Close()
			sounds = audio.NewSoundManager(sink, app.HumanFaction, logger)
		}
	}

	newMatch := func(tracker *render.AnimationTracker) (*app.Game, error) {
		profile, err := registry.LoadProfile(ctx, store)
		if err != nil {
			return nil, err
		}
		g, err := app.NewGame(app.Options{
			Library:  lib,
			Seed:     *seed,
			Human:    *human,
			Profile:  profile,
			Store:    store,
			Animator: tracker,
		}, logger)
		if err != nil {
			return nil, err
		}
		if sounds != nil {
			sounds.Attach(g.EventDispatcher)
		}
		return g, nil
	}

	sm := state.NewStateMachine()
	gs, err := state.NewGameState(sm, newMatch, basicfont.Face7x13, logger)
	if err != nil {
		logger.Fatal("failed to start match", zap.Error(err))
	}
	sm.SetState(gs)

	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Lane Defense")
	if err := ebiten.RunGame(a); err != nil {
		logger.Fatal("game loop stopped", zap.Error(err))
	}
}

func loadLibrary(path string) (*defs.Library, error) {
	if path == "" {
		return defs.LoadDefault()
	}
	return defs.Load(path)
}

func openStore(ctx context.Context, dbURL string) (registry.Store, error) {
	if dbURL == "" {
		return registry.NewMemoryStore(), nil
	}
	return registry.OpenPostgres(ctx, dbURL)
}
