// cmd/tui/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/logging"
	"go-lane-defense/internal/tui"
)

func main() {
	var configPath string
	var seed int64
	var human bool
	var logPath string

	flag.StringVar(&configPath, "config", "", "unit configuration YAML (default: embedded)")
	flag.Int64Var(&seed, "seed", 0, "strategy seed, 0 for random")
	flag.BoolVar(&human, "human", true, "play the blue side from the keyboard")
	flag.StringVar(&logPath, "log", "lane-tui.log", "log file; the terminal is taken by the view")
	flag.Parse()

	logger, err := logging.New("info", "json", logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	lib, err := loadLibrary(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	game, err := app.NewGame(app.Options{Library: lib, Seed: seed, Human: human}, logger)
	if err != nil {
		logger.Fatal("failed to start match", zap.Error(err))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatal("failed to open terminal", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		logger.Fatal("failed to init terminal", zap.Error(err))
	}
	defer screen.Fini()

	run(screen, tui.NewLaneView(screen, game), game)
}

func loadLibrary(path string) (*defs.Library, error) {
	if path == "" {
		return defs.LoadDefault()
	}
	return defs.Load(path)
}

func run(screen tcell.Screen, view *tui.LaneView, game *app.Game) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if view.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			game.Update(float64(now.Sub(last).Microseconds()) / 1000)
			last = now
			view.Draw()
		}
	}
}
