// cmd/headless-report/main.go
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/logging"
	"go-lane-defense/internal/registry"
	"go-lane-defense/internal/report"
	"go-lane-defense/internal/spectator"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

type options struct {
	configPath string
	runs       int
	ticks      int
	seedBase   int64
	seedStep   int64
	format     string
	redPotion  string
	bluePotion string
	dbURL      string
	serveAddr  string
	copyOut    bool
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "unit configuration YAML (default: embedded)")
	flag.IntVar(&opts.runs, "runs", 5, "number of headless matches")
	flag.IntVar(&opts.ticks, "ticks", 20000, "maximum 16ms ticks per match")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "strategy seed for match 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between matches")
	flag.StringVar(&opts.format, "format", "text", "report format: text or yaml")
	flag.StringVar(&opts.redPotion, "red-potion", "", "potion id for the red side")
	flag.StringVar(&opts.bluePotion, "blue-potion", "", "potion id for the blue side")
	flag.StringVar(&opts.dbURL, "db", "", "postgres connection string; blue fields the stored profile's upgrades")
	flag.StringVar(&opts.serveAddr, "serve", "", "stream matches to websocket spectators on this address, paced in real time")
	flag.BoolVar(&opts.copyOut, "copy", false, "copy the report to the clipboard")
	flag.StringVar(&opts.logLevel, "log", "warn", "log level")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	if opts.runs <= 0 {
		return errors.New("-runs must be > 0")
	}
	if opts.ticks <= 0 {
		return errors.New("-ticks must be > 0")
	}

	logger, err := logging.New(opts.logLevel, "console", "stderr")
	if err != nil {
		return err
	}
	defer logger.Sync()

	lib, err := loadLibrary(opts.configPath)
	if err != nil {
		return err
	}

	for _, id := range []string{opts.redPotion, opts.bluePotion} {
		if _, ok := lib.Potion(id); id != "" && !ok {
			return fmt.Errorf("unknown potion %q", id)
		}
	}
	if opts.format != "text" && opts.format != "yaml" {
		return fmt.Errorf("unknown report format %q", opts.format)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var loadouts [2]stats.Loadout
	loadouts[types.FactionRed].Potion = opts.redPotion
	loadouts[types.FactionBlue].Potion = opts.bluePotion
	if opts.dbURL != "" {
		owned, err := storedUpgrades(ctx, opts.dbURL)
		if err != nil {
			return err
		}
		loadouts[types.FactionBlue].Owned = owned
	}

	var hub *spectator.Hub
	if opts.serveAddr != "" {
		hub = spectator.NewHub(logger)
		go hub.Run(ctx)
		srv := &http.Server{Addr: opts.serveAddr, Handler: hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server stopped", zap.Error(err))
			}
		}()
		defer srv.Close()
		logger.Warn("streaming to spectators", zap.String("addr", opts.serveAddr))
	}

	var buf bytes.Buffer
	if opts.format == "text" {
		fmt.Fprintf(&buf, "=== Headless Match Report ===\n")
		fmt.Fprintf(&buf, "runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", opts.runs, opts.ticks, opts.seedBase, opts.seedStep)
	}

	summaries := make([]report.Summary, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		s, err := playMatch(lib, seed, opts.ticks, loadouts, hub, logger)
		if err != nil {
			return err
		}
		summaries = append(summaries, s)
		if err := report.Write(&buf, opts.format, s); err != nil {
			return err
		}
	}
	if opts.format == "text" {
		printAggregate(&buf, summaries)
	}

	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if opts.copyOut {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			logger.Warn("failed to copy report", zap.Error(err))
		}
	}
	return nil
}

func loadLibrary(path string) (*defs.Library, error) {
	if path == "" {
		return defs.LoadDefault()
	}
	return defs.Load(path)
}

func storedUpgrades(ctx context.Context, dbURL string) ([]string, error) {
	store, err := registry.OpenPostgres(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	profile, err := registry.LoadProfile(ctx, store)
	if err != nil {
		return nil, err
	}
	return profile.Owned(), nil
}

func playMatch(lib *defs.Library, seed int64, ticks int, loadouts [2]stats.Loadout, hub *spectator.Hub, logger *zap.Logger) (report.Summary, error) {
	g, err := app.NewGame(app.Options{
		Library:  lib,
		MatchID:  fmt.Sprintf("headless-%d", seed),
		Seed:     seed,
		Loadouts: loadouts,
	}, logger)
	if err != nil {
		return report.Summary{}, err
	}
	rec := report.NewRecorder(g, seed)
	if hub == nil {
		return rec.Run(ticks, 16), nil
	}

	hub.Watch(g.ECS, g.EventDispatcher)
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; i < ticks && !g.Over(); i++ {
		<-ticker.C
		rec.Step(16)
		if i%6 == 0 {
			hub.PublishSnapshot()
		}
	}
	hub.PublishSnapshot()
	return rec.Summary(), nil
}

func printAggregate(w io.Writer, all []report.Summary) {
	var wins [2]int
	unfinished := 0
	var duration float64
	for _, s := range all {
		duration += s.Duration
		if !s.Finished {
			unfinished++
			continue
		}
		for _, f := range types.Factions {
			if s.Winner == f.String() {
				wins[f]++
			}
		}
	}
	fmt.Fprintf(w, "\n=== Aggregate ===\n")
	fmt.Fprintf(w, "wins: red=%d blue=%d unfinished=%d\n", wins[types.FactionRed], wins[types.FactionBlue], unfinished)
	fmt.Fprintf(w, "mean_game_time=%.0fms\n", duration/float64(len(all)))
}
