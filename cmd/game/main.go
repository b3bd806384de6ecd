// cmd/game/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	game "dragon-hunter/internal/app"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/state"
	"dragon-hunter/internal/storage"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
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
	balancePath := flag.String("balance", "", "YAML file with balance overrides")
	saveDir := flag.String("save-dir", "", "directory for saves (in memory when empty)")
	metricsAddr := flag.String("metrics", "", "address for the Prometheus endpoint, e.g. :2112")
	seed := flag.Int64("seed", 0, "PRNG seed (0 = current time)")
	fromMenu := flag.Bool("menu", true, "start from the menu instead of a new game")
	debug := flag.Bool("debug", false, "debug logging and pprof on localhost:6060")
	flag.Parse()

	if *debug {
		logging.Configure(os.Stderr, logging.DEBUG)
		go func() {
			log.Println(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	balance := defs.DefaultBalance()
	if *balancePath != "" {
		b, err := defs.LoadBalance(*balancePath)
		if err != nil {
			log.Fatalf("balance: %v", err)
		}
		balance = b
	}
	lib, err := defs.NewLibrary(balance)
	if err != nil {
		log.Fatalf("library: %v", err)
	}

	var store storage.KVStore = storage.NewMemoryStore()
	if *saveDir != "" {
		bs, err := storage.OpenBadgerStore(*saveDir)
		if err != nil {
			log.Fatalf("save store: %v", err)
		}
		defer bs.Close()
		store = bs
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	g := game.NewGame(lib, *seed, store)

	if *metricsAddr != "" {
		srv := g.AttachMetrics().StartHTTP(*metricsAddr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	if *fromMenu {
		sm.SetState(state.NewMenuState(sm, g))
	} else {
		sm.SetState(state.NewGameState(sm, g))
	}
	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Dragon Hunter")
	if err := ebiten.RunGame(app); err != nil {
		log.Print(err)
	}
	// итог партии при закрытии окна
	if err := g.Save(); err != nil {
		log.Printf("final save: %v", err)
	}
}
