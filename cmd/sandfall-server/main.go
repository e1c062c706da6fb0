package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sandfall/internal/app"
	"sandfall/internal/core"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/stream"
)

func main() {
	cfg := app.NewConfig()
	flag.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "YAML world config file")
	flag.Var(cfg.Set, "set", "world option as key=value (repeatable)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for simulation reset")
	flag.IntVar(&cfg.TPS, "tps", cfg.TPS, "ticks per second")
	load := flag.String("load", "", "snapshot file to start from")
	listen := flag.String("listen", ":8080", "HTTP listen address")
	flag.Parse()

	logger := log.New(os.Stderr, "sandfall-server ", log.LstdFlags)

	world, err := app.NewWorld(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	if *load != "" {
		if err := world.Load(*load); err != nil {
			logger.Fatal(err)
		}
	}

	size := world.Size()
	srv, err := stream.NewServer(size.W, size.H, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer srv.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())
	httpSrv := &http.Server{Addr: *listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("serving %dx%d world on %s/ws", size.W, size.H, *listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("http: %v", err)
			stop()
		}
	}()

	run(ctx, world, srv, cfg.TPS, logger)

	shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdown)
}

// run steps the world at tps and publishes every frame until ctx is done.
func run(ctx context.Context, w *sandfall.World, srv *stream.Server, tps int, logger *log.Logger) {
	timer := core.NewFixedStep(tps)
	ticker := time.NewTicker(timer.Step())
	defer ticker.Stop()

	size := w.Size()
	buf := make([]byte, 4*size.W*size.H)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if advance(w, srv.Commands(), timer.Pending(), logger) == 0 {
			continue
		}
		w.FillRGBA(buf)
		srv.Publish(buf)
	}
}

// advance applies queued commands and then steps the world once per due
// tick. It returns the number of frames stepped.
func advance(w *sandfall.World, cmds <-chan stream.Command, due int, logger *log.Logger) int {
	if due <= 0 {
		return 0
	}
	drainCommands(w, cmds, logger)
	for i := 0; i < due; i++ {
		w.Step()
	}
	return due
}

// drainCommands applies every queued command without blocking.
func drainCommands(w *sandfall.World, cmds <-chan stream.Command, logger *log.Logger) {
	for {
		select {
		case cmd := <-cmds:
			if err := applyCommand(w, cmd); err != nil {
				logger.Printf("command: %v", err)
			}
		default:
			return
		}
	}
}
