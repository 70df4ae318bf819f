package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/golang/glog"

	"snakegame/internal/config"
	"snakegame/internal/term"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()
	defer glog.Flush()

	cfg, err := flags.Resolve()
	if err != nil {
		glog.Fatal(err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	glog.Infof("Seed %d", seed)
	rng := rand.New(rand.NewSource(seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	walls := config.NewWallSwitch(cfg.WallMode())
	if flags.Path != "" {
		go func() {
			if err := config.Watch(ctx, flags.Path, walls, flags.WallsSet()); err != nil {
				glog.Errorf("Not watching config: %v", err)
			}
		}()
	}

	glog.Infof("Starting loop")
	if err := term.Run(ctx, cfg, walls, rng); err != nil {
		glog.Fatal(err)
	}
}
