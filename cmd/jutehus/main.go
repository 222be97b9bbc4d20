package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jutehus/jutehus/config"
	"github.com/jutehus/jutehus/internal/adminapi"
	"github.com/jutehus/jutehus/internal/app"
	"github.com/jutehus/jutehus/internal/publicapi"
	"github.com/jutehus/jutehus/internal/webserver"
)

var (
	h        bool
	x        bool
	showVer  bool
	conffile string
)

// Build metadata injected with -ldflags.
var (
	BuildVersion string
	BuildTime    string
)

func init() {
	flag.BoolVar(&h, "h", false, "help")
	flag.BoolVar(&x, "x", false, "drop and reinitialize the database, for development only")
	flag.BoolVar(&showVer, "v", false, "print version")
	flag.StringVar(&conffile, "c", "jutehus.yml", "config file")
}

func printVersion() {
	fmt.Fprintf(os.Stdout, "jutehus version %s, build %s\n", BuildVersion, BuildTime)
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		return
	}
	if showVer {
		printVersion()
		return
	}

	cfg := config.LoadConfig(conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if x {
		application.DropAll()
		if err := application.MigrateDB(true); err != nil {
			zap.S().Fatalf("database init failed: %v", err)
		}
		application.InitDb()
		zap.S().Info("database reinitialized")
		return
	}

	webserver.Init(application)
	adminapi.InitRouter()
	publicapi.InitRouter()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	application.StartBackgroundJobs(ctx)

	go func() {
		if err := webserver.Listen(); err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := webserver.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
