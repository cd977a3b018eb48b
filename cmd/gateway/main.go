package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	commonlog "media_gateway/server/common/log"
	"media_gateway/server/common/netaddr"
	gatewayapp "media_gateway/server/gateway/app"
)

func main() {
	_ = godotenv.Load()
	cfg := gatewayapp.LoadConfig()

	commonlog.Init(commonlog.Config{
		Path:       cfg.LogPath,
		Level:      cfg.LogLevel,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer commonlog.Sync()

	server, err := gatewayapp.NewServer(cfg)
	if err != nil {
		log.Fatalf("initialize media gateway: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		commonlog.Infof("start media gateway on %s:%s (backend=%s, mount=%s)", cfg.Host, cfg.Port, cfg.StorageBackend, cfg.MountPoint)
		commonlog.Infof("network access: http://%s:%s/ping", netaddr.LocalIPv4(), cfg.Port)
		if err := server.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run media gateway: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		commonlog.Errorf("shutdown media gateway gracefully: %v", err)
	}
}
