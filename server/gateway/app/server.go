package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"media_gateway/server/common/infra/cache"
	"media_gateway/server/common/infra/mount"
	"media_gateway/server/common/infra/mq"
	"media_gateway/server/common/infra/object"
	"media_gateway/server/common/infra/storage"
	commonlog "media_gateway/server/common/log"
	gatewayapi "media_gateway/server/gateway/api"
	"media_gateway/server/gateway/repository"
	"media_gateway/server/gateway/service"
)

type Server struct {
	HTTPServer *http.Server
	closers    []func()
}

func NewServer(cfg Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fileSvc := service.NewFileService(service.Config{
		PublicHost: cfg.PublicHost,
		Port:       cfg.Port,
	}, store)

	hub := service.NewHub()
	sinks := service.MultiSink{hub}
	var closers []func()

	if cfg.RedisAddr != "" {
		rdb := cache.NewClient(cfg.RedisAddr)
		if err := cache.Ping(ctx, rdb); err != nil {
			commonlog.Warnf("redis unavailable, listing cache disabled: %v", err)
			_ = rdb.Close()
		} else {
			fileSvc.UseListingCache(cache.NewListingCache(rdb, cfg.ListCacheTTL))
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}

	var ledger *repository.UploadLedger
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		ledger = repository.NewUploadLedger(pool)
		if err := ledger.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure ledger schema: %w", err)
		}
		fileSvc.UseLedger(ledger)
		closers = append(closers, pool.Close)
	}

	if cfg.AMQPURL != "" {
		conn, err := mq.NewConnection(cfg.AMQPURL)
		if err != nil {
			return nil, fmt.Errorf("connect amqp: %w", err)
		}
		sink, err := service.NewAMQPSink(conn)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("declare storage events exchange: %w", err)
		}
		sinks = append(sinks, sink)
		closers = append(closers, func() {
			sink.Close()
			_ = conn.Close()
		})
	}

	fileSvc.UseEvents(sinks)

	h := gatewayapi.NewHandler(gatewayapi.Config{
		SMBHost:        cfg.SMBHost,
		SMBShare:       cfg.SMBShare,
		MountPoint:     cfg.MountPoint,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, fileSvc, ledger, hub)

	r := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type"}
	r.Use(cors.New(corsCfg))
	h.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: r,
		// generous timeouts: uploads up to the 50MB ceiling and long video
		// streams must survive slow links
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{HTTPServer: httpServer, closers: closers}, nil
}

func newStore(ctx context.Context, cfg Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "minio":
		client, err := object.NewClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			return nil, fmt.Errorf("initialize minio: %w", err)
		}
		if err := object.EnsureBucket(ctx, client, cfg.MinioBucket); err != nil {
			return nil, fmt.Errorf("ensure minio bucket: %w", err)
		}
		return object.NewStore(client, cfg.MinioBucket), nil
	default:
		st, err := mount.NewStore(cfg.MountPoint)
		if err != nil {
			return nil, fmt.Errorf("prepare mount point: %w", err)
		}
		return st, nil
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.HTTPServer.Shutdown(ctx)
	for _, closeFn := range s.closers {
		closeFn()
	}
	return err
}
