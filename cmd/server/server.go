package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/web"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/equipment"
	fightsession "github.com/KirkDiggler/rpg-arena/internal/repositories/fight_session"
)

// HealthService is the name the ops listener reports readiness under
const HealthService = "rpg-arena"

const (
	shutdownTimeout = 30 * time.Second
	sweepInterval   = time.Minute
)

var flags struct {
	httpPort     int
	grpcPort     int
	catalogPath  string
	sessionStore string
	redisAddr    string
	sessionTTL   time.Duration
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the arena server",
	Long:  `Start the HTTP arena and the gRPC ops listener. Flags override ARENA_* environment variables.`,
	RunE:  runServer,
}

func init() {
	f := serverCmd.Flags()
	f.IntVar(&flags.httpPort, "http-port", 8080, "HTTP port")
	f.IntVar(&flags.grpcPort, "grpc-port", 50051, "gRPC ops port")
	f.StringVar(&flags.catalogPath, "catalog", "", "equipment catalog JSON file (embedded default when empty)")
	f.StringVar(&flags.sessionStore, "session-store", config.SessionStoreMemory, "session store: memory or redis")
	f.StringVar(&flags.redisAddr, "redis-addr", "localhost:6379", "redis address; comma separated for a cluster")
	f.DurationVar(&flags.sessionTTL, "session-ttl", fightsession.DefaultTTL, "idle session lifetime")
}

// loadConfig reads the environment, then applies the flags that were set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("http-port") {
		cfg.HTTPPort = flags.httpPort
	}
	if f.Changed("grpc-port") {
		cfg.GRPCPort = flags.grpcPort
	}
	if f.Changed("catalog") {
		cfg.CatalogPath = flags.catalogPath
	}
	if f.Changed("session-store") {
		cfg.SessionStore = flags.sessionStore
	}
	if f.Changed("redis-addr") {
		cfg.RedisAddr = flags.redisAddr
	}
	if f.Changed("session-ttl") {
		cfg.SessionTTL = flags.sessionTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping")
		cancel()
	}()

	catalog, err := equipment.New(&equipment.Config{Path: cfg.CatalogPath})
	if err != nil {
		return fmt.Errorf("failed to load equipment catalog: %w", err)
	}

	sessions, closeSessions, err := newSessionRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	service, err := arena.NewOrchestrator(&arena.Config{
		SessionRepo:   sessions,
		EquipmentRepo: catalog,
		IDGenerator:   idgen.NewUUID("sess"),
		EventBus:      newEventBus(),
	})
	if err != nil {
		return fmt.Errorf("failed to create arena orchestrator: %w", err)
	}

	handler, err := web.NewHandler(&web.HandlerConfig{
		ArenaService: service,
		CookieMaxAge: cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(HealthService, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcSrv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC ops server starting", "port", cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting",
			"port", cfg.HTTPPort,
			"session_store", cfg.SessionStore,
			"session_ttl", cfg.SessionTTL,
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		cancel()
		shutdown(healthServer, httpSrv, grpcSrv)
		return err
	}

	shutdown(healthServer, httpSrv, grpcSrv)
	return nil
}

func shutdown(healthServer *health.Server, httpSrv *http.Server, grpcSrv *grpc.Server) {
	slog.Info("Shutting down servers")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown did not complete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		grpcSrv.Stop()
	case <-stopped:
		slog.Info("Servers stopped gracefully")
	}
}

// newSessionRepository returns the configured store and a cleanup func
func newSessionRepository(ctx context.Context, cfg *config.Config) (fightsession.Repository, func(), error) {
	clk := clock.New()

	if cfg.SessionStore == config.SessionStoreRedis {
		client, err := redisclient.Connect(ctx, cfg.RedisEndpoints(), &redisclient.Options{
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		repo, err := fightsession.NewRedis(&fightsession.RedisConfig{
			Client: client,
			Clock:  clk,
			TTL:    cfg.SessionTTL,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create session repository: %w", err)
		}
		return repo, func() { _ = client.Close() }, nil
	}

	repo, err := fightsession.NewInMemory(&fightsession.InMemoryConfig{
		Clock: clk,
		TTL:   cfg.SessionTTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := repo.Sweep(); n > 0 {
					slog.Debug("Swept expired sessions", "count", n)
				}
			}
		}
	}()

	return repo, func() {}, nil
}

// newEventBus logs fight lifecycle events
func newEventBus() events.EventBus {
	bus := events.NewBus()

	bus.SubscribeFunc(arena.EventFightStarted, 0, func(_ context.Context, e events.Event) error {
		slog.Info("Fight started event",
			"session_id", eventValue(e, arena.EventKeySessionID),
			"player_id", e.Source().GetID(),
			"opponent_id", e.Target().GetID(),
		)
		return nil
	})
	bus.SubscribeFunc(arena.EventFightEnded, 0, func(_ context.Context, e events.Event) error {
		slog.Info("Fight ended event",
			"session_id", eventValue(e, arena.EventKeySessionID),
			"outcome", eventValue(e, arena.EventKeyOutcome),
		)
		return nil
	})

	return bus
}

func eventValue(e events.Event, key string) any {
	v, _ := e.Context().Get(key)
	return v
}

// interceptorLogger bridges go-grpc-middleware logging to slog
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
