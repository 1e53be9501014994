package main

import (
	"anonymity-service/auth"
	"anonymity-service/domain"
	"anonymity-service/infrastructure/grpc/server"
	"anonymity-service/internal"
	"anonymity-service/repositories"
	"anonymity-service/runtime"
	"anonymity-service/runtime/workers"
	"anonymity-service/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registry terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Deferred cleanups (badger above all) always run before the exit code is returned.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	policy, err := config.Policy()
	if err != nil {
		return exitConfig, err
	}
	tokens, err := auth.NewTokens(config.JWTSecret, config.AuthTokenDuration)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Registry host, deployed once for the configured owner
	host := runtime.NewHost(logger, repositories.NewRegistryRepository(db, logger), policy)
	if _, err = host.Deploy(domain.Principal(config.Owner)); err != nil {
		return exitRuntime, err
	}

	if config.DebugPort > 0 {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		internal.StartDebugServer(logger, db, config.DebugPort, endpoint, RegistryMapper, statsProvider(host))
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background workers
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(workers.NewStatusReporter(logger, host, config.StatusInterval))
	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		sup.Run(ctx)
	}()

	// 6. gRPC Server Setup
	listener, err := net.Listen("tcp", config.Address())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.Address(), err)
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(logger),
			server.AuthInterceptor(tokens),
		))
	registryServer := server.NewRegistryServer(logger, services.NewRegistryService(host))
	server.RegisterMessageRegistryServer(s, registryServer)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting gRPC server", "address", config.Address(), "at", time.Now().UTC())
		for serviceName := range s.GetServiceInfo() {
			logger.Debug("gRPC exposed services", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		sup.Stop()
		<-supervisorDone
		return exitRuntime, err
	}

	// 8. Final Cleanup (Graceful Shutdown)
	logger.Info("Shutting down gracefully...")
	s.GracefulStop()
	sup.Stop()
	<-supervisorDone
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

// RegistryMapper renders a registry entry for the debug inspector.
func RegistryMapper(key string, val []byte) internal.InspectRow {
	record := repositories.Describe(key, val)
	return internal.InspectRow{Key: record.Key, Kind: record.Kind, ID: record.ID, Detail: record.Detail}
}

func statsProvider(host *runtime.Host) internal.StatsProvider {
	return func() map[string]any {
		state, err := host.GetServiceStatus(context.Background())
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		return map[string]any{
			"owner":    state.Owner.String(),
			"status":   state.Status(),
			"messages": state.MessageCount,
			"time":     time.Now().Format(time.RFC822),
		}
	}
}
