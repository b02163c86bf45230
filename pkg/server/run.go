package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// RunHTTP serves srv in g and shuts it down once ctx is done, waiting at most timeout for
// in-flight requests.
func RunHTTP(ctx context.Context, g *errgroup.Group, name string, srv *http.Server, timeout time.Duration, logger *slog.Logger) {
	g.Go(func() error {
		logger.Info("Server listening", slog.String("server", name), slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server", slog.String("server", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// RunGRPC serves srv on lis in g. Once ctx is done the server is stopped gracefully, or
// forcibly when that takes longer than timeout.
func RunGRPC(ctx context.Context, g *errgroup.Group, srv *grpc.Server, lis net.Listener, timeout time.Duration, logger *slog.Logger) {
	g.Go(func() error {
		logger.Info("Server listening", slog.String("server", "grpc"), slog.String("addr", lis.Addr().String()))
		// Serve reports ErrServerStopped when the stop below wins the race against it
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server", slog.String("server", "grpc"))
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			return nil
		case <-time.After(timeout):
			logger.Warn("gRPC server graceful stop timed out, forcing stop")
			srv.Stop()
			return errors.New("grpc server graceful stop timed out")
		}
	})
}
