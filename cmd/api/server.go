package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"propertypro-backend/internal/config"
	"propertypro-backend/pkg/container"
)

// uploadBytesPerSecond: băng thông tối thiểu giả định của client khi upload ảnh
const uploadBytesPerSecond = 256 * 1024

func Serve() {
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatalf("❌ Failed to initialize container: %v", err)
	}
	defer appContainer.Cleanup()

	srv := newHTTPServer(appContainer.Config, SetupRouter(appContainer))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🏠 %s %s listening on %s (%s)",
			appContainer.Config.App.Name, appContainer.Config.App.Version,
			srv.Addr, appContainer.Config.App.Environment)
		log.Printf("💚 Health Check: http://localhost%s/api/v2/health", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		// defer Cleanup vẫn chạy, không dùng log.Fatal ở đây
		log.Printf("❌ Server stopped: %v", err)
		return
	case <-ctx.Done():
	}

	log.Printf("🛑 Shutting down, waiting up to %s for in-flight requests...", appContainer.Config.App.ShutdownTimeout)
	if err := shutdown(srv, appContainer.Config.App.ShutdownTimeout); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
		return
	}
	log.Println("✅ Server exited gracefully")
}

// newHTTPServer: read/write timeout đủ cho một ảnh kích thước tối đa
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	timeout := 15 * time.Second
	if cfg.Upload.MaxImageBytes > 0 {
		timeout += time.Duration(cfg.Upload.MaxImageBytes/uploadBytesPerSecond) * time.Second
	}

	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

func shutdown(srv *http.Server, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
