// Package signals ties process signals to context cancellation.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alfurqan/aidctl/internal/pkg/logger"
)

// signalBuffer is the capacity of the signal channel
const signalBuffer = 1

// SetupHandler cancels the provided context on SIGINT, SIGTERM or SIGHUP.
// Returns a cleanup function that should be called when the handler is no longer needed.
func SetupHandler(ctx context.Context, cancel context.CancelFunc) (cleanup func()) {
	sigCh := make(chan os.Signal, signalBuffer)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case sig := <-sigCh:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigCh)
		cancel()
		<-done
	}
}
