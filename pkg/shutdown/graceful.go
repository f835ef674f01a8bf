// Package shutdown ожидает SIGINT/SIGTERM и выполняет хуки остановки в пределах таймаута.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bookcrossing/pkg/logger"
)

const (
	logSignalReceived = "shutdown signal received"
	logHookFailed     = "shutdown hook failed"
	logTimeoutReached = "shutdown timeout reached, some hooks did not finish"
)

// Wait блокирует выполнение до получения SIGINT или SIGTERM,
// затем параллельно выполняет хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Log(ctx).Info(ctx, logSignalReceived, zap.String("signal", sig.String()))

	Run(ctx, timeout, hooks...)
}

// Run выполняет хуки параллельно и возвращается, когда все завершились или истек timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logTimeoutReached)
	}
}
