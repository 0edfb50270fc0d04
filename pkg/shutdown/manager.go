package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc releases one component
type ShutdownFunc func(context.Context) error

// Component represents a registered shutdown component
type Component struct {
	Name         string
	ShutdownFunc ShutdownFunc
}

// Manager releases registered components in reverse registration order
// (LIFO), so a store closes before the pool it borrows connections from.
type Manager struct {
	logger     *zap.Logger
	components []Component
	mu         sync.Mutex
	timeout    time.Duration
	done       bool
}

// NewManager creates a new shutdown manager
func NewManager(logger *zap.Logger, timeout time.Duration) *Manager {
	return &Manager{
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a shutdown function to be called during shutdown
func (sm *Manager) Register(name string, fn ShutdownFunc) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.components = append(sm.components, Component{Name: name, ShutdownFunc: fn})
	sm.logger.Debug("Registered shutdown component",
		zap.String("component", name),
		zap.Int("registration_order", len(sm.components)),
	)
}

// RegisterNoErr registers a shutdown function that cannot fail, such as pgxpool.Pool.Close
func (sm *Manager) RegisterNoErr(name string, fn func()) {
	sm.Register(name, func(context.Context) error {
		fn()
		return nil
	})
}

// RegisterFunc registers a shutdown function that ignores the context
func (sm *Manager) RegisterFunc(name string, fn func() error) {
	sm.Register(name, func(context.Context) error {
		return fn()
	})
}

// Shutdown runs every registered component once, newest first, and returns
// the joined errors. Later calls are no-ops.
func (sm *Manager) Shutdown() error {
	sm.mu.Lock()
	if sm.done {
		sm.mu.Unlock()
		return nil
	}
	sm.done = true
	components := make([]Component, len(sm.components))
	copy(components, sm.components)
	sm.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	var errs []error
	for i := len(components) - 1; i >= 0; i-- {
		comp := components[i]
		start := time.Now()

		if err := comp.ShutdownFunc(ctx); err != nil {
			sm.logger.Error("Component shutdown failed",
				zap.String("component", comp.Name),
				zap.Error(err),
				zap.Duration("elapsed", time.Since(start)),
			)
			errs = append(errs, fmt.Errorf("%s: %w", comp.Name, err))
			continue
		}
		sm.logger.Debug("Component shut down",
			zap.String("component", comp.Name),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return errors.Join(errs...)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM. A gateway
// exchange already on the wire is not retried after cancellation, so the
// caller must treat a cancelled call as an unknown outcome.
func SignalContext(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		if parent.Err() == nil && errors.Is(ctx.Err(), context.Canceled) {
			logger.Warn("Received shutdown signal")
		}
	}()
	return ctx, stop
}
