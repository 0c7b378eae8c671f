// Package scheduler runs periodic housekeeping for the portal. The
// maintenance worker sweeps Midtrans donations that were never paid and
// closes events whose end time has passed, so neither lingers in an open
// state waiting for a webhook or an admin that will never come.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

// MaintenanceConfig holds configuration for the maintenance worker
type MaintenanceConfig struct {
	// CheckInterval is how often the sweeps run
	CheckInterval time.Duration

	// DonationExpiry is how long a Midtrans donation may stay pending
	// before it is marked expired
	DonationExpiry time.Duration

	// SweepBatchSize caps how many rows a single sweep touches
	SweepBatchSize int
}

// DefaultMaintenanceConfig returns default maintenance configuration
func DefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		CheckInterval:  5 * time.Minute,
		DonationExpiry: 24 * time.Hour,
		SweepBatchSize: 100,
	}
}

// MaintenanceWorker periodically expires stale pending donations and
// closes events that have already ended
type MaintenanceWorker struct {
	config    MaintenanceConfig
	donations donation.DonationRepository
	events    event.EventRepository
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewMaintenanceWorker creates a new maintenance worker
func NewMaintenanceWorker(
	config MaintenanceConfig,
	donations donation.DonationRepository,
	events event.EventRepository,
	logger *zap.Logger,
) *MaintenanceWorker {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultMaintenanceConfig().CheckInterval
	}
	if config.DonationExpiry <= 0 {
		config.DonationExpiry = DefaultMaintenanceConfig().DonationExpiry
	}
	if config.SweepBatchSize <= 0 {
		config.SweepBatchSize = DefaultMaintenanceConfig().SweepBatchSize
	}
	return &MaintenanceWorker{
		config:    config,
		donations: donations,
		events:    events,
		logger:    logger,
	}
}

// Start starts the maintenance worker
func (w *MaintenanceWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = true
	w.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.runLoop(ctx)

	w.logger.Info("Maintenance worker started",
		zap.Duration("check_interval", w.config.CheckInterval),
		zap.Duration("donation_expiry", w.config.DonationExpiry),
	)

	return nil
}

// Stop stops the maintenance worker and waits for an in-flight sweep
func (w *MaintenanceWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = false
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("Maintenance worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop runs the sweeps on every tick
func (w *MaintenanceWorker) runLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce runs a single maintenance pass. It is exposed so an operator
// can trigger a sweep without waiting for the next tick.
func (w *MaintenanceWorker) RunOnce(ctx context.Context) {
	w.sweepExpiredDonations(ctx)
	w.closeEndedEvents(ctx)
}

// sweepExpiredDonations expires Midtrans donations that stayed pending
// past the expiry window. Bank transfer donations are excluded because
// they stay pending until an admin confirms the transfer by hand.
func (w *MaintenanceWorker) sweepExpiredDonations(ctx context.Context) {
	cutoff := time.Now().Add(-w.config.DonationExpiry)

	stale, err := w.donations.FindStalePending(ctx, donation.PaymentMethodMidtrans, cutoff, w.config.SweepBatchSize)
	if err != nil {
		w.logger.Error("Failed to list stale pending donations", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	expired := 0
	for i := range stale {
		don := &stale[i]
		if err := don.MarkExpired(); err != nil {
			// Status changed between the query and the sweep.
			continue
		}
		if err := w.donations.Save(ctx, don); err != nil {
			w.logger.Error("Failed to expire donation",
				zap.String("order_id", don.OrderID),
				zap.Error(err),
			)
			continue
		}
		expired++
	}

	if expired > 0 {
		w.logger.Info("Expired stale pending donations",
			zap.Int("count", expired),
			zap.Time("cutoff", cutoff),
		)
	}
}

// closeEndedEvents closes open events whose end time has passed so they
// stop accepting registrations
func (w *MaintenanceWorker) closeEndedEvents(ctx context.Context) {
	filter := shared.Filter{
		Page:     1,
		PageSize: w.config.SweepBatchSize,
		Filters: map[string]interface{}{
			"status":       string(event.EventStatusOpen),
			"ended_before": time.Now(),
		},
	}

	ended, err := w.events.FindAll(ctx, filter)
	if err != nil {
		w.logger.Error("Failed to list ended open events", zap.Error(err))
		return
	}

	closed := 0
	for i := range ended {
		evt := &ended[i]
		if err := evt.Close(); err != nil {
			continue
		}
		if err := w.events.Save(ctx, evt); err != nil {
			w.logger.Error("Failed to close ended event",
				zap.String("slug", evt.Slug),
				zap.Error(err),
			)
			continue
		}
		closed++
	}

	if closed > 0 {
		w.logger.Info("Closed ended events", zap.Int("count", closed))
	}
}
