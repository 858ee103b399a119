package workers

import (
	"context"
	"time"

	"github.com/hackmate/hackmate/internal/services"
	"github.com/hackmate/hackmate/pkg/logger"
)

// ExpiryWorker periodically sweeps team invitations past their expiry
// time so stale invitations never block new ones.
type ExpiryWorker struct {
	*BaseWorker
	invitationService *services.TeamInvitationService
	interval          time.Duration
}

// NewExpiryWorker creates a new invitation expiry worker
func NewExpiryWorker(workerID string, invitationService *services.TeamInvitationService, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ExpiryWorker{
		BaseWorker:        NewBaseWorker(workerID),
		invitationService: invitationService,
		interval:          interval,
	}
}

// Start begins the expiry worker loop
func (w *ExpiryWorker) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Expiry worker %s started", w.WorkerID)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Expiry worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Expiry worker %s stopping", w.WorkerID)
			return nil
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ExpiryWorker) sweep() {
	expired, err := w.invitationService.ExpireOverdue()
	if err != nil {
		logger.Errorf("Expiry worker %s sweep failed: %v", w.WorkerID, err)
		return
	}

	if expired > 0 {
		logger.Infof("Expiry worker %s expired %d invitations", w.WorkerID, expired)
	}
}
