package workers

import (
	"context"
	"time"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
	"github.com/hackmate/hackmate/pkg/logger"
)

// StatsWorker periodically recomputes the per-user participation
// counters shown on profiles and used by the matcher's track record.
type StatsWorker struct {
	*BaseWorker
	userRepo        *repositories.UserRepository
	applicationRepo *repositories.ApplicationRepository
	hackathonRepo   *repositories.HackathonRepository
	interval        time.Duration
}

// NewStatsWorker creates a new stats worker
func NewStatsWorker(workerID string, userRepo *repositories.UserRepository,
	applicationRepo *repositories.ApplicationRepository, hackathonRepo *repositories.HackathonRepository,
	interval time.Duration) *StatsWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StatsWorker{
		BaseWorker:      NewBaseWorker(workerID),
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		hackathonRepo:   hackathonRepo,
		interval:        interval,
	}
}

// Start begins the stats worker loop
func (w *StatsWorker) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Stats worker %s started", w.WorkerID)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Stats worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Stats worker %s stopping", w.WorkerID)
			return nil
		case <-ticker.C:
			w.recomputeAll()
		}
	}
}

func (w *StatsWorker) recomputeAll() {
	userIDs, err := w.userRepo.ListIDs()
	if err != nil {
		logger.Errorf("Stats worker %s failed to list users: %v", w.WorkerID, err)
		return
	}

	for _, userID := range userIDs {
		if err := w.recomputeUser(userID); err != nil {
			logger.Errorf("Stats worker %s failed for user %s: %v", w.WorkerID, userID, err)
		}
	}
}

func (w *StatsWorker) recomputeUser(userID string) error {
	user, err := w.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	participated, err := w.applicationRepo.CountByUserStatuses(userID, []string{models.ApplicationStatusAccepted})
	if err != nil {
		return err
	}

	organized, err := w.hackathonRepo.CountByCreator(userID)
	if err != nil {
		return err
	}

	if participated == user.TotalHackathonsParticipated && organized == user.TotalHackathonsOrganized {
		return nil
	}

	// HackathonsWon comes from manual result entry; keep it as is.
	return w.userRepo.UpdateStats(userID, participated, organized, user.HackathonsWon)
}
