package scheduler

import (
	"context"
	"fmt"
	"time"

	"rent-bo-svc/internal/models"
	"rent-bo-svc/internal/repository"
	"rent-bo-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// SessionSweepJobCode identifies sweeper runs in scheduler_logs
const SessionSweepJobCode = "RENT_SCREEN_SESSION_SWEEP"

// Sweeper evicts idle view sessions
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SessionSweeper periodically evicts idle rent screen sessions
type SessionSweeper struct {
	sessions       Sweeper
	logRepo        repository.SchedulerLogRepository
	logger         *logger.Logger
	cron           *cron.Cron
	cronExpression string
	idleTTL        time.Duration
	now            func() time.Time
}

// NewSessionSweeper creates a sweeper; cronExpression has seconds precision
func NewSessionSweeper(sessions Sweeper, logRepo repository.SchedulerLogRepository, logger *logger.Logger, cronExpression string, idleTTL time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions:       sessions,
		logRepo:        logRepo,
		logger:         logger,
		cron:           cron.New(cron.WithSeconds()),
		cronExpression: cronExpression,
		idleTTL:        idleTTL,
		now:            time.Now,
	}
}

// Start schedules the sweep job and starts the cron
func (s *SessionSweeper) Start() error {
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling session sweep job")
	if _, err := s.cron.AddFunc(s.cronExpression, s.sweepSessions); err != nil {
		return fmt.Errorf("failed to schedule session sweep job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Session sweeper started successfully")
	return nil
}

// Stop waits for a running sweep to finish
func (s *SessionSweeper) Stop() {
	s.logger.Info("Stopping session sweeper...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Session sweeper stopped successfully")
}

func (s *SessionSweeper) sweepSessions() {
	docID := uuid.New().String()
	s.logRun(docID, models.SchedulerStatusStart, "Starting idle session sweep")

	defer func() {
		if r := recover(); r != nil {
			s.logRun(docID, models.SchedulerStatusFailed, fmt.Sprintf("Session sweep failed: %v", r))
			s.logger.WithField("panic", r).Error("Session sweep failed")
		}
	}()

	s.logRun(docID, models.SchedulerStatusRunning, fmt.Sprintf("Evicting sessions idle for more than %s", s.idleTTL))
	evicted := s.sessions.Sweep(s.idleTTL)

	s.logRun(docID, models.SchedulerStatusSuccess, fmt.Sprintf("Evicted %d idle sessions", evicted))
	s.logger.WithField("evicted", evicted).Info("Session sweep completed")
}

// logRun writes one scheduler_logs row; failures are only logged
func (s *SessionSweeper) logRun(documentID, status, message string) {
	entry := &models.SchedulerLog{
		DocumentID: documentID,
		JobCode:    SessionSweepJobCode,
		Message:    message,
		Status:     status,
		CreatedAt:  s.now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
