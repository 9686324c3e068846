package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the reminder Service once per day at a configured local
// wall-clock time.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler that fires in the given location.
func NewScheduler(service *Service, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		service: service,
		logger:  logger.With(slog.String("component", "reminder_scheduler")),
	}
}

// ScheduleDaily registers the daily scan at the given "HH:MM" time and
// starts the scheduler.
func (s *Scheduler) ScheduleDaily(timeStr string) error {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(spec, func() {
		if _, err := s.service.Run(context.Background()); err != nil {
			s.logger.Error("reminder run failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("registering reminder job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("reminder job scheduled", slog.String("time", timeStr))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// buildDailySpec converts an "HH:MM" time into a cron spec.
func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
