package billing

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper runs the overdue sweep on a cron schedule.
type Sweeper struct {
	service *Service
	cron    *cron.Cron
}

func NewSweeper(service *Service) *Sweeper {
	return &Sweeper{service: service, cron: cron.New()}
}

// Start schedules the sweep and runs it once immediately so invoices that
// lapsed while the process was down are caught without waiting a full tick.
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.service.SweepOverdue(context.Background()); err != nil {
			logrus.WithError(err).Error("overdue sweep failed")
		}
	})
	if err != nil {
		return err
	}

	go func() {
		if _, err := s.service.SweepOverdue(context.Background()); err != nil {
			logrus.WithError(err).Error("overdue sweep failed")
		}
	}()

	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}
