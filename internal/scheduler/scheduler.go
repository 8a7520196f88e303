// Package scheduler runs the periodic refresh of stored charts.
package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Refresher regenerates all stored charts in place.
type Refresher interface {
	RefreshStoredCharts()
}

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
}

// NewScheduler creates a new Scheduler.
func NewScheduler(r Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
	}
}

// Register registers the chart refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running chart refresh")
	s.Refresher.RefreshStoredCharts()
}
