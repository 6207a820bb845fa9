// Package overdue runs a scheduled sweep that reports tasks past their
// deadline. Overdue is a derived state, so nothing is written back; the
// sweep only surfaces a digest in the log for the morning standup.
package overdue

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"officeflow/internal/model"
	"officeflow/internal/repository"
	"officeflow/internal/taskflow"
)

type Sweeper struct {
	tasks repository.TaskRepositoryInterface
	cron  *cron.Cron
	spec  string
	now   func() time.Time
}

func NewSweeper(tasks repository.TaskRepositoryInterface, spec string) *Sweeper {
	return &Sweeper{
		tasks: tasks,
		cron:  cron.New(),
		spec:  spec,
		now:   time.Now,
	}
}

// Start schedules the sweep and runs the cron loop in the background
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		log.Printf("⚠️  Overdue sweep failed: %v", err)
		return
	}

	digest := Digest(tasks, s.now())
	if digest.Total == 0 {
		log.Println("✅ Overdue sweep: no overdue tasks")
		return
	}

	log.Printf("⏰ Overdue sweep: %d overdue task(s)", digest.Total)
	for _, t := range digest.Tasks {
		log.Printf("⏰   %q due %s (status %s)", t.Title, t.Deadline.Format("2006-01-02"), t.Status)
	}
}

// Report is the result of one sweep
type Report struct {
	Total int
	Tasks []model.Task
}

// Digest collects the tasks that are overdue at the given time
func Digest(tasks []model.Task, now time.Time) Report {
	var report Report
	for _, t := range tasks {
		if taskflow.IsOverdue(&t, now) {
			report.Tasks = append(report.Tasks, t)
		}
	}
	report.Total = len(report.Tasks)
	return report
}
