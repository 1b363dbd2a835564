// Package scheduler runs background maintenance tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Task is a named unit of background work. An empty Schedule registers the
// task for on-demand runs only.
type Task struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	cron  *cron.Cron
	tasks []Task
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

func (s *Scheduler) Register(task Task) error {
	if task.Schedule != "" {
		_, err := s.cron.AddFunc(task.Schedule, func() {
			log.Printf("[%s] starting scheduled run", task.Name)
			if err := task.Run(context.Background()); err != nil {
				log.Printf("[%s] run failed: %v", task.Name, err)
				return
			}
			log.Printf("[%s] run completed", task.Name)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", task.Name, err)
		}
		log.Printf("[%s] scheduled with cron: %s", task.Name, task.Schedule)
	}

	s.tasks = append(s.tasks, task)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("scheduler started with %d tasks", len(s.tasks))
}

// Stop waits for running tasks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("scheduler stopped")
}

// RunByName runs a registered task immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, task := range s.tasks {
		if task.Name == name {
			return task.Run(ctx)
		}
	}
	return fmt.Errorf("task %q not registered", name)
}

func (s *Scheduler) Tasks() []string {
	names := make([]string, len(s.tasks))
	for i, task := range s.tasks {
		names[i] = task.Name
	}
	return names
}

// SearchReindexTask names the task built by SearchReindex.
const SearchReindexTask = "search-reindex"

// SearchReindex rebuilds the job search index from the database.
func SearchReindex(schedule string, reindex func(ctx context.Context) error) Task {
	return Task{Name: SearchReindexTask, Schedule: schedule, Run: reindex}
}
