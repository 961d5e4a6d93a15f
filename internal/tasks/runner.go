package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"scripture_site_echo/internal/models"
)

// Runner executes scheduled tasks that have come due
type Runner struct {
	db       *gorm.DB
	registry *Registry
	env      Env
}

// NewRunner creates a Runner. env.DB defaults to db.
func NewRunner(db *gorm.DB, registry *Registry, env Env) *Runner {
	if env.DB == nil {
		env.DB = db
	}
	return &Runner{db: db, registry: registry, env: env}
}

// RunDue executes every active task due at or before now and returns how
// many ran.
func (r *Runner) RunDue(ctx context.Context, now time.Time) (int, error) {
	var pendingTasks []models.ScheduledTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, now).
		Order("due").
		Find(&pendingTasks).Error
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pending tasks: %w", err)
	}

	if len(pendingTasks) == 0 {
		log.Println("No pending tasks found.")
		return 0, nil
	}
	log.Printf("Found %d pending tasks.", len(pendingTasks))

	ran := 0
	for _, task := range pendingTasks {
		if ctx.Err() != nil {
			return ran, ctx.Err()
		}
		r.execute(ctx, task, now)
		ran++
	}
	return ran, nil
}

// Attempt is the outcome of running a task handler once
type Attempt struct {
	Number    int
	StartedAt time.Time
	Runtime   time.Duration
	Result    map[string]interface{}
	Err       error
}

// Attempts runs the task's handler until it succeeds or MaxAttempt is
// reached. A task with no registered handler yields no attempts.
func (r *Runner) Attempts(ctx context.Context, task models.ScheduledTask) ([]Attempt, bool) {
	handler, found := r.registry.Get(task.TaskName)
	if !found {
		return nil, false
	}

	maxAttempt := max(task.MaxAttempt, 1)
	var attempts []Attempt
	for n := 1; n <= maxAttempt; n++ {
		if ctx.Err() != nil {
			break
		}
		start := time.Now()
		result, err := handler(ctx, r.env, task.Arguments)
		attempts = append(attempts, Attempt{
			Number:    n,
			StartedAt: start,
			Runtime:   time.Since(start),
			Result:    result,
			Err:       err,
		})
		if err == nil {
			break
		}
		log.Printf("Task %s (ID: %d) attempt %d/%d failed: %v", task.TaskName, task.ID, n, maxAttempt, err)
	}
	return attempts, true
}

func (r *Runner) execute(ctx context.Context, task models.ScheduledTask, now time.Time) {
	log.Printf("Processing task: %s (ID: %d)", task.TaskName, task.ID)

	attempts, found := r.Attempts(ctx, task)
	if !found {
		log.Printf("Task handler not found for: %s. Marking as failure.", task.TaskName)
		r.record(ctx, models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          "handler_not_found",
			AttemptNumber:   1,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		})
		r.update(ctx, task, map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		return
	}

	for _, attempt := range attempts {
		history := models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           attempt.StartedAt,
			RuntimeMs:       int(attempt.Runtime.Milliseconds()),
			Status:          "success",
			AttemptNumber:   attempt.Number,
			Arguments:       task.Arguments,
			Result:          attempt.Result,
		}
		if attempt.Err != nil {
			history.Status = "failure"
			history.Result = map[string]interface{}{"error": attempt.Err.Error()}
		}
		r.record(ctx, history)
	}

	succeeded := len(attempts) > 0 && attempts[len(attempts)-1].Err == nil
	if succeeded {
		log.Printf("Task %s completed successfully.", task.TaskName)
	}
	r.update(ctx, task, NextState(task, succeeded, now))
}

// NextState returns the column updates for a task after a run at now.
// Successful one-time tasks are done; successful recurring tasks move to
// their next occurrence, or finish when the rule is exhausted.
func NextState(task models.ScheduledTask, succeeded bool, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"last_run": &now,
	}
	if !succeeded {
		updates["status"] = models.ScheduledTaskStatusFailure
		return updates
	}

	switch task.TaskType {
	case models.ScheduledTaskTypeRecurring:
		if next, ok := task.NextDue(now); ok {
			updates["status"] = models.ScheduledTaskStatusActive
			updates["due"] = next
		} else {
			updates["status"] = models.ScheduledTaskStatusDone
		}
	default:
		updates["status"] = models.ScheduledTaskStatusDone
	}
	return updates
}

func (r *Runner) record(ctx context.Context, history models.ScheduledTaskHistory) {
	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		log.Printf("Failed to record history for task %d: %v", history.ScheduledTaskID, err)
	}
}

func (r *Runner) update(ctx context.Context, task models.ScheduledTask, updates map[string]interface{}) {
	if err := r.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		log.Printf("Failed to update task %d: %v", task.ID, err)
	}
}
