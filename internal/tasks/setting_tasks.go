package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scripture_site_echo/internal/models"
)

const taskActor = "scheduler"

// ErrNoSettingsStore is returned when a settings task runs without a store
var ErrNoSettingsStore = errors.New("settings store not available")

// ApplySettingArgs defines the arguments for an apply_setting task
type ApplySettingArgs struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ApplySettingTaskDef stores a setting value when it comes due
type ApplySettingTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *ApplySettingTaskDef) TaskID() string {
	return "apply_setting"
}

// CreateTask builds a ScheduledTask record for this task. A non-empty rule
// makes it recurring.
func (t *ApplySettingTaskDef) CreateTask(args ApplySettingArgs, due time.Time, rule string) (*models.ScheduledTask, error) {
	if rule == "" {
		return BuildScheduledTask(t.TaskID(), args, due, nil, models.ScheduledTaskTypeOneTime, 3)
	}
	return BuildScheduledTask(t.TaskID(), args, due, &rule, models.ScheduledTaskTypeRecurring, 3)
}

// HandleExecution writes the setting
func (t *ApplySettingTaskDef) HandleExecution(ctx context.Context, env Env, args map[string]interface{}) (map[string]interface{}, error) {
	var parsed ApplySettingArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return nil, err
	}
	if parsed.Key == "" {
		return nil, fmt.Errorf("key not provided")
	}
	if env.Settings == nil {
		return nil, ErrNoSettingsStore
	}

	if err := env.Settings.Set(ctx, parsed.Key, parsed.Value, taskActor); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status": "success",
		"key":    parsed.Key,
		"value":  parsed.Value,
	}, nil
}

// ApplySettingTask is the singleton instance of ApplySettingTaskDef
var ApplySettingTask = &ApplySettingTaskDef{}

// RemoveSettingArgs defines the arguments for a remove_setting task
type RemoveSettingArgs struct {
	Key string `json:"key"`
}

// RemoveSettingTaskDef deletes a setting when it comes due, returning that
// part of the site to its default
type RemoveSettingTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *RemoveSettingTaskDef) TaskID() string {
	return "remove_setting"
}

// CreateTask builds a ScheduledTask record for this task
func (t *RemoveSettingTaskDef) CreateTask(args RemoveSettingArgs, due time.Time, rule string) (*models.ScheduledTask, error) {
	if rule == "" {
		return BuildScheduledTask(t.TaskID(), args, due, nil, models.ScheduledTaskTypeOneTime, 3)
	}
	return BuildScheduledTask(t.TaskID(), args, due, &rule, models.ScheduledTaskTypeRecurring, 3)
}

// HandleExecution deletes the setting
func (t *RemoveSettingTaskDef) HandleExecution(ctx context.Context, env Env, args map[string]interface{}) (map[string]interface{}, error) {
	var parsed RemoveSettingArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return nil, err
	}
	if parsed.Key == "" {
		return nil, fmt.Errorf("key not provided")
	}
	if env.Settings == nil {
		return nil, ErrNoSettingsStore
	}

	if err := env.Settings.Delete(ctx, parsed.Key); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status": "success",
		"key":    parsed.Key,
	}, nil
}

// RemoveSettingTask is the singleton instance of RemoveSettingTaskDef
var RemoveSettingTask = &RemoveSettingTaskDef{}
