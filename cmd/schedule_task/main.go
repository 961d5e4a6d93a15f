package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"scripture_site_echo/internal/config"
	"scripture_site_echo/internal/models"
	"scripture_site_echo/internal/services"
	"scripture_site_echo/internal/tasks"
)

func main() {
	taskName := flag.String("task_name", "", "Name of the task (mandatory), one of "+fmt.Sprint(tasks.DefaultRegistry().Names()))
	argsStr := flag.String("arguments", "", "JSON arguments for the task (mandatory)")
	dueStr := flag.String("due", "", "Due date (mandatory, format: 2006-01-02 15:04 or RFC3339)")
	recurring := flag.String("recurring", "", "RRULE for recurring tasks, e.g. FREQ=YEARLY;BYMONTH=12 (optional)")
	maxAttempt := flag.Int("max_attempt", 3, "Max attempts (optional, default: 3)")

	flag.Parse()

	if *taskName == "" || *argsStr == "" || *dueStr == "" {
		fmt.Println("Usage: schedule_task -task_name <name> -arguments <json_args> -due <YYYY-MM-DD HH:MM> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, ok := tasks.DefaultRegistry().Get(*taskName); !ok {
		log.Fatalf("Unknown task %q", *taskName)
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(*argsStr), &args); err != nil {
		log.Fatalf("Invalid JSON arguments: %v", err)
	}

	due, err := parseDue(*dueStr)
	if err != nil {
		log.Fatalf("Invalid due date format. Use '2006-01-02 15:04' (Local) or RFC3339: %v", err)
	}

	var rule *string
	taskType := models.ScheduledTaskTypeOneTime
	if *recurring != "" {
		rule = recurring
		taskType = models.ScheduledTaskTypeRecurring
	}

	task, err := tasks.BuildScheduledTask(*taskName, args, due, rule, taskType, *maxAttempt)
	if err != nil {
		log.Fatalf("Failed to build task: %v", err)
	}
	if rule != nil {
		if _, ok := task.NextDue(due.Add(-time.Second)); !ok {
			log.Fatalf("Invalid recurrence rule %q", *rule)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}

	if err := db.Create(task).Error; err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due, task.TaskType)
}

func parseDue(value string) (time.Time, error) {
	due, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return due, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", value, time.Local)
}
