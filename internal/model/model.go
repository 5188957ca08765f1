package model

import (
	"fmt"
	"time"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string
	DueDate     *time.Time
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CalendarEvent struct {
	ID           int64
	UserID       int64
	Title        string
	Description  *string
	StartTime    time.Time
	EndTime      time.Time
	LinkedTaskID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskStatus is a closed set; unknown values are rejected at the parse
// boundary, never coerced.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(s); st {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}
