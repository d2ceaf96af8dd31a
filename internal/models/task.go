package models

import (
	"fmt"
	"strings"
	"time"
)

// Status strings reported by Task.Status.
const (
	StatusCompleted   = "Concluída"
	StatusScheduled   = "Prevista"
	StatusInvalidType = "Tipo de tarefa inválido"
)

// Task is a single unit of work tracked by the service.
type Task struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description" validate:"min=10"`
	Completed     bool       `json:"completed"`
	TaskType      TaskType   `json:"task_type" validate:"tasktype"`
	DueDate       *time.Time `json:"due_date,omitempty" validate:"omitempty,notpast"`
	DueDays       int        `json:"due_days" validate:"min=0"`
	PriorityLevel *int       `json:"priority_level,omitempty"`
	Category      *string    `json:"category,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Status derives the human readable status of the task as seen on today.
func (t Task) Status(today time.Time) string {
	switch t.TaskType {
	case TaskTypeData:
		if t.Completed {
			return StatusCompleted
		}
		if t.DueDate != nil {
			if late := DaysBetween(*t.DueDate, today); late > 0 {
				return lateStatus(late)
			}
		}
		return StatusScheduled
	case TaskTypePrazo:
		if t.Completed {
			return StatusCompleted
		}
		if deadline, ok := t.Deadline(); ok {
			if late := DaysBetween(deadline, today); late > 0 {
				return lateStatus(late)
			}
		}
		return StatusScheduled
	case TaskTypeLivre:
		if t.Completed {
			return StatusCompleted
		}
		return StatusScheduled
	default:
		return StatusInvalidType
	}
}

// Deadline returns the date after which the task counts as late.
// LIVRE tasks and tasks without a due date have none.
func (t Task) Deadline() (time.Time, bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	switch t.TaskType {
	case TaskTypeData:
		return DateOf(*t.DueDate), true
	case TaskTypePrazo:
		return AddDays(*t.DueDate, t.DueDays), true
	default:
		return time.Time{}, false
	}
}

func lateStatus(days int) string {
	return fmt.Sprintf("%d dias de atraso", days)
}

// String renders every field for logs.
func (t Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task [id=%d, name=%s, description=%s, completed=%t, taskType=%s",
		t.ID, t.Name, t.Description, t.Completed, t.TaskType)
	b.WriteString(", dueDate=")
	if t.DueDate != nil {
		b.WriteString(FormatDate(*t.DueDate))
	} else {
		b.WriteString("<nil>")
	}
	fmt.Fprintf(&b, ", dueDays=%d, priorityLevel=", t.DueDays)
	if t.PriorityLevel != nil {
		fmt.Fprintf(&b, "%d", *t.PriorityLevel)
	} else {
		b.WriteString("<nil>")
	}
	b.WriteString(", category=")
	if t.Category != nil {
		b.WriteString(*t.Category)
	} else {
		b.WriteString("<nil>")
	}
	b.WriteString("]")
	return b.String()
}

// TaskFilter narrows ListTasks results. Nil fields are ignored.
type TaskFilter struct {
	Completed *bool
	TaskType  *TaskType
	Category  *string
}

// CategorySummary counts the tasks filed under a category.
type CategorySummary struct {
	Name  string `json:"name"`
	Tasks int64  `json:"tasks"`
}
