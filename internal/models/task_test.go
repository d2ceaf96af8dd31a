package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func daysFromToday(n int) *time.Time {
	d := today.AddDate(0, 0, n)
	return &d
}

func ptrTime(v time.Time) *time.Time { return &v }

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"data late", Task{TaskType: TaskTypeData, DueDate: daysFromToday(-5)}, "5 dias de atraso"},
		{"data tomorrow", Task{TaskType: TaskTypeData, DueDate: daysFromToday(1)}, StatusScheduled},
		{"data due today", Task{TaskType: TaskTypeData, DueDate: daysFromToday(0)}, StatusScheduled},
		{"data without date", Task{TaskType: TaskTypeData}, StatusScheduled},
		{"data late across months", Task{TaskType: TaskTypeData, DueDate: daysFromToday(-40)}, "40 dias de atraso"},
		{"data late for centuries", Task{TaskType: TaskTypeData, DueDate: ptrTime(time.Date(1700, time.January, 1, 0, 0, 0, 0, time.UTC))}, "119360 dias de atraso"},
		{"prazo past grace", Task{TaskType: TaskTypePrazo, DueDate: daysFromToday(-10), DueDays: 3}, "7 dias de atraso"},
		{"prazo within grace", Task{TaskType: TaskTypePrazo, DueDate: daysFromToday(-2), DueDays: 5}, StatusScheduled},
		{"prazo deadline today", Task{TaskType: TaskTypePrazo, DueDate: daysFromToday(-4), DueDays: 4}, StatusScheduled},
		{"prazo without date", Task{TaskType: TaskTypePrazo, DueDays: 3}, StatusScheduled},
		{"livre open", Task{TaskType: TaskTypeLivre, DueDate: daysFromToday(-30)}, StatusScheduled},
		{"livre open without date", Task{TaskType: TaskTypeLivre}, StatusScheduled},
		{"livre done", Task{TaskType: TaskTypeLivre, Completed: true}, StatusCompleted},
		{"unknown type", Task{TaskType: TaskType(7)}, StatusInvalidType},
		{"negative type", Task{TaskType: TaskType(-1), DueDate: daysFromToday(-3)}, StatusInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Status(today))
		})
	}
}

func TestStatusCompletedIgnoresDates(t *testing.T) {
	for _, typ := range []TaskType{TaskTypeData, TaskTypePrazo, TaskTypeLivre} {
		for _, offset := range []int{-100, -1, 0, 1, 100} {
			task := Task{TaskType: typ, Completed: true, DueDate: daysFromToday(offset), DueDays: 2}
			assert.Equal(t, StatusCompleted, task.Status(today), "type %s offset %d", typ, offset)
		}
	}
}

func TestStatusIgnoresClockTime(t *testing.T) {
	due := time.Date(2026, time.October, 18, 23, 59, 0, 0, time.UTC)
	lateEvening := time.Date(2026, time.October, 19, 0, 1, 0, 0, time.UTC)
	task := Task{TaskType: TaskTypeData, DueDate: &due}
	assert.Equal(t, "1 dias de atraso", task.Status(lateEvening))
}

func TestDeadline(t *testing.T) {
	_, ok := Task{TaskType: TaskTypeLivre, DueDate: daysFromToday(1)}.Deadline()
	assert.False(t, ok)

	d, ok := Task{TaskType: TaskTypePrazo, DueDate: daysFromToday(-10), DueDays: 3}.Deadline()
	require.True(t, ok)
	assert.Equal(t, today.AddDate(0, 0, -7), d)
}

func TestTaskString(t *testing.T) {
	prio := 2
	cat := "estudos"
	task := Task{
		ID:            4,
		Name:          "Relatório",
		Description:   "Escrever o relatório final",
		TaskType:      TaskTypePrazo,
		DueDate:       daysFromToday(3),
		DueDays:       2,
		PriorityLevel: &prio,
		Category:      &cat,
	}
	assert.Equal(t,
		"Task [id=4, name=Relatório, description=Escrever o relatório final, completed=false, taskType=PRAZO, dueDate=2026-10-22, dueDays=2, priorityLevel=2, category=estudos]",
		task.String())

	assert.Contains(t, Task{}.String(), "dueDate=<nil>, dueDays=0, priorityLevel=<nil>, category=<nil>]")
}

func TestTaskTypeFromOrdinal(t *testing.T) {
	for n, want := range []TaskType{TaskTypeData, TaskTypePrazo, TaskTypeLivre} {
		got, err := TaskTypeFromOrdinal(int64(n))
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, int64(n), got.Ordinal())
	}

	_, err := TaskTypeFromOrdinal(3)
	assert.ErrorIs(t, err, ErrInvalidTaskType)
	_, err = TaskTypeFromOrdinal(-1)
	assert.ErrorIs(t, err, ErrInvalidTaskType)
}

func TestParseTaskType(t *testing.T) {
	got, err := ParseTaskType(" prazo ")
	require.NoError(t, err)
	assert.Equal(t, TaskTypePrazo, got)

	got, err = ParseTaskType("2")
	require.NoError(t, err)
	assert.Equal(t, TaskTypeLivre, got)

	_, err = ParseTaskType("urgente")
	assert.ErrorIs(t, err, ErrInvalidTaskType)
	_, err = ParseTaskType("9")
	assert.ErrorIs(t, err, ErrInvalidTaskType)
}

func TestTaskTypeJSON(t *testing.T) {
	var v struct {
		Type TaskType `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"LIVRE"}`), &v))
	assert.Equal(t, TaskTypeLivre, v.Type)

	require.NoError(t, json.Unmarshal([]byte(`{"type":1}`), &v))
	assert.Equal(t, TaskTypePrazo, v.Type)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"type":5}`), &v), ErrInvalidTaskType)
	assert.Error(t, json.Unmarshal([]byte(`{"type":"OUTRO"}`), &v))

	out, err := json.Marshal(TaskTypeData)
	require.NoError(t, err)
	assert.JSONEq(t, `"DATA"`, string(out))
}
