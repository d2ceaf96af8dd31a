package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TaskType selects how lateness is measured for a task.
type TaskType int

const (
	// TaskTypeData tasks are late once their due date has passed.
	TaskTypeData TaskType = iota
	// TaskTypePrazo tasks get DueDays of grace after the due date.
	TaskTypePrazo
	// TaskTypeLivre tasks are never late.
	TaskTypeLivre
)

// ErrInvalidTaskType is returned when a stored or submitted value does not name a known task type.
var ErrInvalidTaskType = errors.New("invalid task type")

var taskTypeNames = [...]string{
	TaskTypeData:  "DATA",
	TaskTypePrazo: "PRAZO",
	TaskTypeLivre: "LIVRE",
}

// Valid reports whether t is one of the known variants.
func (t TaskType) Valid() bool {
	return t >= TaskTypeData && int(t) < len(taskTypeNames)
}

func (t TaskType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TaskType(%d)", int(t))
	}
	return taskTypeNames[t]
}

// Ordinal is the integer persisted for the type.
func (t TaskType) Ordinal() int64 {
	return int64(t)
}

// TaskTypeFromOrdinal decodes a persisted ordinal.
func TaskTypeFromOrdinal(n int64) (TaskType, error) {
	t := TaskType(n)
	if int64(t) != n || !t.Valid() {
		return t, fmt.Errorf("%w: ordinal %d", ErrInvalidTaskType, n)
	}
	return t, nil
}

// ParseTaskType accepts a variant name (case-insensitive) or its ordinal.
func ParseTaskType(s string) (TaskType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range taskTypeNames {
		if n == name {
			return TaskType(i), nil
		}
	}
	if n, err := strconv.ParseInt(name, 10, 64); err == nil {
		return TaskTypeFromOrdinal(n)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTaskType, s)
}

// MarshalJSON writes the variant name; unknown values fall back to the ordinal.
func (t TaskType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return json.Marshal(int64(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON reads either the variant name or the ordinal used by older clients.
func (t *TaskType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseTaskType(s)
		if err != nil {
			return err
		}
		*t = v
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTaskType, data)
	}
	v, err := TaskTypeFromOrdinal(n)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
