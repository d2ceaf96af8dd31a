package models

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Violation describes one rejected field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field a task failed on.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var violationMessages = map[string]string{
	"description": "Descrição da tarefa deve possuir pelo menos 10 caracteres",
	"due_date":    "A data prevista de conclusão deve ser igual ou superior à data atual",
	"due_days":    "O prazo em dias não pode ser negativo",
	"task_type":   StatusInvalidType,
}

// Validator checks task invariants. Due dates are judged against the date
// returned by its clock.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator builds a Validator. A nil clock means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), now: now}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.validate.RegisterValidation("notpast", v.notPast)
	_ = v.validate.RegisterValidation("tasktype", func(fl validator.FieldLevel) bool {
		return TaskType(fl.Field().Int()).Valid()
	})
	return v
}

func (v *Validator) notPast(fl validator.FieldLevel) bool {
	due, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return DaysBetween(v.now(), due) >= 0
}

// Validate checks t. The due date rule only applies when checkDueDate is set,
// so an existing past due date does not block unrelated updates.
func (v *Validator) Validate(t Task, checkDueDate bool) error {
	var err error
	if checkDueDate {
		err = v.validate.Struct(t)
	} else {
		err = v.validate.StructExcept(t, "DueDate")
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		msg, ok := violationMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		out.Violations = append(out.Violations, Violation{Field: fe.Field(), Message: msg})
	}
	return out
}
