package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"roteiro/internal/models"
)

// taskRequest carries the fields a client may set. Nil fields are left alone on update.
type taskRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Completed     *bool            `json:"completed"`
	TaskType      *models.TaskType `json:"task_type" swaggertype:"string" enums:"DATA,PRAZO,LIVRE"`
	DueDate       *string          `json:"due_date" example:"2026-12-31"`
	ClearDueDate  bool             `json:"clear_due_date"`
	DueDays       *int             `json:"due_days"`
	PriorityLevel *int             `json:"priority_level"`
	Category      *string          `json:"category"`
}

// taskResponse is a task as served over the API, with its derived status.
type taskResponse struct {
	models.Task
	DueDate *string `json:"due_date,omitempty" example:"2026-12-31"`
	Status  string  `json:"status" example:"Prevista"`
}

// apply copies the request onto t and reports whether the due date was assigned.
func (r taskRequest) apply(t *models.Task) (bool, error) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Completed != nil {
		t.Completed = *r.Completed
	}
	if r.TaskType != nil {
		t.TaskType = *r.TaskType
	}
	if r.DueDays != nil {
		t.DueDays = *r.DueDays
	}
	if r.PriorityLevel != nil {
		p := *r.PriorityLevel
		t.PriorityLevel = &p
	}
	if r.Category != nil {
		if c := *r.Category; strings.TrimSpace(c) != "" {
			t.Category = &c
		} else {
			t.Category = nil
		}
	}

	switch {
	case r.ClearDueDate:
		t.DueDate = nil
	case r.DueDate != nil && *r.DueDate != "":
		d, err := models.ParseDate(*r.DueDate)
		if err != nil {
			return false, &models.ValidationError{Violations: []models.Violation{
				{Field: "due_date", Message: "Data inválida, use o formato AAAA-MM-DD"},
			}}
		}
		t.DueDate = &d
		return true, nil
	}
	return false, nil
}

func (s *Server) toResponse(t models.Task) taskResponse {
	resp := taskResponse{Task: t, Status: t.Status(s.today())}
	if t.DueDate != nil {
		d := models.FormatDate(*t.DueDate)
		resp.DueDate = &d
	}
	return resp
}

// handleListTasks returns tasks, optionally filtered.
//
// @Summary  List tasks
// @Tags     tasks
// @Produce  json
// @Param    completed  query     bool    false  "Only completed (true) or open (false) tasks"
// @Param    task_type  query     string  false  "DATA, PRAZO or LIVRE"
// @Param    category   query     string  false  "Exact category"
// @Success  200        {object}  map[string][]taskResponse
// @Failure  400        {object}  map[string]string
// @Router   /tasks [get]
func (s *Server) handleListTasks(c *gin.Context) {
	filter, err := parseTaskFilter(c)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.toResponse(t))
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": out})
}

func parseTaskFilter(c *gin.Context) (models.TaskFilter, error) {
	var filter models.TaskFilter
	if raw := c.Query("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid completed filter %q", raw)
		}
		filter.Completed = &v
	}
	if raw := c.Query("task_type"); raw != "" {
		tt, err := models.ParseTaskType(raw)
		if err != nil {
			return filter, err
		}
		filter.TaskType = &tt
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		filter.Category = &raw
	}
	return filter, nil
}

// handleCreateTask validates and stores a new task.
//
// @Summary  Create a task
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    task  body      taskRequest  true  "Task fields"
// @Success  201   {object}  map[string]taskResponse
// @Failure  400   {object}  map[string]any
// @Router   /tasks [post]
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task := models.Task{TaskType: models.TaskTypeData}
	if _, err := req.apply(&task); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.validator.Validate(task, true); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	created, err := s.store.CreateTask(c.Request.Context(), task)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("task created", "task", created.String())
	respondSuccess(c, http.StatusCreated, gin.H{"task": s.toResponse(created)})
}

// handleGetTask returns one task.
//
// @Summary  Get a task
// @Tags     tasks
// @Produce  json
// @Param    id   path      int  true  "Task id"
// @Success  200  {object}  map[string]taskResponse
// @Failure  404  {object}  map[string]string
// @Router   /tasks/{id} [get]
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": s.toResponse(task)})
}

// handleTaskStatus returns only the derived status of a task.
//
// @Summary  Get the status of a task
// @Tags     tasks
// @Produce  json
// @Param    id   path      int  true  "Task id"
// @Success  200  {object}  map[string]any
// @Failure  404  {object}  map[string]string
// @Router   /tasks/{id}/status [get]
func (s *Server) handleTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"id": task.ID, "status": task.Status(s.today())})
}

// handleUpdateTask changes the fields present in the request.
//
// @Summary  Update a task
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    id    path      int          true  "Task id"
// @Param    task  body      taskRequest  true  "Fields to change"
// @Success  200   {object}  map[string]taskResponse
// @Failure  400   {object}  map[string]any
// @Failure  404   {object}  map[string]string
// @Router   /tasks/{id} [put]
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	dueDateSet, err := req.apply(&task)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.validator.Validate(task, dueDateSet); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := s.store.UpdateTask(c.Request.Context(), task)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": s.toResponse(updated)})
}

// handleDeleteTask removes a task completely.
//
// @Summary  Delete a task
// @Tags     tasks
// @Produce  json
// @Param    id   path      int  true  "Task id"
// @Success  200  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Router   /tasks/{id} [delete]
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
