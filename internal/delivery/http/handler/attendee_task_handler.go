package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type AttendeeTaskHandler struct {
	taskUsecase usecase.AttendeeTaskUsecase
	validator   *validator.CustomValidator
}

func NewAttendeeTaskHandler(taskUsecase usecase.AttendeeTaskUsecase, validator *validator.CustomValidator) *AttendeeTaskHandler {
	return &AttendeeTaskHandler{
		taskUsecase: taskUsecase,
		validator:   validator,
	}
}

func (h *AttendeeTaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateAttendeeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	task, err := h.taskUsecase.CreateTask(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create attendee task")
		return
	}

	response.Success(w, http.StatusCreated, "Attendee task created successfully", task)
}

func (h *AttendeeTaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	var req dto.UpdateAttendeeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	task, err := h.taskUsecase.UpdateTask(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update attendee task")
		return
	}

	response.Success(w, http.StatusOK, "Attendee task updated successfully", task)
}

func (h *AttendeeTaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	task, err := h.taskUsecase.UpdateTaskStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		response.FromError(w, err, "Failed to update task status")
		return
	}

	response.Success(w, http.StatusOK, "Task status updated successfully", task)
}

func (h *AttendeeTaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	task, err := h.taskUsecase.GetTask(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get attendee task")
		return
	}

	response.Success(w, http.StatusOK, "Attendee task retrieved successfully", task)
}

func (h *AttendeeTaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.AttendeeTaskFilter{
		EventID: queryInt64(r, "event_id"),
		UserID:  queryInt64(r, "user_id"),
		Type:    q.Get("type"),
		Status:  q.Get("status"),
	}

	tasks, err := h.taskUsecase.ListTasks(r.Context(), filter, pageFromQuery(r), q.Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get attendee tasks")
		return
	}

	response.Paginated(w, "Attendee tasks retrieved successfully", tasks)
}

func (h *AttendeeTaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	task, err := h.taskUsecase.DeleteTask(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete attendee task")
		return
	}

	response.Success(w, http.StatusOK, "Attendee task deleted successfully", task)
}
