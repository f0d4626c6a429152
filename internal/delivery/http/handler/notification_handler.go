package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

// Create handles sending a notification
// @Summary Send a notification
// @Description Notifications of the event type require event_id
// @Tags Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateNotificationRequest true "Create Notification Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	notification, err := h.notificationUsecase.CreateNotification(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create notification")
		return
	}

	response.Success(w, http.StatusCreated, "Notification created successfully", notification)
}

func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	var req dto.UpdateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	notification, err := h.notificationUsecase.UpdateNotification(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification updated successfully", notification)
}

func (h *NotificationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	notification, err := h.notificationUsecase.GetNotification(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to get notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification retrieved successfully", notification)
}

// GetByReceiver lists a receiver's notifications filtered by status
// (all, read or unread).
func (h *NotificationHandler) GetByReceiver(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	receiverID, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	notifications, err := h.notificationUsecase.ListReceived(r.Context(), actor, receiverID, r.URL.Query().Get("status"), pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get notifications")
		return
	}

	response.Paginated(w, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	notification, err := h.notificationUsecase.MarkRead(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to mark notification as read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", notification)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	notification, err := h.notificationUsecase.DeleteNotification(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", notification)
}

func (h *NotificationHandler) DeleteByReceiver(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	receiverID, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	count, err := h.notificationUsecase.DeleteReceived(r.Context(), actor, receiverID)
	if err != nil {
		response.FromError(w, err, "Failed to delete notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications deleted successfully", map[string]int64{"deleted": count})
}
