package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type EventHandler struct {
	eventUsecase usecase.EventUsecase
	validator    *validator.CustomValidator
}

func NewEventHandler(eventUsecase usecase.EventUsecase, validator *validator.CustomValidator) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
		validator:    validator,
	}
}

// Create handles event creation
// @Summary Create a new event
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Create Event Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	event, err := h.eventUsecase.CreateEvent(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create event")
		return
	}

	response.Success(w, http.StatusCreated, "Event created successfully", event)
}

// Update handles partial event updates
// @Summary Update an event
// @Description Only the fields present in the body are changed
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Update Event Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [patch]
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	event, err := h.eventUsecase.UpdateEvent(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update event")
		return
	}

	response.Success(w, http.StatusOK, "Event updated successfully", event)
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	event, err := h.eventUsecase.GetEvent(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to get event")
		return
	}

	response.Success(w, http.StatusOK, "Event retrieved successfully", event)
}

// GetAll handles listing events
// @Summary List events
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query string false "Items per page or ALL" default(10)
// @Param user_id query int false "Owner"
// @Param category query string false "Category"
// @Param title query string false "Title search"
// @Param event_type query string false "in_person or virtual"
// @Param privacy query string false "public or private"
// @Param from query string false "Start after (RFC3339)"
// @Param to query string false "Start before (RFC3339)"
// @Param sort query string false "Sort key"
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	events, err := h.eventUsecase.ListEvents(r.Context(), actor, eventFilterFromQuery(r), pageFromQuery(r), r.URL.Query().Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get events")
		return
	}

	response.Paginated(w, "Events retrieved successfully", events)
}

// GetAllDetails lists events with their owner and cover photo embedded.
func (h *EventHandler) GetAllDetails(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	events, err := h.eventUsecase.ListEventsWithDetails(r.Context(), actor, eventFilterFromQuery(r), pageFromQuery(r), r.URL.Query().Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get events")
		return
	}

	response.Paginated(w, "Events retrieved successfully", events)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	event, err := h.eventUsecase.DeleteEvent(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete event")
		return
	}

	response.Success(w, http.StatusOK, "Event deleted successfully", event)
}

func (h *EventHandler) DeleteByUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	events, err := h.eventUsecase.DeleteUserEvents(r.Context(), actor, userID)
	if err != nil {
		response.FromError(w, err, "Failed to delete events")
		return
	}

	response.Success(w, http.StatusOK, "Events deleted successfully", events)
}

// Join handles joining an event
// @Summary Join an event
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /events/{id}/join [post]
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	attendee, err := h.eventUsecase.JoinEvent(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to join event")
		return
	}

	response.Success(w, http.StatusCreated, "Joined event successfully", attendee)
}

func (h *EventHandler) Leave(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	if err := h.eventUsecase.LeaveEvent(r.Context(), actor, id); err != nil {
		response.FromError(w, err, "Failed to leave event")
		return
	}

	response.Success(w, http.StatusOK, "Left event successfully", nil)
}

func (h *EventHandler) GetAttendees(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	attendees, err := h.eventUsecase.ListAttendees(r.Context(), actor, id, pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get attendees")
		return
	}

	response.Paginated(w, "Attendees retrieved successfully", attendees)
}

func eventFilterFromQuery(r *http.Request) dto.EventFilter {
	q := r.URL.Query()
	return dto.EventFilter{
		UserID:    queryInt64(r, "user_id"),
		Category:  q.Get("category"),
		Title:     q.Get("title"),
		EventType: q.Get("event_type"),
		Privacy:   q.Get("privacy"),
		From:      queryTime(r, "from"),
		To:        queryTime(r, "to"),
	}
}
