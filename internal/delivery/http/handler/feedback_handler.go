package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.CreateFeedback(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create feedback")
		return
	}

	response.Success(w, http.StatusCreated, "Feedback created successfully", feedback)
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid feedback ID")
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.UpdateFeedback(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback updated successfully", feedback)
}

func (h *FeedbackHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid feedback ID")
		return
	}

	feedback, err := h.feedbackUsecase.GetFeedback(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

// GetAll lists feedback; search matches comments containing any of its words.
func (h *FeedbackHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedbackUsecase.ListFeedback(r.Context(), r.URL.Query().Get("search"), pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get feedback")
		return
	}

	response.Paginated(w, "Feedback retrieved successfully", feedback)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid feedback ID")
		return
	}

	feedback, err := h.feedbackUsecase.DeleteFeedback(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback deleted successfully", feedback)
}

func (h *FeedbackHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.feedbackUsecase.DeleteAllFeedback(r.Context(), actor)
	if err != nil {
		response.FromError(w, err, "Failed to delete feedback")
		return
	}

	response.Success(w, http.StatusOK, "All feedback deleted successfully", map[string]int64{"deleted": count})
}
