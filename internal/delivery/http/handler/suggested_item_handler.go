package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type SuggestedItemHandler struct {
	itemUsecase usecase.SuggestedItemUsecase
	validator   *validator.CustomValidator
}

func NewSuggestedItemHandler(itemUsecase usecase.SuggestedItemUsecase, validator *validator.CustomValidator) *SuggestedItemHandler {
	return &SuggestedItemHandler{
		itemUsecase: itemUsecase,
		validator:   validator,
	}
}

func (h *SuggestedItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateSuggestedItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.itemUsecase.CreateItem(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create suggested item")
		return
	}

	response.Success(w, http.StatusCreated, "Suggested item created successfully", item)
}

func (h *SuggestedItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid suggested item ID")
		return
	}

	var req dto.UpdateSuggestedItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.itemUsecase.UpdateItem(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update suggested item")
		return
	}

	response.Success(w, http.StatusOK, "Suggested item updated successfully", item)
}

func (h *SuggestedItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid suggested item ID")
		return
	}

	item, err := h.itemUsecase.GetItem(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get suggested item")
		return
	}

	response.Success(w, http.StatusOK, "Suggested item retrieved successfully", item)
}

// GetAll handles listing suggested items
// @Summary List suggested items
// @Description With user_id, returns admin items plus that user's own items
// @Tags SuggestedItems
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "User ID"
// @Param created_by query string false "admin or user"
// @Success 200 {object} response.Response
// @Router /suggested-items [get]
func (h *SuggestedItemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := h.itemUsecase.ListItems(r.Context(), queryInt64(r, "user_id"), q.Get("created_by"), pageFromQuery(r), q.Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get suggested items")
		return
	}

	response.Paginated(w, "Suggested items retrieved successfully", items)
}

func (h *SuggestedItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid suggested item ID")
		return
	}

	item, err := h.itemUsecase.DeleteItem(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete suggested item")
		return
	}

	response.Success(w, http.StatusOK, "Suggested item deleted successfully", item)
}
