package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type BlockHandler struct {
	blockUsecase usecase.BlockUsecase
	validator    *validator.CustomValidator
}

func NewBlockHandler(blockUsecase usecase.BlockUsecase, validator *validator.CustomValidator) *BlockHandler {
	return &BlockHandler{
		blockUsecase: blockUsecase,
		validator:    validator,
	}
}

func (h *BlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	block, err := h.blockUsecase.BlockUser(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to block user")
		return
	}

	response.Success(w, http.StatusCreated, "User blocked successfully", block)
}

// UpdateStatus lifts or reinstates a block without deleting it.
func (h *BlockHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid block ID")
		return
	}

	var req dto.UpdateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	block, err := h.blockUsecase.UpdateBlock(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update block")
		return
	}

	response.Success(w, http.StatusOK, "Block updated successfully", block)
}

func (h *BlockHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid block ID")
		return
	}

	block, err := h.blockUsecase.GetBlock(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to get block")
		return
	}

	response.Success(w, http.StatusOK, "Block retrieved successfully", block)
}

func (h *BlockHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := dto.BlockFilter{
		CreatorID:   queryInt64(r, "block_creator_id"),
		BlockUserID: queryInt64(r, "block_user_id"),
		Status:      queryBool(r, "status"),
	}

	blocks, err := h.blockUsecase.ListBlocks(r.Context(), filter, pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get blocks")
		return
	}

	response.Paginated(w, "Blocks retrieved successfully", blocks)
}

func (h *BlockHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
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

	blocks, err := h.blockUsecase.ListUserBlocks(r.Context(), actor, userID, pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get blocks")
		return
	}

	response.Paginated(w, "Blocks retrieved successfully", blocks)
}

func (h *BlockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid block ID")
		return
	}

	block, err := h.blockUsecase.DeleteBlock(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete block")
		return
	}

	response.Success(w, http.StatusOK, "Block deleted successfully", block)
}

func (h *BlockHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.blockUsecase.DeleteAllBlocks(r.Context(), actor)
	if err != nil {
		response.FromError(w, err, "Failed to delete blocks")
		return
	}

	response.Success(w, http.StatusOK, "All blocks deleted successfully", map[string]int64{"deleted": count})
}

func (h *BlockHandler) DeleteByUser(w http.ResponseWriter, r *http.Request) {
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

	blocks, err := h.blockUsecase.DeleteUserBlocks(r.Context(), actor, userID)
	if err != nil {
		response.FromError(w, err, "Failed to delete blocks")
		return
	}

	response.Success(w, http.StatusOK, "Blocks deleted successfully", blocks)
}
