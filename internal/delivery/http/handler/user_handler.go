package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

// GetByID handles getting a user by ID
// @Summary Get user by ID
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userUsecase.GetUser(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

// GetAll handles listing users
// @Summary List users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query string false "Items per page or ALL" default(10)
// @Param role query string false "Role"
// @Param signup_type query string false "Signup type"
// @Param search query string false "Email or name search"
// @Param sort query string false "created_at, full_name or email; prefix - for descending"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.UserFilter{
		Role:       q.Get("role"),
		SignupType: q.Get("signup_type"),
		Search:     q.Get("search"),
	}

	users, err := h.userUsecase.ListUsers(r.Context(), filter, pageFromQuery(r), q.Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get users")
		return
	}

	response.Paginated(w, "Users retrieved successfully", users)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", user)
}

// Delete soft-deletes an account and revokes its tokens.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.userUsecase.DeleteUser(r.Context(), actor, id); err != nil {
		response.FromError(w, err, "Failed to delete user")
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) GetRecentlyDeleted(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListRecentlyDeleted(r.Context(), pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get deleted users")
		return
	}

	response.Paginated(w, "Deleted users retrieved successfully", users)
}
