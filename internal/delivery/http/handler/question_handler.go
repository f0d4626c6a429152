package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

// QuestionHandler serves question types and the responses users give to them.
type QuestionHandler struct {
	questionUsecase usecase.QuestionUsecase
	validator       *validator.CustomValidator
}

func NewQuestionHandler(questionUsecase usecase.QuestionUsecase, validator *validator.CustomValidator) *QuestionHandler {
	return &QuestionHandler{
		questionUsecase: questionUsecase,
		validator:       validator,
	}
}

func (h *QuestionHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateQuestionTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	questionType, err := h.questionUsecase.CreateQuestionType(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create question type")
		return
	}

	response.Success(w, http.StatusCreated, "Question type created successfully", questionType)
}

func (h *QuestionHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid question type ID")
		return
	}

	var req dto.UpdateQuestionTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	questionType, err := h.questionUsecase.UpdateQuestionType(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update question type")
		return
	}

	response.Success(w, http.StatusOK, "Question type updated successfully", questionType)
}

func (h *QuestionHandler) GetType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid question type ID")
		return
	}

	questionType, err := h.questionUsecase.GetQuestionType(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get question type")
		return
	}

	response.Success(w, http.StatusOK, "Question type retrieved successfully", questionType)
}

func (h *QuestionHandler) GetAllTypes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	types, err := h.questionUsecase.ListQuestionTypes(r.Context(), q.Get("type"), pageFromQuery(r), q.Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get question types")
		return
	}

	response.Paginated(w, "Question types retrieved successfully", types)
}

func (h *QuestionHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid question type ID")
		return
	}

	questionType, err := h.questionUsecase.DeleteQuestionType(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to delete question type")
		return
	}

	response.Success(w, http.StatusOK, "Question type deleted successfully", questionType)
}

func (h *QuestionHandler) DeleteAllTypes(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.questionUsecase.DeleteAllQuestionTypes(r.Context(), actor)
	if err != nil {
		response.FromError(w, err, "Failed to delete question types")
		return
	}

	response.Success(w, http.StatusOK, "All question types deleted successfully", map[string]int64{"deleted": count})
}

func (h *QuestionHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateQuestionResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	answer, err := h.questionUsecase.CreateResponse(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create question type response")
		return
	}

	response.Success(w, http.StatusCreated, "Question type response created successfully", answer)
}

func (h *QuestionHandler) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid response ID")
		return
	}

	var req dto.UpdateQuestionResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	answer, err := h.questionUsecase.UpdateResponse(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update question type response")
		return
	}

	response.Success(w, http.StatusOK, "Question type response updated successfully", answer)
}

func (h *QuestionHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid response ID")
		return
	}

	answer, err := h.questionUsecase.GetResponse(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get question type response")
		return
	}

	response.Success(w, http.StatusOK, "Question type response retrieved successfully", answer)
}

func (h *QuestionHandler) GetAllResponses(w http.ResponseWriter, r *http.Request) {
	filter := dto.QuestionResponseFilter{
		UserID:          queryInt64(r, "user_id"),
		QuestionTypesID: queryInt64(r, "question_types_id"),
		Type:            r.URL.Query().Get("type"),
	}

	answers, err := h.questionUsecase.ListResponses(r.Context(), filter, pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get question type responses")
		return
	}

	response.Paginated(w, "Question type responses retrieved successfully", answers)
}

func (h *QuestionHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid response ID")
		return
	}

	answer, err := h.questionUsecase.DeleteResponse(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete question type response")
		return
	}

	response.Success(w, http.StatusOK, "Question type response deleted successfully", answer)
}

// DeleteUserResponses accepts an optional type query parameter.
func (h *QuestionHandler) DeleteUserResponses(w http.ResponseWriter, r *http.Request) {
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

	answers, err := h.questionUsecase.DeleteUserResponses(r.Context(), actor, userID, r.URL.Query().Get("type"))
	if err != nil {
		response.FromError(w, err, "Failed to delete question type responses")
		return
	}

	response.Success(w, http.StatusOK, "Question type responses deleted successfully", answers)
}
