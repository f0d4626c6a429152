package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type FAQHandler struct {
	faqUsecase usecase.FAQUsecase
	validator  *validator.CustomValidator
}

func NewFAQHandler(faqUsecase usecase.FAQUsecase, validator *validator.CustomValidator) *FAQHandler {
	return &FAQHandler{
		faqUsecase: faqUsecase,
		validator:  validator,
	}
}

func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	faq, err := h.faqUsecase.CreateFAQ(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create FAQ")
		return
	}

	response.Success(w, http.StatusCreated, "FAQ created successfully", faq)
}

func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid FAQ ID")
		return
	}

	var req dto.UpdateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	faq, err := h.faqUsecase.UpdateFAQ(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update FAQ")
		return
	}

	response.Success(w, http.StatusOK, "FAQ updated successfully", faq)
}

func (h *FAQHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid FAQ ID")
		return
	}

	faq, err := h.faqUsecase.GetFAQ(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get FAQ")
		return
	}

	response.Success(w, http.StatusOK, "FAQ retrieved successfully", faq)
}

func (h *FAQHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqUsecase.ListFAQ(r.Context(), r.URL.Query().Get("search"), pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get FAQ")
		return
	}

	response.Paginated(w, "FAQ retrieved successfully", faqs)
}

func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid FAQ ID")
		return
	}

	faq, err := h.faqUsecase.DeleteFAQ(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to delete FAQ")
		return
	}

	response.Success(w, http.StatusOK, "FAQ deleted successfully", faq)
}

func (h *FAQHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.faqUsecase.DeleteAllFAQ(r.Context(), actor)
	if err != nil {
		response.FromError(w, err, "Failed to delete FAQ")
		return
	}

	response.Success(w, http.StatusOK, "All FAQ deleted successfully", map[string]int64{"deleted": count})
}
