package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

// CatalogHandler serves a name-only lookup table such as categories.
type CatalogHandler[T any] struct {
	catalogUsecase usecase.CatalogUsecase[T]
	validator      *validator.CustomValidator
	label          string
}

// NewCatalogHandler builds a handler whose messages use label, e.g. "Category".
func NewCatalogHandler[T any](catalogUsecase usecase.CatalogUsecase[T], validator *validator.CustomValidator, label string) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		catalogUsecase: catalogUsecase,
		validator:      validator,
		label:          label,
	}
}

func (h *CatalogHandler[T]) noun() string {
	return strings.ToLower(h.label)
}

func (h *CatalogHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.catalogUsecase.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create "+h.noun())
		return
	}

	response.Success(w, http.StatusCreated, h.label+" created successfully", item)
}

func (h *CatalogHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid "+h.noun()+" ID")
		return
	}

	var req dto.NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.catalogUsecase.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update "+h.noun())
		return
	}

	response.Success(w, http.StatusOK, h.label+" updated successfully", item)
}

func (h *CatalogHandler[T]) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid "+h.noun()+" ID")
		return
	}

	item, err := h.catalogUsecase.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get "+h.noun())
		return
	}

	response.Success(w, http.StatusOK, h.label+" retrieved successfully", item)
}

func (h *CatalogHandler[T]) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := h.catalogUsecase.List(r.Context(), q.Get("search"), pageFromQuery(r), q.Get("sort"))
	if err != nil {
		response.FromError(w, err, "Failed to get "+h.noun()+" list")
		return
	}

	response.Paginated(w, h.label+" list retrieved successfully", items)
}

func (h *CatalogHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid "+h.noun()+" ID")
		return
	}

	item, err := h.catalogUsecase.Delete(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to delete "+h.noun())
		return
	}

	response.Success(w, http.StatusOK, h.label+" deleted successfully", item)
}
