package response

import (
	"encoding/json"
	"net/http"

	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	*Meta
}

// Meta is flattened beside result on list responses.
type Meta struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Status:  true,
		Message: message,
		Result:  data,
	})
}

// Paginated writes a list result. Items are always encoded, even when empty.
func Paginated[T any](w http.ResponseWriter, message string, res *query.Result[T]) {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	JSON(w, http.StatusOK, Response{
		Status:  true,
		Message: message,
		Result:  items,
		Meta: &Meta{
			TotalItems:   res.TotalItems,
			TotalPages:   res.TotalPages,
			CurrentPage:  res.CurrentPage,
			ItemsPerPage: res.ItemsPerPage,
		},
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Status:  false,
		Message: message,
		Error:   err,
	})
}

// FromError writes err using its classified status. Database and
// unclassified errors are reported with fallback only.
func FromError(w http.ResponseWriter, err error, fallback string) {
	status := apperror.StatusOf(err)
	if status == http.StatusInternalServerError {
		InternalServerError(w, fallback)
		return
	}
	Error(w, status, apperror.MessageOf(err, fallback), nil)
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	JSON(w, http.StatusBadRequest, Response{
		Status:  false,
		Message: "Validation failed",
		Error:   errors,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, nil)
}
