package handler

import (
	"net/http"

	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		response.FromError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	auditLogs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), r.URL.Query().Get("action"), queryInt64(r, "user_id"), pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get audit logs")
		return
	}

	response.Paginated(w, "Audit logs retrieved successfully", auditLogs)
}
