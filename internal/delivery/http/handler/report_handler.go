package handler

import (
	"encoding/json"
	"net/http"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
	"eventplanner/pkg/validator"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

// Create handles filing a report
// @Summary Report a user
// @Tags Reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Create Report Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports [post]
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.reportUsecase.CreateReport(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create report")
		return
	}

	response.Success(w, http.StatusCreated, "Report created successfully", report)
}

func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req dto.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.reportUsecase.UpdateReport(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update report")
		return
	}

	response.Success(w, http.StatusOK, "Report updated successfully", report)
}

func (h *ReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.reportUsecase.GetReport(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to get report")
		return
	}

	response.Success(w, http.StatusOK, "Report retrieved successfully", report)
}

func (h *ReportHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := dto.ReportFilter{
		CreatorID:      queryInt64(r, "report_creator_id"),
		ReportedUserID: queryInt64(r, "reported_user_id"),
		Reason:         r.URL.Query().Get("reason"),
	}

	reports, err := h.reportUsecase.ListReports(r.Context(), filter, pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get reports")
		return
	}

	response.Paginated(w, "Reports retrieved successfully", reports)
}

func (h *ReportHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
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

	reports, err := h.reportUsecase.ListUserReports(r.Context(), actor, userID, pageFromQuery(r))
	if err != nil {
		response.FromError(w, err, "Failed to get reports")
		return
	}

	response.Paginated(w, "Reports retrieved successfully", reports)
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.reportUsecase.DeleteReport(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err, "Failed to delete report")
		return
	}

	response.Success(w, http.StatusOK, "Report deleted successfully", report)
}

func (h *ReportHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.reportUsecase.DeleteAllReports(r.Context(), actor)
	if err != nil {
		response.FromError(w, err, "Failed to delete reports")
		return
	}

	response.Success(w, http.StatusOK, "All reports deleted successfully", map[string]int64{"deleted": count})
}

func (h *ReportHandler) DeleteByUser(w http.ResponseWriter, r *http.Request) {
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

	reports, err := h.reportUsecase.DeleteUserReports(r.Context(), actor, userID)
	if err != nil {
		response.FromError(w, err, "Failed to delete reports")
		return
	}

	response.Success(w, http.StatusOK, "Reports deleted successfully", reports)
}
