package usecase

import (
	"context"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/internal/service"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound     = apperror.NotFound("Report not found")
	ErrReportedUserAbsent = apperror.NotFound("Reported user not found")
	ErrReportSelf         = apperror.Validation("You cannot report yourself")
)

type ReportUsecase interface {
	CreateReport(ctx context.Context, actor Actor, req *dto.CreateReportRequest) (*entity.Report, error)
	UpdateReport(ctx context.Context, actor Actor, id int64, req *dto.UpdateReportRequest) (*entity.Report, error)
	GetReport(ctx context.Context, actor Actor, id int64) (*entity.ReportView, error)
	ListReports(ctx context.Context, filter dto.ReportFilter, page query.Page) (*query.Result[entity.ReportView], error)
	ListUserReports(ctx context.Context, actor Actor, userID int64, page query.Page) (*query.Result[entity.ReportView], error)
	DeleteReport(ctx context.Context, actor Actor, id int64) (*entity.Report, error)
	DeleteAllReports(ctx context.Context, actor Actor) (int64, error)
	DeleteUserReports(ctx context.Context, actor Actor, userID int64) ([]entity.Report, error)
}

type reportUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	reportRepo   repository.CrudRepository[entity.Report]
	reportViews  repository.ViewRepository[entity.ReportView]
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportRepo repository.CrudRepository[entity.Report],
	reportViews repository.ViewRepository[entity.ReportView],
	userRepo repository.UserRepository,
	auditService service.AuditService,
) ReportUsecase {
	return &reportUsecase{
		db:           db,
		log:          log,
		reportRepo:   reportRepo,
		reportViews:  reportViews,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *reportUsecase) CreateReport(ctx context.Context, actor Actor, req *dto.CreateReportRequest) (*entity.Report, error) {
	if req.ReportedUserID == actor.ID {
		return nil, ErrReportSelf
	}

	db := u.db.WithContext(ctx)
	reported, err := u.userRepo.FindActiveByID(db, req.ReportedUserID)
	if err != nil {
		u.log.Warnf("Failed to find reported user: %+v", err)
		return nil, apperror.Database(err)
	}
	if reported == nil {
		return nil, ErrReportedUserAbsent
	}

	report := &entity.Report{
		ReportCreatorID: actor.ID,
		ReportedUserID:  req.ReportedUserID,
		Reason:          req.Reason,
		Description:     req.Description,
	}
	if err := u.reportRepo.Create(db, report); err != nil {
		u.log.Warnf("Failed to create report: %+v", err)
		return nil, apperror.Database(err)
	}

	return report, nil
}

func (u *reportUsecase) UpdateReport(ctx context.Context, actor Actor, id int64, req *dto.UpdateReportRequest) (*entity.Report, error) {
	set := query.NewUpdate().
		SetPtr("reason", req.Reason).
		SetPtr("description", req.Description)

	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.And).Where("report_creator_id", query.Eq, actor.ID, true)
	}

	report, err := u.reportRepo.Update(u.db.WithContext(ctx), id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update report: %+v", err)
		return nil, apperror.Database(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (u *reportUsecase) GetReport(ctx context.Context, actor Actor, id int64) (*entity.ReportView, error) {
	report, err := u.reportViews.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, apperror.Database(err)
	}
	if report == nil || !actor.CanActFor(report.ReportCreatorID) {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (u *reportUsecase) ListReports(ctx context.Context, filter dto.ReportFilter, page query.Page) (*query.Result[entity.ReportView], error) {
	where := query.NewFilter(query.And).
		WherePtr("r.report_creator_id", query.Eq, filter.CreatorID).
		WherePtr("r.reported_user_id", query.Eq, filter.ReportedUserID).
		Where("r.reason", query.ILike, contains(filter.Reason), filter.Reason != "")

	reports, err := u.reportViews.List(u.db.WithContext(ctx), where, page, "")
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}
	return reports, nil
}

// ListUserReports lists the reports filed by userID.
func (u *reportUsecase) ListUserReports(ctx context.Context, actor Actor, userID int64, page query.Page) (*query.Result[entity.ReportView], error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}
	return u.ListReports(ctx, dto.ReportFilter{CreatorID: &userID}, page)
}

func (u *reportUsecase) DeleteReport(ctx context.Context, actor Actor, id int64) (*entity.Report, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	filter := query.NewFilter(query.And).Where("id", query.Eq, id, true)
	if !actor.IsAdmin() {
		filter.Where("report_creator_id", query.Eq, actor.ID, true)
	}

	deleted, err := u.reportRepo.Delete(tx, filter)
	if err != nil {
		u.log.Warnf("Failed to delete report: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrReportNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actor.ID, entity.AuditActionReportDelete, "report", deleted[0], 1); err != nil {
		return nil, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	return &deleted[0], nil
}

func (u *reportUsecase) DeleteAllReports(ctx context.Context, actor Actor) (int64, error) {
	return deleteAll(ctx, u.db, u.log, u.reportRepo, u.auditService, actor, entity.AuditActionReportDeleteAll, "report")
}

func (u *reportUsecase) DeleteUserReports(ctx context.Context, actor Actor, userID int64) ([]entity.Report, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	deleted, err := u.reportRepo.Delete(u.db.WithContext(ctx),
		query.NewFilter(query.And).Where("report_creator_id", query.Eq, userID, true))
	if err != nil {
		u.log.Warnf("Failed to delete reports: %+v", err)
		return nil, apperror.Database(err)
	}
	return deleted, nil
}
