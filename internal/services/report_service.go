package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// ReportService owns moderation reports. Listing and resolving are
// admin-only; status moves open to resolved, one way.
type ReportService interface {
	Create(ctx context.Context, reporterID int, req models.CreateReportRequest) (models.ReportView, error)
	List(ctx context.Context, actorID int, status models.ReportStatus) ([]models.ReportView, error)
	Resolve(ctx context.Context, actorID, reportID int) (models.ReportView, error)
}

type reportService struct {
	store       store.Store
	adminEmails []string
	log         *zap.Logger
}

// NewReportService creates a ReportService
func NewReportService(st store.Store, adminEmails []string, logger *zap.Logger) ReportService {
	return &reportService{store: st, adminEmails: adminEmails, log: logger}
}

func (s *reportService) Create(ctx context.Context, reporterID int, req models.CreateReportRequest) (models.ReportView, error) {
	if err := validateRequest(&req); err != nil {
		return models.ReportView{}, err
	}
	var view models.ReportView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		if snap.UserByID(reporterID) == nil {
			return notFoundf("user %d", reporterID)
		}
		snap.Counters.Reports++
		report := models.Report{
			ID:         snap.Counters.Reports,
			ReporterID: reporterID,
			TargetType: req.TargetType,
			TargetID:   req.TargetID,
			Reason:     strings.TrimSpace(req.Reason),
			Status:     models.ReportOpen,
			CreatedAt:  time.Now().UTC(),
		}
		snap.Reports = append(snap.Reports, report)
		view = reportView(snap, &report)
		return nil
	})
	return view, err
}

func (s *reportService) List(ctx context.Context, actorID int, status models.ReportStatus) ([]models.ReportView, error) {
	views := []models.ReportView{}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		if !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d is not an admin", actorID)
		}
		for i := range snap.Reports {
			if status != "" && snap.Reports[i].Status != status {
				continue
			}
			views = append(views, reportView(snap, &snap.Reports[i]))
		}
		return nil
	})
	return views, err
}

func (s *reportService) Resolve(ctx context.Context, actorID, reportID int) (models.ReportView, error) {
	var view models.ReportView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		if !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d is not an admin", actorID)
		}
		var report *models.Report
		for i := range snap.Reports {
			if snap.Reports[i].ID == reportID {
				report = &snap.Reports[i]
				break
			}
		}
		if report == nil {
			return notFoundf("report %d", reportID)
		}
		if report.Status != models.ReportResolved {
			now := time.Now().UTC()
			report.Status = models.ReportResolved
			report.ResolvedAt = &now
		}
		view = reportView(snap, report)
		return nil
	})
	return view, err
}

func reportView(snap *store.Snapshot, report *models.Report) models.ReportView {
	reporter := models.ReportReporter{ID: report.ReporterID}
	if u := snap.UserByID(report.ReporterID); u != nil {
		reporter.Name = u.Name
		reporter.Email = u.Email
	}
	return models.ReportView{
		ID:         report.ID,
		Reporter:   reporter,
		TargetType: report.TargetType,
		TargetID:   report.TargetID,
		Reason:     report.Reason,
		Status:     report.Status,
		CreatedAt:  report.CreatedAt,
		ResolvedAt: report.ResolvedAt,
	}
}
