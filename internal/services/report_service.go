package services

import (
	"errors"
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/mailer"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrLostItemRequired       = errors.New("lost_item_id is required")
	ErrPickupLocationRequired = errors.New("pickup_location is required")
	ErrLostItemNotFound       = errors.New("lost item not found")
	ErrReportNotFound         = errors.New("report not found")
	ErrInvalidReportStatus    = errors.New("invalid report status, use 'Pending' or 'Returned'")
	ErrNotLostItemPoster      = errors.New("only the item poster can update report status")
	ErrReportNotOwned         = errors.New("report not found or unauthorized")
)

// ReportService mediates the handshake between a lost-item owner and a
// finder: report intake, the Pending/Returned transitions, and the owner
// notification sent when a report is filed.
type ReportService struct {
	reportRepo   repository.ReportRepository
	lostItemRepo repository.LostItemRepository
	mail         mailer.Mailer
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, lostItemRepo repository.LostItemRepository, mail mailer.Mailer) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		lostItemRepo: lostItemRepo,
		mail:         mail,
	}
}

// CreateReportInput represents input for filing a report
type CreateReportInput struct {
	LostItemID     uint64
	FinderID       uint64
	Message        string
	PickupLocation string
}

// Create files a new Pending report against a lost item. The item's existence
// is verified before the insert, and the item's poster is notified after it
// commits. A poster without an email on file is tolerated silently.
func (s *ReportService) Create(input CreateReportInput) (*models.Report, error) {
	if input.LostItemID == 0 {
		return nil, ErrLostItemRequired
	}
	if input.PickupLocation == "" {
		return nil, ErrPickupLocationRequired
	}

	item, err := s.lostItemRepo.FindByID(input.LostItemID, "Poster")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLostItemNotFound
		}
		return nil, fmt.Errorf("failed to find lost item: %w", err)
	}

	report := &models.Report{
		LostItemID:     input.LostItemID,
		UserWhoFound:   input.FinderID,
		Message:        input.Message,
		PickupLocation: input.PickupLocation,
		Status:         models.ReportStatusPending,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.notifyOwner(item, report)

	return s.reportRepo.FindByID(report.ID, "Finder", "LostItem", "LostItem.Poster")
}

// ListFiled returns all reports a user has filed as finder, newest first.
func (s *ReportService) ListFiled(finderID uint64) ([]models.Report, error) {
	reports, err := s.reportRepo.ListByFinder(finderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ListReceived returns all reports filed against lost items the user posted.
func (s *ReportService) ListReceived(ownerID uint64) ([]models.Report, error) {
	reports, err := s.reportRepo.ListReceived(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ListForItem returns all reports for one lost item. The item must exist.
func (s *ReportService) ListForItem(lostItemID uint64) ([]models.Report, error) {
	if _, err := s.lostItemRepo.FindByID(lostItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLostItemNotFound
		}
		return nil, fmt.Errorf("failed to find lost item: %w", err)
	}

	reports, err := s.reportRepo.ListByItem(lostItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus transitions a report between Pending and Returned. Only the
// lost item's poster may do this. Transitions are unrestricted in both
// directions.
func (s *ReportService) UpdateStatus(reportID, actorID uint64, status models.ReportStatus) (*models.Report, error) {
	if !models.ValidReportStatus(status) {
		return nil, ErrInvalidReportStatus
	}

	report, err := s.reportRepo.FindByID(reportID, "LostItem")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	if report.LostItem.PostedBy != actorID {
		return nil, ErrNotLostItemPoster
	}

	report.Status = status
	if err := s.reportRepo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}

	return report, nil
}

// Delete removes a report. Only the finder who filed it may delete it; a
// missing report and someone else's report fail identically.
func (s *ReportService) Delete(reportID, actorID uint64) error {
	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotOwned
		}
		return fmt.Errorf("failed to find report: %w", err)
	}

	if report.UserWhoFound != actorID {
		return ErrReportNotOwned
	}

	if err := s.reportRepo.Delete(reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}

func (s *ReportService) notifyOwner(item *models.LostItem, report *models.Report) {
	to := item.Poster.Email
	if to == "" {
		return
	}

	message := report.Message
	if message == "" {
		message = "No message provided"
	}

	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Good news! Someone has reported finding an item that matches what you lost.</p>
<p><strong>Pickup Location:</strong> %s</p>
<p><strong>Message from Finder:</strong> %s</p>
<p>Please log in to the Lost &amp; Found portal to review and respond to the report.</p>
<br/>
<p>Best regards,<br/>Lost &amp; Found Help Desk</p>`, item.Poster.Name, report.PickupLocation, message)

	if err := s.mail.Send(to, "Someone Reported Finding Your Lost Item", html); err != nil {
		zap.L().Error("failed to send report notification",
			zap.Uint64("report_id", report.ID),
			zap.Error(err),
		)
	}
}
