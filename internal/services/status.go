package services

import (
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
)

// StatusResolver computes the derived Resolved/Pending display status of an
// item. A found item is Resolved as soon as one of its claims is Approved; a
// lost item is Resolved as soon as one of its reports is Returned. The value
// is recomputed on every read and never stored.
type StatusResolver struct {
	claimRepo  repository.ClaimRepository
	reportRepo repository.ReportRepository
}

// NewStatusResolver creates a new StatusResolver
func NewStatusResolver(claimRepo repository.ClaimRepository, reportRepo repository.ReportRepository) *StatusResolver {
	return &StatusResolver{
		claimRepo:  claimRepo,
		reportRepo: reportRepo,
	}
}

// ForFoundItem resolves the display status of a found item.
func (s *StatusResolver) ForFoundItem(foundItemID uint64) (models.DisplayStatus, error) {
	approved, err := s.claimRepo.HasApproved(foundItemID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve found item status: %w", err)
	}
	if approved {
		return models.DisplayStatusResolved, nil
	}
	return models.DisplayStatusPending, nil
}

// ForLostItem resolves the display status of a lost item.
func (s *StatusResolver) ForLostItem(lostItemID uint64) (models.DisplayStatus, error) {
	returned, err := s.reportRepo.HasReturned(lostItemID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve lost item status: %w", err)
	}
	if returned {
		return models.DisplayStatusResolved, nil
	}
	return models.DisplayStatusPending, nil
}
