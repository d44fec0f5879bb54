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
	ErrFoundItemRequired    = errors.New("found_item_id is required")
	ErrFoundItemNotFound    = errors.New("found item not found")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrDuplicateClaim       = errors.New("a claim for this item already exists")
	ErrInvalidClaimStatus   = errors.New("invalid claim status")
	ErrNotFoundItemPoster   = errors.New("only the item poster can update claim status")
	ErrClaimNotOwned        = errors.New("claim not found or unauthorized")
)

// ClaimService mediates the handshake between a found-item poster and a
// claimant: claim intake, the Pending/Approved/Rejected transitions, and the
// claimant notification that follows a transition.
type ClaimService struct {
	claimRepo     repository.ClaimRepository
	foundItemRepo repository.FoundItemRepository
	mail          mailer.Mailer

	// allowDuplicates permits one user to file several claims on the same item.
	allowDuplicates bool
}

// NewClaimService creates a new ClaimService
func NewClaimService(claimRepo repository.ClaimRepository, foundItemRepo repository.FoundItemRepository, mail mailer.Mailer, allowDuplicates bool) *ClaimService {
	return &ClaimService{
		claimRepo:       claimRepo,
		foundItemRepo:   foundItemRepo,
		mail:            mail,
		allowDuplicates: allowDuplicates,
	}
}

// CreateClaimInput represents input for filing a claim
type CreateClaimInput struct {
	FoundItemID           uint64
	ClaimingUserID        uint64
	SecurityAnswerAttempt string
	Message               string
}

// Create files a new Pending claim against a found item. The item must exist
// before anything is written.
func (s *ClaimService) Create(input CreateClaimInput) (*models.Claim, error) {
	if input.FoundItemID == 0 {
		return nil, ErrFoundItemRequired
	}

	if _, err := s.foundItemRepo.FindByID(input.FoundItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoundItemNotFound
		}
		return nil, fmt.Errorf("failed to find found item: %w", err)
	}

	if !s.allowDuplicates {
		exists, err := s.claimRepo.ExistsForUser(input.FoundItemID, input.ClaimingUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing claims: %w", err)
		}
		if exists {
			return nil, ErrDuplicateClaim
		}
	}

	claim := &models.Claim{
		FoundItemID:           input.FoundItemID,
		ClaimingUserID:        input.ClaimingUserID,
		SecurityAnswerAttempt: input.SecurityAnswerAttempt,
		Message:               input.Message,
		Status:                models.ClaimStatusPending,
	}

	if err := s.claimRepo.Create(claim); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	return s.claimRepo.FindByID(claim.ID, "ClaimingUser", "FoundItem", "FoundItem.Poster")
}

// ListForItem returns all claims for a found item, newest first, each carrying
// the claimant's contact profile and the item snapshot. Only the item's poster
// may see them.
func (s *ClaimService) ListForItem(foundItemID, actorID uint64) ([]models.Claim, error) {
	item, err := s.foundItemRepo.FindByID(foundItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoundItemNotFound
		}
		return nil, fmt.Errorf("failed to find found item: %w", err)
	}
	if item.PostedBy != actorID {
		return nil, ErrNotFoundItemPoster
	}

	claims, err := s.claimRepo.ListByItem(foundItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

// ListForUser returns all claims a user has filed, newest first.
func (s *ClaimService) ListForUser(userID uint64) ([]models.Claim, error) {
	claims, err := s.claimRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

// Get returns a single claim with its enrichment.
func (s *ClaimService) Get(claimID uint64) (*models.Claim, error) {
	claim, err := s.claimRepo.FindByID(claimID, "ClaimingUser", "FoundItem", "FoundItem.Poster")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find claim: %w", err)
	}
	return claim, nil
}

// UpdateStatus transitions a claim. Only the found item's poster may do this.
// Any of the three states may be set regardless of the current state, and
// re-setting the same state re-sends the notification. The notification is
// dispatched after the update commits; a delivery failure is logged, never
// returned.
func (s *ClaimService) UpdateStatus(claimID, actorID uint64, status models.ClaimStatus) (*models.Claim, error) {
	if !models.ValidClaimStatus(status) {
		return nil, ErrInvalidClaimStatus
	}

	claim, err := s.claimRepo.FindByID(claimID, "ClaimingUser", "FoundItem")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find claim: %w", err)
	}

	if claim.FoundItem.PostedBy != actorID {
		return nil, ErrNotFoundItemPoster
	}

	claim.Status = status
	if err := s.claimRepo.Update(claim); err != nil {
		return nil, fmt.Errorf("failed to update claim status: %w", err)
	}

	s.notifyClaimant(claim, status)

	return claim, nil
}

// Delete removes a claim. Only the claimant may delete it; a missing claim
// and someone else's claim fail identically.
func (s *ClaimService) Delete(claimID, actorID uint64) error {
	claim, err := s.claimRepo.FindByID(claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClaimNotOwned
		}
		return fmt.Errorf("failed to find claim: %w", err)
	}

	if claim.ClaimingUserID != actorID {
		return ErrClaimNotOwned
	}

	if err := s.claimRepo.Delete(claimID); err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}

	return nil
}

func (s *ClaimService) notifyClaimant(claim *models.Claim, status models.ClaimStatus) {
	to := claim.ClaimingUser.Email
	if to == "" {
		return
	}

	itemName := claim.FoundItem.Name

	html := fmt.Sprintf(`<p>Dear user,</p>
<p>Your claim for the item <strong>%s</strong> has been <strong>%s</strong>.</p>`, itemName, status)

	if status == models.ClaimStatusApproved {
		html += fmt.Sprintf(`
<p>You can collect the item from: <strong>%s</strong>.</p>`, claim.FoundItem.PickupLocation)
	}

	html += `
<br>
<p>Regards,<br>Lost &amp; Found Team</p>`

	subject := fmt.Sprintf("Your claim for %q has been %s", itemName, status)

	if err := s.mail.Send(to, subject, html); err != nil {
		zap.L().Error("failed to send claim status notification",
			zap.Uint64("claim_id", claim.ID),
			zap.Error(err),
		)
	}
}
