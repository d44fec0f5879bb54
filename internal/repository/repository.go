package repository

import (
	"github.com/campusconnect/lost-and-found-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithOTP creates a user and their initial verification OTP
	// within a single transaction.
	CreateWithOTP(user *models.User, otp *models.OTPVerification) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmailOrRoll reports whether a user with the email or roll number exists
	ExistsByEmailOrRoll(email, rollNumber string) (bool, error)

	// MarkEmailVerified flips the verified flag for the given email
	MarkEmailVerified(email string) error

	// UpdatePassword replaces the password hash for the given email
	UpdatePassword(email, passwordHash string) error

	// Update persists changes to a user
	Update(user *models.User) error

	// Count returns the total number of registered users
	Count() (int64, error)
}

// OTPRepository defines the interface for one-time-code data access
type OTPRepository interface {
	// Create stores a new OTP row
	Create(otp *models.OTPVerification) error

	// LatestByEmail returns the newest OTP row for an email
	LatestByEmail(email string) (*models.OTPVerification, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	FindByID(id uint64) (*models.Category, error)
	FindByName(name string) (*models.Category, error)

	// List returns all categories ordered by name
	List() ([]models.Category, error)

	Update(category *models.Category) error
	Delete(id uint64) error
}

// ItemFilter holds search, sort and pagination options for item listings.
// SortBy must already be validated against the caller's whitelist.
type ItemFilter struct {
	Query    string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// LostItemRepository defines the interface for lost-item data access
type LostItemRepository interface {
	// CreateWithPhotos creates the item and its photo rows atomically
	CreateWithPhotos(item *models.LostItem, photoURLs []string) error

	// FindByID finds a lost item by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.LostItem, error)

	// List retrieves lost items matching the filter
	List(filter ItemFilter) ([]models.LostItem, error)

	// ListByUser retrieves all lost items posted by a user, newest lost date first
	ListByUser(userID uint64) ([]models.LostItem, error)

	// Update persists changes to a lost item
	Update(item *models.LostItem) error

	// ReplacePhotos deletes the item's photos and inserts the new set atomically
	ReplacePhotos(itemID uint64, photoURLs []string) error

	// Delete removes the item together with its reports and photos in one transaction
	Delete(id uint64) error

	// Count returns the total number of lost items
	Count() (int64, error)
}

// FoundItemRepository defines the interface for found-item data access
type FoundItemRepository interface {
	// CreateWithPhotos creates the item and its photo rows atomically
	CreateWithPhotos(item *models.FoundItem, photoURLs []string) error

	// FindByID finds a found item by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.FoundItem, error)

	// List retrieves found items matching the filter
	List(filter ItemFilter) ([]models.FoundItem, error)

	// ListByUser retrieves all found items posted by a user, newest found date first
	ListByUser(userID uint64) ([]models.FoundItem, error)

	// Update persists changes to a found item
	Update(item *models.FoundItem) error

	// ReplacePhotos deletes the item's photos and inserts the new set atomically
	ReplacePhotos(itemID uint64, photoURLs []string) error

	// Delete removes the item together with its claims and photos in one transaction
	Delete(id uint64) error

	// Count returns the total number of found items
	Count() (int64, error)
}

// ClaimRepository defines the interface for claim data access
type ClaimRepository interface {
	Create(claim *models.Claim) error

	// FindByID finds a claim by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Claim, error)

	// ListByItem returns all claims for a found item, newest first
	ListByItem(foundItemID uint64) ([]models.Claim, error)

	// ListByUser returns all claims filed by a user, newest first
	ListByUser(userID uint64) ([]models.Claim, error)

	// Update persists changes to a claim
	Update(claim *models.Claim) error

	// Delete hard deletes a claim
	Delete(id uint64) error

	// ExistsForUser reports whether the user already has a claim on the item
	ExistsForUser(foundItemID, userID uint64) (bool, error)

	// HasApproved reports whether any claim on the item is Approved
	HasApproved(foundItemID uint64) (bool, error)
}

// ReportRepository defines the interface for reported-lost-found data access
type ReportRepository interface {
	Create(report *models.Report) error

	// FindByID finds a report by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Report, error)

	// ListByFinder returns all reports filed by a user, newest first
	ListByFinder(userID uint64) ([]models.Report, error)

	// ListReceived returns all reports against lost items posted by the user, newest first
	ListReceived(ownerID uint64) ([]models.Report, error)

	// ListByItem returns all reports for a lost item, newest first
	ListByItem(lostItemID uint64) ([]models.Report, error)

	// Update persists changes to a report
	Update(report *models.Report) error

	// Delete hard deletes a report
	Delete(id uint64) error

	// HasReturned reports whether any report on the lost item is Returned
	HasReturned(lostItemID uint64) (bool, error)
}
