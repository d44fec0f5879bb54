package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/constants"
	"github.com/campusconnect/lost-and-found-api/internal/mailer"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"github.com/campusconnect/lost-and-found-api/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("a user with this email or roll number already exists")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
)

// AuthService handles registration, email verification, login and
// account-profile updates.
type AuthService struct {
	userRepo      repository.UserRepository
	otpRepo       repository.OTPRepository
	lostItemRepo  repository.LostItemRepository
	foundItemRepo repository.FoundItemRepository
	mail          mailer.Mailer
	jwtSecret     string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	lostItemRepo repository.LostItemRepository,
	foundItemRepo repository.FoundItemRepository,
	mail mailer.Mailer,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		otpRepo:       otpRepo,
		lostItemRepo:  lostItemRepo,
		foundItemRepo: foundItemRepo,
		mail:          mail,
		jwtSecret:     jwtSecret,
	}
}

// RegisterInput represents input for creating an account
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	RollNumber  string
	PhoneNumber string
	Hostel      string
	RoomNumber  string
	ProfilePic  string
}

// DashboardCounts aggregates the landing-page totals
type DashboardCounts struct {
	Users      int64 `json:"users"`
	LostItems  int64 `json:"lost_items"`
	FoundItems int64 `json:"found_items"`
}

// Register creates a new unverified account and mails a verification code.
// The user row and its OTP are written in one transaction.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByEmailOrRoll(input.Email, input.RollNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		RollNumber:   input.RollNumber,
		PhoneNumber:  input.PhoneNumber,
		Hostel:       input.Hostel,
		RoomNumber:   input.RoomNumber,
		ProfilePic:   input.ProfilePic,
	}
	otp := &models.OTPVerification{
		Email:     input.Email,
		OTPCode:   code,
		ExpiresAt: time.Now().Add(constants.OTPTTL),
	}

	if err := s.userRepo.CreateWithOTP(user, otp); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.sendOTP(user.Email, user.Name, code, "Verify Your Email")

	return user, nil
}

// VerifyEmail checks the newest OTP for the email and marks the account verified
func (s *AuthService) VerifyEmail(email, code string) error {
	if err := s.checkOTP(email, code); err != nil {
		return err
	}

	if err := s.userRepo.MarkEmailVerified(email); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}

// Login verifies credentials and returns the user with a signed access token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, "", ErrEmailNotVerified
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, token, nil
}

// ForgotPassword mails a reset code to the account's email. The account must
// exist; unknown emails are reported so the caller sees a 404.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OTPVerification{
		Email:     email,
		OTPCode:   code,
		ExpiresAt: time.Now().Add(constants.OTPTTL),
	}
	if err := s.otpRepo.Create(otp); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	s.sendOTP(email, user.Name, code, "Reset Your Password")

	return nil
}

// ResetPassword verifies the reset code and replaces the password hash
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	if err := s.checkOTP(email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(email, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUser returns a user's profile
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdatePhone changes the user's phone number
func (s *AuthService) UpdatePhone(id uint64, phone string) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	user.PhoneNumber = phone
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update phone number: %w", err)
	}

	return user, nil
}

// UpdateHostelRoom changes the user's hostel and room number
func (s *AuthService) UpdateHostelRoom(id uint64, hostel, room string) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	user.Hostel = hostel
	user.RoomNumber = room
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update hostel and room: %w", err)
	}

	return user, nil
}

// Counts returns the dashboard totals
func (s *AuthService) Counts() (*DashboardCounts, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	lost, err := s.lostItemRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count lost items: %w", err)
	}
	found, err := s.foundItemRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count found items: %w", err)
	}

	return &DashboardCounts{Users: users, LostItems: lost, FoundItems: found}, nil
}

func (s *AuthService) signToken(userID uint64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(constants.AccessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) checkOTP(email, code string) error {
	otp, err := s.otpRepo.LatestByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to look up OTP: %w", err)
	}

	if otp.OTPCode != code || time.Now().After(otp.ExpiresAt) {
		return ErrInvalidOTP
	}

	return nil
}

func (s *AuthService) sendOTP(to, name, code, subject string) {
	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your one-time verification code is:</p>
<h2>%s</h2>
<p>This code expires in %d minutes.</p>
<br/>
<p>Best regards,<br/>Lost &amp; Found Help Desk</p>`, name, code, int(constants.OTPTTL.Minutes()))

	if err := s.mail.Send(to, subject, html); err != nil {
		zap.L().Error("failed to send OTP email",
			zap.String("email", to),
			zap.Error(err),
		)
	}
}
