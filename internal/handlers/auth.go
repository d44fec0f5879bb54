package handlers

import (
	"errors"
	"net/http"

	"github.com/campusconnect/lost-and-found-api/internal/constants"
	"github.com/campusconnect/lost-and-found-api/internal/dto"
	apierrors "github.com/campusconnect/lost-and-found-api/internal/errors"
	"github.com/campusconnect/lost-and-found-api/internal/middleware"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new account and mails a verification code
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		RollNumber  string `json:"roll_number" binding:"required"`
		PhoneNumber string `json:"phone_number"`
		Hostel      string `json:"hostel"`
		RoomNumber  string `json:"room_number"`
		ProfilePic  string `json:"profile_pic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.auth.Register(services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		RollNumber:  req.RollNumber,
		PhoneNumber: req.PhoneNumber,
		Hostel:      req.Hostel,
		RoomNumber:  req.RoomNumber,
		ProfilePic:  req.ProfilePic,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Check your email for a verification code.",
		"user":    dto.ToUserDTO(*user),
	})
}

// VerifyEmail checks the submitted OTP and activates the account
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.VerifyEmail(req.Email, req.OTP); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Login verifies credentials, sets the access-token cookie and returns the token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			apierrors.Unauthorized(c, err.Error())
		case errors.Is(err, services.ErrEmailNotVerified):
			apierrors.Forbidden(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to log in")
		}
		return
	}

	c.SetCookie(constants.AccessTokenCookieName, token,
		int(constants.AccessTokenTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Login successful",
		"accessToken": token,
		"user":        dto.ToUserDTO(*user),
	})
}

// Logout clears the access-token cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(constants.AccessTokenCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.auth.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// ForgotPassword mails a password-reset code
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to send reset code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset code sent"})
}

// ResetPassword verifies the reset code and sets a new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP), errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to reset password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// UpdatePhone changes the authenticated user's phone number
func (h *AuthHandler) UpdatePhone(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.auth.UpdatePhone(userID, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to update phone number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// UpdateHostelRoom changes the authenticated user's hostel and room
func (h *AuthHandler) UpdateHostelRoom(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Hostel     string `json:"hostel" binding:"required"`
		RoomNumber string `json:"room_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.auth.UpdateHostelRoom(userID, req.Hostel, req.RoomNumber)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to update hostel and room")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// DashboardCounts returns the landing-page totals
func (h *AuthHandler) DashboardCounts(c *gin.Context) {
	counts, err := h.auth.Counts()
	if err != nil {
		apierrors.InternalError(c, "Failed to load counts")
		return
	}

	c.JSON(http.StatusOK, counts)
}
