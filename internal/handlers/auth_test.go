package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusconnect/lost-and-found-api/internal/database"
	"github.com/campusconnect/lost-and-found-api/internal/mailer"
	"github.com/campusconnect/lost-and-found-api/internal/middleware"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

type authTestEnv struct {
	db          *gorm.DB
	mail        *mailer.Recorder
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.OTPVerification{},
		&models.LostItem{},
		&models.FoundItem{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	lostItemRepo := repository.NewLostItemRepository(db)
	foundItemRepo := repository.NewFoundItemRepository(db)

	mail := mailer.NewRecorder()
	authService := services.NewAuthService(userRepo, otpRepo, lostItemRepo, foundItemRepo, mail, testJWTSecret)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return authTestEnv{
		db:          db,
		mail:        mail,
		handler:     handler,
		authService: authService,
	}
}

func (env authTestEnv) register(t *testing.T, r *gin.Engine, email string) {
	t.Helper()

	payload := map[string]string{
		"name":        "Test User",
		"email":       email,
		"password":    "supersecret",
		"roll_number": "B21CS001",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
}

// latestOTP pulls the freshest code straight from the table; the email body
// is not parsed.
func (env authTestEnv) latestOTP(t *testing.T, email string) string {
	t.Helper()

	var otp models.OTPVerification
	err := env.db.Where("email = ?", email).Order("id DESC").First(&otp).Error
	require.NoError(t, err)
	return otp.OTPCode
}

func TestAuthHandler_RegisterSendsOTP(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/users/register", env.handler.Register)

	env.register(t, r, "new@example.com")

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "new@example.com").First(&user).Error)
	require.False(t, user.EmailVerified)
	require.NotEqual(t, "supersecret", user.PasswordHash)

	sent := env.mail.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "new@example.com", sent[0].To)
	require.Contains(t, sent[0].HTML, env.latestOTP(t, "new@example.com"))
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/users/register", env.handler.Register)

	env.register(t, r, "dup@example.com")

	payload := map[string]string{
		"name":        "Other User",
		"email":       "dup@example.com",
		"password":    "supersecret",
		"roll_number": "B21CS002",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_VerifyEmailAndLogin(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/users/register", env.handler.Register)
	r.POST("/api/users/verify-email", env.handler.VerifyEmail)
	r.POST("/api/users/login", env.handler.Login)

	env.register(t, r, "user@example.com")

	// Login fails until the email is verified
	loginBody, _ := json.Marshal(map[string]string{
		"email":    "user@example.com",
		"password": "supersecret",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	verifyBody, _ := json.Marshal(map[string]string{
		"email": "user@example.com",
		"otp":   env.latestOTP(t, "user@example.com"),
	})
	req = httptest.NewRequest(http.MethodPost, "/api/users/verify-email", bytes.NewReader(verifyBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	token, ok := response["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "accessToken", cookies[0].Name)

	// The token works against a protected route
	protected := gin.New()
	protected.GET("/api/users/me", middleware.RequireAuth(testJWTSecret), env.handler.Me)

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_VerifyEmailWrongOTP(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/users/register", env.handler.Register)
	r.POST("/api/users/verify-email", env.handler.VerifyEmail)

	env.register(t, r, "user@example.com")

	verifyBody, _ := json.Marshal(map[string]string{
		"email": "user@example.com",
		"otp":   "000000",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/verify-email", bytes.NewReader(verifyBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		// One in a million: the generated code really was 000000
		t.Skip("generated OTP collided with the test value")
	}
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/users/register", env.handler.Register)
	r.POST("/api/users/login", env.handler.Login)

	env.register(t, r, "user@example.com")
	require.NoError(t, env.authService.VerifyEmail("user@example.com", env.latestOTP(t, "user@example.com")))

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "user@example.com",
		"password": "wrongpassword",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/users/register", env.handler.Register)
	r.POST("/api/users/forgot-password", env.handler.ForgotPassword)
	r.POST("/api/users/reset-password", env.handler.ResetPassword)
	r.POST("/api/users/login", env.handler.Login)

	env.register(t, r, "user@example.com")
	require.NoError(t, env.authService.VerifyEmail("user@example.com", env.latestOTP(t, "user@example.com")))

	forgotBody, _ := json.Marshal(map[string]string{"email": "user@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/forgot-password", bytes.NewReader(forgotBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resetBody, _ := json.Marshal(map[string]string{
		"email":        "user@example.com",
		"otp":          env.latestOTP(t, "user@example.com"),
		"new_password": "evenmoresecret",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/users/reset-password", bytes.NewReader(resetBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "user@example.com",
		"password": "evenmoresecret",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
