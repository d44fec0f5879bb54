package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/config"
	"github.com/campusconnect/lost-and-found-api/internal/database"
	"github.com/campusconnect/lost-and-found-api/internal/handlers"
	"github.com/campusconnect/lost-and-found-api/internal/mailer"
	"github.com/campusconnect/lost-and-found-api/internal/middleware"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	makeLogger(cfg.LogLevel)
	defer zap.L().Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	r := buildRouter(cfg)

	zap.L().Info("Server starting", zap.Int("port", cfg.Port))
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		zap.L().Fatal("Server stopped", zap.Error(err))
	}
}

func buildRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.RequestID(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}
				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}
				return fields
			},
		}),
	)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	lostItemRepo := repository.NewLostItemRepository(db)
	foundItemRepo := repository.NewFoundItemRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	mail := mailer.NewSMTPMailer(cfg)
	status := services.NewStatusResolver(claimRepo, reportRepo)
	authService := services.NewAuthService(userRepo, otpRepo, lostItemRepo, foundItemRepo, mail, cfg.JWTSecret)
	categoryService := services.NewCategoryService(categoryRepo)
	lostItemService := services.NewLostItemService(lostItemRepo, categoryRepo, status)
	foundItemService := services.NewFoundItemService(foundItemRepo, categoryRepo, status)
	claimService := services.NewClaimService(claimRepo, foundItemRepo, mail, cfg.AllowDuplicateClaims)
	reportService := services.NewReportService(reportRepo, lostItemRepo, mail)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	lostItemHandler := handlers.NewLostItemHandler(lostItemService)
	foundItemHandler := handlers.NewFoundItemHandler(foundItemService)
	claimHandler := handlers.NewClaimHandler(claimService)
	reportHandler := handlers.NewReportHandler(reportService)

	auth := middleware.RequireAuth(cfg.JWTSecret)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/logout", authHandler.Logout)
			users.POST("/verify-email", authHandler.VerifyEmail)
			users.POST("/forgot-password", authHandler.ForgotPassword)
			users.POST("/reset-password", authHandler.ResetPassword)
			users.GET("/me", auth, authHandler.Me)
			users.PATCH("/update-phone", auth, authHandler.UpdatePhone)
			users.PATCH("/update-hostel-room", auth, authHandler.UpdateHostelRoom)
			users.GET("/dashboard-counts", auth, authHandler.DashboardCounts)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", auth, categoryHandler.CreateCategory)
			categories.PUT("/:id", auth, categoryHandler.UpdateCategory)
			categories.DELETE("/:id", auth, categoryHandler.DeleteCategory)
		}

		lostItems := api.Group("/lost-items")
		{
			lostItems.POST("/report", auth, lostItemHandler.ReportLostItem)
			lostItems.GET("", lostItemHandler.ListLostItems)
			lostItems.GET("/:id", lostItemHandler.GetLostItem)
			lostItems.GET("/user/me", auth, lostItemHandler.ListMyLostItems)
			lostItems.PUT("/update/:id", auth, lostItemHandler.UpdateLostItem)
			lostItems.PUT("/update-images/:id", auth, lostItemHandler.UpdateLostItemImages)
			lostItems.DELETE("/:id", auth, lostItemHandler.DeleteLostItem)
		}

		foundItems := api.Group("/found-items")
		{
			foundItems.POST("/report", auth, foundItemHandler.ReportFoundItem)
			foundItems.GET("", foundItemHandler.ListFoundItems)
			foundItems.GET("/:id", foundItemHandler.GetFoundItem)
			foundItems.GET("/mine", auth, foundItemHandler.ListMyFoundItems)
			foundItems.PUT("/updateDetails/:id", auth, foundItemHandler.UpdateFoundItemDetails)
			foundItems.PUT("/updateImages/:id", auth, foundItemHandler.UpdateFoundItemImages)
			foundItems.PUT("/updatePickupLocation/:id", auth, foundItemHandler.UpdatePickupLocation)
			foundItems.PUT("/updateSecurityQA/:id", auth, foundItemHandler.UpdateSecurityQA)
			foundItems.DELETE("/:id", auth, foundItemHandler.DeleteFoundItem)
		}

		claims := api.Group("/claims", auth)
		{
			claims.POST("/create", claimHandler.CreateClaim)
			claims.GET("/item/:found_item_id", claimHandler.ListClaimsForItem)
			claims.GET("/user/my", claimHandler.ListMyClaims)
			claims.GET("/:id", claimHandler.GetClaim)
			claims.PUT("/status/:id", claimHandler.UpdateClaimStatus)
			claims.DELETE("/:id", claimHandler.DeleteClaim)
		}

		reports := api.Group("/report-lost-found", auth)
		{
			reports.POST("/", reportHandler.CreateReport)
			reports.GET("/user/my", reportHandler.ListMyReports)
			reports.GET("/about-user-lost-items", reportHandler.ListReportsAboutMyItems)
			reports.GET("/item/:id", reportHandler.ListReportsForItem)
			reports.PATCH("/status/:id", reportHandler.UpdateReportStatus)
			reports.DELETE("/:id", reportHandler.DeleteReport)
		}
	}

	return r
}

func makeLogger(level string) {
	cfg := zap.NewDevelopmentConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	logger, _ := cfg.Build()
	zap.ReplaceGlobals(logger)
}
