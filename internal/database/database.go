package database

import (
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/config"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	zap.L().Info("Database connection established")
	return nil
}

func Migrate() error {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.LostItem{},
		&models.LostItemPhoto{},
		&models.FoundItem{},
		&models.FoundItemPhoto{},
		&models.Claim{},
		&models.Report{},
		&models.OTPVerification{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	zap.L().Info("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
