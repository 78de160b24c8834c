package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/atriumlabs/atrium/backend/internal/auth"
	"github.com/atriumlabs/atrium/backend/internal/config"
	"github.com/atriumlabs/atrium/backend/internal/user"
)

// DatabaseService implements the Service interface
type DatabaseService struct {
	config      *config.DatabaseConfig
	environment string
	logger      Logger
	db          *gorm.DB
}

// NewDatabaseService creates a new database service instance
func NewDatabaseService(config *config.DatabaseConfig, environment string, logger Logger) *DatabaseService {
	return &DatabaseService{
		config:      config,
		environment: environment,
		logger:      logger,
	}
}

// Connect establishes a connection to the database
func (s *DatabaseService) Connect() (*gorm.DB, error) {
	s.logger.LogInfo(fmt.Sprintf("Connecting to database: host=%s dbname=%s port=%d",
		s.config.Host, s.config.Dbname, s.config.Port), nil)

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		s.config.Host,
		s.config.User,
		s.config.Password,
		s.config.Dbname,
		s.config.Port,
		s.config.Sslmode,
		s.config.Timezone,
	)

	gormConfig := &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Configure connection pool using values from config
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(s.config.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(s.config.Pool.MaxIdle)

	// Schema migrations are managed externally in production.
	if s.environment != "production" {
		if err := db.AutoMigrate(&user.User{}, &auth.RefreshToken{}); err != nil {
			return nil, fmt.Errorf("auto migration failed: %v", err)
		}
		s.logger.LogInfo("Auto-migration completed successfully", nil)
	} else {
		s.logger.LogInfo("Skipping auto-migration based on environment configuration", nil)
	}

	s.db = db
	return db, nil
}

// Close closes the database connection
func (s *DatabaseService) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %v", err)
		}
	}
	return nil
}
