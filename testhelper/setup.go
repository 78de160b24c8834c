package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/atriumlabs/atrium/backend/internal/auth"
	"github.com/atriumlabs/atrium/backend/internal/user"
)

// Config represents the minimal configuration needed for the test environment.
type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Dbname   string `mapstructure:"dbname"`
		Sslmode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`
}

// LoadTestConfig reads config_test.yaml from the repository root.
func LoadTestConfig(t *testing.T) *Config {
	t.Helper()

	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("failed to locate repository root: %v", err)
	}

	// .env overrides are optional in test environments.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	v := viper.New()
	v.AddConfigPath(root)
	v.SetConfigName("config_test")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("failed to unmarshal test config: %v", err)
	}
	return &cfg
}

// SetupTestDB opens a connection to the test database, migrates the
// schema and truncates all tables. Tests are skipped when the database
// is unreachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := LoadTestConfig(t)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Dbname,
		cfg.Database.Port,
		cfg.Database.Sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	if err := db.AutoMigrate(&user.User{}, &auth.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	if err := db.Exec("TRUNCATE TABLE refresh_tokens, users CASCADE").Error; err != nil {
		t.Fatalf("failed to clean test tables: %v", err)
	}

	return db
}

// findRepoRoot walks up from the working directory to the directory
// containing go.mod.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}
