package config

import (
	"fmt"
	"os"
	"strings"

	"taproom-admin-api/authz"
	"taproom-admin-api/models"
	"taproom-admin-api/storage"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs session tokens; set by Load
var JWTSecret []byte

// Media is the disk-backed store behind the upload endpoints; set by Load
var Media *storage.Store

// Config holds all runtime configuration
type Config struct {
	Port        string
	Environment string

	Database DatabaseConfig

	MediaDir     string
	MediaBaseURL string
	LogFile      string

	// Bootstrap super admin created at startup when the roster is empty
	BootstrapEmail    string
	BootstrapPassword string
}

// DatabaseConfig selects sqlite (default) or postgres (when Host is set)
type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// Load reads the environment and fails fast on anything the app cannot run
// without. A .env file is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		Database: DatabaseConfig{
			Host:       os.Getenv("DB_HOST"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			DBName:     getEnv("DB_NAME", "taproom"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "taproom_admin.db"),
		},
		MediaDir:          getEnv("MEDIA_DIR", "media"),
		MediaBaseURL:      getEnv("MEDIA_BASE_URL", "/media"),
		LogFile:           os.Getenv("LOG_FILE"),
		BootstrapEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.Environment == "production" {
			log.Fatal("JWT_SECRET is required in production")
		}
		secret = "taproom_admin_dev_secret"
	}
	JWTSecret = []byte(secret)

	if allow := os.Getenv("ALLOWED_EMAILS"); allow != "" {
		authz.SetAllowList(strings.Split(allow, ","))
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB connects to the configured database and migrates the schema
func InitDB(cfg *Config) {
	var (
		dialector gorm.Dialector
		err       error
	)
	if cfg.Database.Host != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
			cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode)
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	log.Info("Database connected and migrated")
}

// Migrate applies the schema for every resource table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminUser{},
		&models.Profile{},
		&models.Organization{},
		&models.Category{},
		&models.MenuItem{},
		&models.PricePerSize{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.UserDiscount{},
	)
}

// InitStorage prepares the media directory
func InitStorage(cfg *Config) {
	var err error
	Media, err = storage.New(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatal("Failed to initialize media storage: ", err)
	}
}

// EnsureBootstrapAdmin creates the first super_admin when the roster is
// empty, so a fresh deployment can be entered at all.
func EnsureBootstrapAdmin(cfg *Config) {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return
	}
	var count int64
	DB.Model(&models.AdminUser{}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash bootstrap password: ", err)
	}
	admin := models.AdminUser{
		Email:        strings.ToLower(cfg.BootstrapEmail),
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create bootstrap admin: ", err)
	}
	log.WithField("email", admin.Email).Info("Bootstrap super_admin created")
}
