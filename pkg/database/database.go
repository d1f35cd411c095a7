package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Settings selects and locates the relational store behind the catalog.
type Settings struct {
	Driver string
	DSN    string
	Debug  bool
}

// SettingsFromEnv reads DB_DRIVER and DATABASE_URL, falling back to the
// DB_HOST/DB_USER/DB_PASSWORD/DB_NAME/DB_PORT parts for PostgreSQL.
func SettingsFromEnv() Settings {
	s := Settings{
		Driver: os.Getenv("DB_DRIVER"),
		DSN:    os.Getenv("DATABASE_URL"),
	}
	if s.Driver == "" {
		s.Driver = DriverPostgres
	}
	if s.DSN == "" && s.Driver == DriverPostgres {
		s.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}
	return s
}

// DefaultSchema is the schema catalog tables live in for the driver.
func (s Settings) DefaultSchema() string {
	if s.Driver == DriverSQLite {
		return "main"
	}
	return "public"
}

func (s Settings) dialector() (gorm.Dialector, error) {
	switch s.Driver {
	case DriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  s.DSN,
			PreferSimpleProtocol: true, // works behind transaction-mode poolers
		}), nil
	case DriverSQLite:
		if s.DSN == "" {
			return nil, fmt.Errorf("sqlite requires DATABASE_URL")
		}
		return sqlite.Open(s.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.Driver)
	}
}

// Connect opens the store with pooled connections.
func Connect(s Settings) (*gorm.DB, error) {
	dialector, err := s.dialector()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if s.Debug {
		level = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      newLogger,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", s.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
