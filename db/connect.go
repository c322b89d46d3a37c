package db

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"recipe-server/confs"
	"recipe-server/entities"
	"recipe-server/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the configured store and migrates the schema.
func Connect(cfg confs.Database, log *logger.Logger) (Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("connecting to database", "driver", cfg.Driver)

	database, err := Open(dialector, cfg.Debug)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "postgres" {
		sqlDB, err := database.GetDB().DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(0)
	}

	log.Info("database connection established")
	return database, nil
}

// Open wraps an already chosen dialector and runs migrations.
func Open(dialector gorm.Dialector, debug bool) (Database, error) {
	return open(dialector, debug, os.Stdout)
}

func open(dialector gorm.Dialector, debug bool, out io.Writer) (Database, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newSQLLogger(out, debug),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gdb.AutoMigrate(&entities.User{}, &entities.Recipe{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &GormDatabase{DB: gdb}, nil
}

// newSQLLogger logs statements without their bound values, so password
// digests and other column data never reach the log.
func newSQLLogger(out io.Writer, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(log.New(out, "\r\n", log.LstdFlags), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(cfg confs.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLitePath)), nil
	case "postgres":
		dsn, err := PostgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN enables foreign keys so recipe rows cascade with their user.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// PostgresDSN builds a connection string from DB_URL or the individual parameters.
func PostgresDSN(cfg confs.Database) (string, error) {
	if cfg.URL != "" {
		dsn := cfg.URL
		// Hosted databases expect TLS unless told otherwise.
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode), nil
}
