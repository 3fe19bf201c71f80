// connection.go
//
// Connection provider for the relational and document backends
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopdb.
// shopdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/store/mongostore"
	"github.com/localnerve/shopdb/internal/store/sqlstore"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the configured backend, prepares its schema and returns the store.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.IsMongo() {
		client, dbName, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st := mongostore.New(client, dbName)
		if err := mongostore.EnsureSchema(ctx, st.Database()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to prepare collections: %w", err)
		}
		return st, nil
	}

	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		_ = closeGorm(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return sqlstore.New(db), nil
}

// Dialector builds the gorm dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := cfg.DBConnectionString
		if dsn == "" {
			mc := mysqldriver.NewConfig()
			mc.User = cfg.DBUser
			mc.Passwd = cfg.DBPassword
			mc.Net = "tcp"
			mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
			mc.DBName = cfg.DBDatabase
			mc.ParseTime = true
			mc.Loc = time.UTC
			mc.Params = map[string]string{"charset": "utf8mb4"}
			dsn = mc.FormatDSN()
		}
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		dsn := cfg.DBConnectionString
		if dsn == "" {
			dsn = PostgresDSN(cfg)
		}
		pgCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres connection string: %w", err)
		}
		return postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgCfg)}), nil

	case "sqlite":
		// For SQLite, DB_DATABASE is the file path
		dsn := cfg.DBConnectionString
		if dsn == "" {
			dsn = cfg.DBDatabase
		}
		return sqlite.Open(dsn), nil

	case "sqlserver", "mssql":
		dsn := cfg.DBConnectionString
		if dsn == "" {
			u := &url.URL{
				Scheme:   "sqlserver",
				User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
				Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
				RawQuery: url.Values{"database": {cfg.DBDatabase}}.Encode(),
			}
			dsn = u.String()
		}
		return sqlserver.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// PostgresDSN builds a postgres:// URL from the discrete DB_* settings.
func PostgresDSN(cfg *config.Config) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:   "/" + cfg.DBDatabase,
		RawQuery: url.Values{
			"sslmode":  {"disable"},
			"TimeZone": {"UTC"},
		}.Encode(),
	}
	return u.String()
}

// Connect establishes a relational database connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(max(cfg.DBConnectionLimit/2, 1))

	logrus.WithFields(logrus.Fields{
		"type":     cfg.DBType,
		"database": cfg.DBDatabase,
		"pool":     cfg.DBConnectionLimit,
	}).Info("Connected to database")

	return db, nil
}

// NewLogger bridges gorm's logger to logrus. SQL statements are logged only at debug.
func NewLogger(level string) logger.Interface {
	gormLevel := logger.Warn
	if lvl, err := logrus.ParseLevel(level); err == nil && lvl >= logrus.DebugLevel {
		gormLevel = logger.Info
	}
	return logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// MongoURI returns the connection string and database name for the document backend.
func MongoURI(cfg *config.Config) (string, string, error) {
	uri := cfg.DBConnectionString
	if uri == "" {
		u := &url.URL{
			Scheme: "mongodb",
			Host:   net.JoinHostPort(cfg.DBHost, cfg.DBPort),
			Path:   "/" + cfg.DBDatabase,
		}
		if cfg.DBUser != "" {
			u.User = url.UserPassword(cfg.DBUser, cfg.DBPassword)
			u.RawQuery = "authSource=admin"
		}
		uri = u.String()
	}

	dbName := cfg.DBDatabase
	if dbName == "" {
		cs, err := connstring.ParseAndValidate(uri)
		if err != nil {
			return "", "", fmt.Errorf("invalid mongodb connection string: %w", err)
		}
		dbName = cs.Database
	}
	if dbName == "" {
		return "", "", fmt.Errorf("mongodb database name is required")
	}
	return uri, dbName, nil
}

// ConnectMongo connects the document backend and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, string, error) {
	uri, dbName, err := MongoURI(cfg)
	if err != nil {
		return nil, "", err
	}

	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(mongostore.Registry()).
		SetMaxPoolSize(uint64(cfg.DBConnectionLimit))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, "", fmt.Errorf("failed to reach mongodb: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"type":     "mongodb",
		"database": dbName,
		"pool":     cfg.DBConnectionLimit,
	}).Info("Connected to database")

	return client, dbName, nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close releases the store. Failures are logged, never returned.
func Close(ctx context.Context, st store.Store) {
	if st == nil {
		return
	}
	if err := st.Close(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to close database connection")
		return
	}
	logrus.Info("Database connection closed")
}

func closeGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
