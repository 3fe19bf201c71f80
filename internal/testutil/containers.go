package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/shopdb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	testDatabase = "shopdb"
	testUser     = "shop"
	testPassword = "shop-secret"
)

// TestContainer is a disposable database and the configuration pointing at it.
type TestContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops the container. Failures are logged.
func (tc *TestContainer) Terminate(t *testing.T) {
	if tc == nil || tc.Container == nil {
		return
	}
	if err := tc.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate %s: %v", tc.Config.DBType, err)
	}
}

// StartDatabase starts a container for dbType (postgres, mysql, mariadb or
// mongodb). The image can be overridden with DB_IMAGE.
func StartDatabase(t *testing.T, dbType string) (*TestContainer, error) {
	ctx := context.Background()

	var (
		tc  *TestContainer
		err error
	)
	switch dbType {
	case "postgres":
		tc, err = startPostgres(ctx, image("postgres:16-alpine"))
	case "mysql", "mariadb":
		def := "mysql:8.4"
		if dbType == "mariadb" {
			def = "mariadb:11"
		}
		tc, err = startMySQL(ctx, dbType, image(def))
	case "mongodb":
		tc, err = startMongo(ctx, image("mongo:7"))
	default:
		return nil, fmt.Errorf("unsupported container database type: %s", dbType)
	}
	if err != nil {
		tc.Terminate(t)
		return nil, err
	}

	logMessage(t, "%s container ready at %s:%s", dbType, tc.Config.DBHost, tc.Config.DBPort)
	return tc, nil
}

func image(def string) string {
	if img := os.Getenv("DB_IMAGE"); img != "" {
		return img
	}
	return def
}

func baseConfig(dbType string) *config.Config {
	return &config.Config{
		AppEnv:            "test",
		LogLevel:          "warn",
		DBType:            dbType,
		DBDatabase:        testDatabase,
		DBUser:            testUser,
		DBPassword:        testPassword,
		DBConnectionLimit: 5,
		AccessTokenSecret: "test-secret",
		AccessTokenTTL:    time.Minute,
	}
}

func startPostgres(ctx context.Context, img string) (*TestContainer, error) {
	container, err := tcpostgres.Run(ctx, img,
		tcpostgres.WithDatabase(testDatabase),
		tcpostgres.WithUsername(testUser),
		tcpostgres.WithPassword(testPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	tc := &TestContainer{Config: baseConfig("postgres")}
	if container != nil {
		tc.Container = container
	}
	if err != nil {
		return tc, fmt.Errorf("failed to start postgres: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return tc, err
	}
	tc.Config.DBConnectionString = dsn
	tc.Config.DBHost, _ = container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")
	tc.Config.DBPort = port.Port()
	return tc, nil
}

func startMySQL(ctx context.Context, dbType, img string) (*TestContainer, error) {
	tcpPort, _ := nat.NewPort("tcp", "3306")
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        img,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": testPassword,
				"MYSQL_DATABASE":      testDatabase,
				"MYSQL_USER":          testUser,
				"MYSQL_PASSWORD":      testPassword,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	tc := &TestContainer{Container: container, Config: baseConfig(dbType)}
	if err != nil {
		return tc, fmt.Errorf("failed to start %s: %w", dbType, err)
	}

	tc.Config.DBHost, _ = container.Host(ctx)
	port, _ := container.MappedPort(ctx, tcpPort)
	tc.Config.DBPort = port.Port()

	// The port opens before the server accepts logins
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
		testUser, testPassword, tc.Config.DBHost, tc.Config.DBPort, testDatabase))
	if err != nil {
		return tc, err
	}
	defer db.Close()
	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return tc, fmt.Errorf("%s not ready after 30 seconds: %w", dbType, err)
	}
	return tc, nil
}

// startMongo runs a single node replica set, which transactions require.
func startMongo(ctx context.Context, img string) (*TestContainer, error) {
	tcpPort, _ := nat.NewPort("tcp", "27017")
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        img,
			ExposedPorts: []string{string(tcpPort)},
			Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	tc := &TestContainer{Container: container, Config: baseConfig("mongodb")}
	if err != nil {
		return tc, fmt.Errorf("failed to start mongodb: %w", err)
	}

	code, _, err := container.Exec(ctx, []string{"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})"})
	if err != nil {
		return tc, fmt.Errorf("failed to initiate replica set: %w", err)
	}
	if code != 0 {
		return tc, fmt.Errorf("replica set initiation exited with %d", code)
	}

	tc.Config.DBHost, _ = container.Host(ctx)
	port, _ := container.MappedPort(ctx, tcpPort)
	tc.Config.DBPort = port.Port()
	tc.Config.DBUser = ""
	tc.Config.DBPassword = ""
	tc.Config.DBConnectionString = fmt.Sprintf("mongodb://%s:%s/%s?directConnection=true",
		tc.Config.DBHost, tc.Config.DBPort, testDatabase)

	// Wait for the node to become primary
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(tc.Config.DBConnectionString))
	if err != nil {
		return tc, err
	}
	defer client.Disconnect(ctx)
	for i := 0; i < 30; i++ {
		if err = client.Ping(ctx, readpref.Primary()); err == nil {
			return tc, nil
		}
		time.Sleep(time.Second)
	}
	return tc, fmt.Errorf("mongodb primary not elected after 30 seconds: %w", err)
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
