package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/shopdb/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "t", "", "database type (postgres, mysql, mariadb, mongodb)")
	flag.Parse()

	usage := `
Run a shopdb database container and print the environment that points at it.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-t DB_TYPE]

ENV_FILE_PATH: path to the .env file
DB_TYPE: postgres, mysql, mariadb or mongodb (defaults to $DB_TYPE, then postgres)

example
  testcontainers -t mongodb
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}
	if dbType == "" {
		dbType = os.Getenv("DB_TYPE")
	}
	if dbType == "" || dbType == "sqlite" {
		dbType = "postgres"
	}

	tc, err := testutil.StartDatabase(nil, dbType)
	if err != nil {
		log.Fatalf("Failed to create test container: %v\n", err)
	}

	cfg := tc.Config
	fmt.Printf("DB_TYPE=%s\n", cfg.DBType)
	fmt.Printf("DB_HOST=%s\n", cfg.DBHost)
	fmt.Printf("DB_PORT=%s\n", cfg.DBPort)
	fmt.Printf("DB_DATABASE=%s\n", cfg.DBDatabase)
	fmt.Printf("DB_USER=%s\n", cfg.DBUser)
	fmt.Printf("DB_PASSWORD=%s\n", cfg.DBPassword)
	if cfg.DBConnectionString != "" {
		fmt.Printf("DB_CONNECTION_STRING=%s\n", cfg.DBConnectionString)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
	tc.Terminate(nil)
}
