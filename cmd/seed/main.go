package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envFile string
	counts  Counts
	seed    int64
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a shopdb database with reference and sample data",
	Long: `Seed connects to the database named by the environment (DB_TYPE, DB_HOST, ...),
prepares its schema, ensures the reference roles and then generates sample
users, catalog, events, messages and visits.

Every generated account uses the password given by --password.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&envFile, "env", "f", "", "path to a .env file")
	flags.IntVar(&counts.Admins, "admins", 1, "number of admin accounts")
	flags.IntVar(&counts.Experts, "experts", 3, "number of expert accounts")
	flags.IntVar(&counts.Users, "users", 10, "number of user accounts")
	flags.IntVar(&counts.Brands, "brands", 5, "number of brands")
	flags.IntVar(&counts.Categories, "categories", 5, "number of categories")
	flags.IntVar(&counts.Products, "products", 25, "number of products")
	flags.IntVar(&counts.Events, "events", 5, "number of events")
	flags.IntVar(&counts.Participants, "participants", 15, "number of event participations")
	flags.IntVar(&counts.Messages, "messages", 20, "number of messages")
	flags.IntVar(&counts.Visits, "visits", 10, "number of visits")
	flags.StringVar(&counts.Password, "password", "Passw0rd!", "password for generated accounts")
	flags.Int64Var(&seed, "seed", 1, "random seed")
	flags.DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
}

func run(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	st, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(context.Background(), st)

	report, err := NewSeeder(st, counts, seed).Run(ctx)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"type":         st.Kind(),
		"roles":        report.Roles,
		"users":        report.Users,
		"brands":       report.Brands,
		"categories":   report.Categories,
		"products":     report.Products,
		"events":       report.Events,
		"participants": report.Participants,
		"messages":     report.Messages,
		"visits":       report.Visits,
	}).Info("Seed complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
