package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/admin"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/users"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/security"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Operator tasks for administrator accounts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap opens the database and builds the admin service. The returned closer releases the pool.
func bootstrap(ctx context.Context) (*admin.Service, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logg := logger.New(logger.Options{
		ServiceName: "admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	svc, err := admin.NewService(users.NewRepository(dbClient.DB()), security.NewHasher(cfg.Password), logg)
	if err != nil {
		_ = dbClient.Close()
		return nil, nil, err
	}
	return svc, dbClient.Close, nil
}
