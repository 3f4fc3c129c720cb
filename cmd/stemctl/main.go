// Command stemctl seeds showcase content and manages admin accounts.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"stem-inspires/utils"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "stemctl",
		Short:         "Administration tool for the STEM Inspires API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(adminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB connects using the server's environment and runs fn on the
// configured database
func withDB(fn func(ctx context.Context, db *mongo.Database) error) error {
	_ = godotenv.Load()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "stem_inspires"
	}

	client, err := utils.ConnectDB(uri)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return fn(ctx, client.Database(name))
}
