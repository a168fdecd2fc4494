package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/planning-cli/internal/config"
	"github.com/sells-group/planning-cli/pkg/eplanning"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "planning-cli",
	Short: "NSW Planning Portal lot lookup",
	Long:  "Resolves cadastral lot identifiers against the NSW ePlanning Portal API and assembles zoning, overlay, council, and address attributes into exportable site rows.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newAPIClient builds the ePlanning client from config.
func newAPIClient() eplanning.Client {
	return eplanning.NewClient(
		eplanning.WithBaseURL(cfg.API.BaseURL),
		eplanning.WithUserAgent(cfg.API.UserAgent),
		eplanning.WithTimeout(cfg.API.Timeout()),
		eplanning.WithLimiter(rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst)),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
