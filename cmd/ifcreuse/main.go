// Command ifcreuse works on IFC files without the API server: it inspects
// models, converts their components to meshes, writes reuse flags and
// seeds user accounts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ifc-reuse-backend/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "ifcreuse",
	Short:         "Inspect, convert and mark reusable components in IFC files",
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Setup(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(markReusableCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
