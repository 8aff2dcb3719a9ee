package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	configFile string
)

var rootCmd = &cobra.Command{
	Use:     "task-api",
	Short:   "Task management REST API",
	Version: version,
	Long: `task-api serves the task management REST API: accounts, profiles,
prioritized tasks, categories and favorites.`,
	SilenceUsage: true,
	// serve is the default command
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
