package main

import (
	"os"

	"github.com/spf13/cobra"

	"issueflow/internal/interfaces/cli/migrate"
	"issueflow/internal/interfaces/cli/server"
)

// @title IssueFlow API
// @version 1.0
// @description Multi-tenant issue tracker backend.
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "issueflow",
		Short: "IssueFlow - multi-tenant issue tracker",
		Long:  `IssueFlow serves the project, ticket, comment and notification API and manages its database schema.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
