package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/rdv-service/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdvctl",
		Short: "Operator commands for the RDV service",
		Long: `rdvctl runs maintenance tasks against the configured database
(DATABASE_URL, read from the environment or a .env file).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.ArchivePreviousMonthCmd(cli.DefaultOpener))
	rootCmd.AddCommand(cli.MigrateCmd(cli.DefaultOpener))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
