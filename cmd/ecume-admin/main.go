// Ecume-admin is a terminal back-office client for the Ecume e-commerce API.
//
// It provides an interactive dashboard for browsing and creating catalog
// records, plus direct commands for listing collections, submitting
// products, watching live order events, and discovering API servers on the
// local network.
//
// Usage:
//
//	ecume-admin [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'ecume-admin --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/farah-rezgui/ecume-admin/internal/logging"
	"github.com/farah-rezgui/ecume-admin/internal/version"
)

func main() {
	// A local .env can carry ECUME_API_URL / ECUME_LOG_LEVEL during development
	_ = godotenv.Load()
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecume-admin",
	Short: "Ecume Back-Office Client",
	Long: `A terminal client for administering an Ecume e-commerce store.

Browse products, users, clients, and orders; create products with image
attachments; watch live order events; and discover API servers via mDNS.

If no command is specified, the interactive dashboard will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ecume-admin %s (commit: %s)\n", version.Version, version.Commit)
	},
}
